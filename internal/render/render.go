// Package render turns fetched messages into the text log written to
// standard output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gsakkis/ViberExtractor/internal/models"
)

const (
	dayHeaderLayout = "2006-01-02"
	timeLayout      = "15:04:05"
)

// mediaKinds maps non-text message types to a display word.
var mediaKinds = map[int]string{
	models.TypeImage:     "image",
	models.TypeVideo:     "video",
	models.TypeSticker:   "sticker",
	models.TypeVoiceMail: "voice mail",
	models.TypeIVM:       "viber instant video",
	models.TypeAudio:     "audio",
}

// extensionKinds covers the media extensions the desktop client
// produces; mime.TypeByExtension fills in the rest where the host has
// a mime table.
var extensionKinds = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".gif":  "image",
	".webp": "image",
	".mp4":  "video",
	".mov":  "video",
	".webm": "video",
	".mp3":  "audio",
	".m4a":  "audio",
	".ogg":  "audio",
	".wav":  "audio",
}

// Formatter renders messages in a fixed zone. The zone is resolved once
// at startup and passed in; nothing here consults the environment.
type Formatter struct {
	loc *time.Location
}

// NewFormatter builds a formatter rendering timestamps in loc.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// WriteLog writes the grouped chat log: a header per day, sessions
// separated by blank lines, one line per message.
func (f *Formatter) WriteLog(w io.Writer, days []models.Day) error {
	for _, day := range days {
		if _, err := fmt.Fprintf(w, "## %s\n\n", day.Date.Format(dayHeaderLayout)); err != nil {
			return err
		}
		for _, sess := range day.Sessions {
			for _, msg := range sess.Messages {
				if _, err := fmt.Fprintln(w, f.FormatMessage(msg)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatMessage renders one message as "[time] sender: body". Missing
// fields render empty, never as an error.
func (f *Formatter) FormatMessage(msg models.Message) string {
	when := msg.Timestamp.In(f.loc).Format(timeLayout)
	return fmt.Sprintf("[%s] %s: %s", when, msg.Sender, renderBody(msg))
}

// mediaInfo is the slice of the Messages.Info JSON payload we care about.
type mediaInfo struct {
	FileInfo struct {
		FileName string `json:"FileName"`
		Duration int64  `json:"Duration"`
	} `json:"fileInfo"`
}

func renderBody(msg models.Message) string {
	switch msg.Type {
	case models.TypeText, models.TypeRichText:
		return strings.TrimSpace(msg.Body)
	case models.TypeURL:
		if body := strings.TrimSpace(msg.Body); body != "" {
			return body
		}
		return "(URL not available)"
	}

	kind, ok := mediaKinds[msg.Type]
	if !ok {
		// Unknown or non-text event type.
		return ""
	}

	var info mediaInfo
	if msg.Info != "" {
		// Malformed payloads degrade to the bare media kind.
		_ = json.Unmarshal([]byte(msg.Info), &info)
	}

	fileName := info.FileInfo.FileName
	if fileName != "" {
		ext := strings.ToLower(filepath.Ext(fileName))
		if k, ok := extensionKinds[ext]; ok {
			kind = k
		} else if mt := mime.TypeByExtension(ext); mt != "" {
			kind = strings.SplitN(mt, "/", 2)[0]
		}
	}

	parts := []string{kind}
	if msg.Subject != "" {
		parts = append(parts, msg.Subject)
	}
	if fileName != "" {
		parts = append(parts, fileName)
	}
	switch msg.Type {
	case models.TypeSticker:
		parts = append(parts, fmt.Sprintf("id %d", msg.StickerID))
	case models.TypeVoiceMail:
		parts = append(parts, formatDuration(msg.Duration))
	case models.TypeAudio:
		parts = append(parts, formatDuration(info.FileInfo.Duration))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatDuration(msec int64) string {
	return fmt.Sprintf("%d seconds", msec/1000)
}
