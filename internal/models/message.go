package models

import "time"

// Message type codes used by the Viber desktop client.
const (
	TypeText      = 1
	TypeImage     = 2
	TypeVideo     = 3
	TypeSticker   = 4
	TypeVoiceMail = 6
	TypeIVM       = 7 // viber instant video
	TypeURL       = 9
	TypeAudio     = 11
	TypeRichText  = 15
)

// Message is a single event read from the store. Timestamps are stored
// as millisecond epoch values and surfaced here in UTC.
type Message struct {
	EventID   int64
	ChatID    int64
	Timestamp time.Time
	Sender    string
	Type      int
	Subject   string
	Body      string
	Info      string // JSON payload attached to media messages
	Duration  int64  // milliseconds, voice mail only
	StickerID int64
}
