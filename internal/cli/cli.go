// Package cli wires the extractor together behind a command-line
// interface and owns process exit codes.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/lipgloss"

	"github.com/gsakkis/ViberExtractor/internal/config"
	"github.com/gsakkis/ViberExtractor/internal/models"
	"github.com/gsakkis/ViberExtractor/internal/render"
	"github.com/gsakkis/ViberExtractor/internal/service/chatlog"
	"github.com/gsakkis/ViberExtractor/internal/session"
	"github.com/gsakkis/ViberExtractor/internal/storage"
)

var (
	rosterHeaderStyle = lipgloss.NewStyle().Bold(true)
	rosterIDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Run executes one extraction and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	fs := flag.NewFlagSet("viberextractor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: viberextractor [flags] <db-path>")
		fs.PrintDefaults()
	}
	chatSel := fs.String("chat", cfg.Chat, "chat ID or chat/contact name")
	fromArg := fs.String("from", "", "start date(-time) to filter from, inclusive")
	toArg := fs.String("to", "", "end date(-time) to filter to, exclusive")
	tzArg := fs.String("tz", cfg.Timezone, "IANA timezone for parsing and rendering (default: local)")
	gapMin := fs.Int("session", cfg.SessionGapMin, "split into sessions separated by at least this many minutes of inactivity")
	list := fs.Bool("list", false, "print the chat roster and exit")
	verbose := fs.Bool("verbose", false, "log executed queries")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	dbPath := fs.Arg(0)

	if *gapMin < 0 {
		fmt.Fprintf(stderr, "error: session gap must be non-negative, got %d\n", *gapMin)
		return 1
	}
	loc := time.Local
	if *tzArg != "" {
		loc, err = time.LoadLocation(*tzArg)
		if err != nil {
			fmt.Fprintf(stderr, "error: timezone %q is invalid\n", *tzArg)
			return 1
		}
	}
	from, err := parseBound(*fromArg, loc)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	to, err := parseBound(*toArg, loc)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer db.Close()

	ctx := context.Background()
	svc := chatlog.NewService(db, *verbose)

	if *list {
		chats, err := svc.ListChats(ctx)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		writeRoster(stdout, chats)
		return 0
	}

	var chat *models.Chat
	if *chatSel != "" {
		chat, err = svc.ResolveChat(ctx, *chatSel)
	} else {
		chat, err = pickChat(ctx, svc, stdin, stderr)
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	msgs, err := svc.FetchMessages(ctx, chat.ID, from, to)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if len(msgs) == 0 {
		fmt.Fprintln(stdout, "no messages")
		return 0
	}

	gap := time.Duration(*gapMin) * time.Minute
	days := session.GroupByDay(msgs, gap, loc)
	if err := render.NewFormatter(loc).WriteLog(stdout, days); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

// parseBound accepts date or date-time text interpreted in loc. Empty
// input disables the bound.
func parseBound(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	return t, nil
}

// writeRoster prints one line per chat: ID, group name if any, and the
// participants.
func writeRoster(w io.Writer, chats []models.Chat) {
	fmt.Fprintln(w, rosterHeaderStyle.Render("chatID\tcontact(s)"))
	for _, c := range chats {
		fmt.Fprintf(w, "%s\t%s\n", rosterIDStyle.Render(strconv.FormatInt(c.ID, 10)), chatLabel(c))
	}
}

func chatLabel(c models.Chat) string {
	participants := strings.Join(c.Participants, ", ")
	if c.Name != "" {
		return fmt.Sprintf("%s (%s)", c.Name, participants)
	}
	return participants
}

// pickChat shows the roster on stderr and reads a chat ID from stdin,
// re-prompting on invalid input until one matches or input ends.
func pickChat(ctx context.Context, svc *chatlog.Service, stdin io.Reader, stderr io.Writer) (*models.Chat, error) {
	chats, err := svc.ListChats(ctx)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return nil, fmt.Errorf("store contains no chats: %w", chatlog.ErrChatNotFound)
	}
	byID := make(map[int64]*models.Chat, len(chats))
	for i := range chats {
		byID[chats[i].ID] = &chats[i]
	}

	writeRoster(stderr, chats)
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stderr, "\nPlease select one of the above chatIDs: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read chat selection: %w", err)
			}
			return nil, errors.New("no chat selected")
		}
		id, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
		if err != nil {
			continue
		}
		if chat, ok := byID[id]; ok {
			return chat, nil
		}
	}
}
