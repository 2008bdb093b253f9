// Package chatlog reads chats and messages out of a Viber desktop store.
package chatlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gsakkis/ViberExtractor/internal/models"
)

var (
	// ErrChatNotFound reports a selector matching no chat.
	ErrChatNotFound = errors.New("chat not found")
	// ErrChatAmbiguous reports a selector matching more than one chat.
	ErrChatAmbiguous = errors.New("chat selector is ambiguous")
)

// Service issues read-only queries against an opened store.
type Service struct {
	db    *sql.DB
	debug bool
}

// NewService wraps the store handle. With debug set, executed queries
// are logged.
func NewService(db *sql.DB, debug bool) *Service {
	return &Service{db: db, debug: debug}
}

func (s *Service) logQuery(query string, args ...any) {
	if s.debug {
		log.Printf("query: %s args=%v", strings.Join(strings.Fields(query), " "), args)
	}
}

// ListChats returns every chat the store owner participates in, with
// participant names sorted and the owner excluded. Ordered by chat ID.
func (s *Service) ListChats(ctx context.Context) ([]models.Chat, error) {
	const query = `
		SELECT ChatRelation.ChatID,
		       COALESCE(ChatInfo.Name, ''),
		       COALESCE(Contact.Name, Contact.ClientName, '')
		FROM ChatRelation
		JOIN ChatInfo ON ChatInfo.ChatID = ChatRelation.ChatID
		JOIN Contact ON Contact.ContactID = ChatRelation.ContactID
		WHERE ChatRelation.ContactID != 1
		ORDER BY ChatRelation.ChatID`
	s.logQuery(query)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	byID := make(map[int64]int)
	for rows.Next() {
		var (
			chatID      int64
			name        string
			participant string
		)
		if err := rows.Scan(&chatID, &name, &participant); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		idx, ok := byID[chatID]
		if !ok {
			idx = len(chats)
			byID[chatID] = idx
			chats = append(chats, models.Chat{ID: chatID, Name: name})
		}
		chats[idx].Participants = append(chats[idx].Participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	for i := range chats {
		sort.Strings(chats[i].Participants)
	}
	return chats, nil
}

// ResolveChat maps a selector onto exactly one chat. A selector that
// parses as an integer is treated as a chat ID; anything else matches
// case-insensitively against the group name or a participant name.
// Zero matches yield ErrChatNotFound, several yield ErrChatAmbiguous.
func (s *Service) ResolveChat(ctx context.Context, selector string) (*models.Chat, error) {
	selector = strings.TrimSpace(selector)
	if id, err := strconv.ParseInt(selector, 10, 64); err == nil {
		return s.chatByID(ctx, id)
	}
	return s.chatByName(ctx, selector)
}

func (s *Service) chatByID(ctx context.Context, id int64) (*models.Chat, error) {
	chats, err := s.ListChats(ctx)
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if chats[i].ID == id {
			return &chats[i], nil
		}
	}
	return nil, fmt.Errorf("chat %d: %w", id, ErrChatNotFound)
}

func (s *Service) chatByName(ctx context.Context, name string) (*models.Chat, error) {
	chats, err := s.ListChats(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*models.Chat
	for i := range chats {
		if chatMatches(&chats[i], name) {
			matches = append(matches, &chats[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("chat %q: %w", name, ErrChatNotFound)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, c := range matches {
			ids[i] = strconv.FormatInt(c.ID, 10)
		}
		return nil, fmt.Errorf("chat %q matches chats %s: %w", name, strings.Join(ids, ", "), ErrChatAmbiguous)
	}
}

func chatMatches(chat *models.Chat, name string) bool {
	if strings.EqualFold(chat.Name, name) {
		return true
	}
	for _, p := range chat.Participants {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// FetchMessages returns a chat's messages ordered ascending by timestamp
// (event ID breaks ties). The from bound is inclusive, the to bound
// exclusive; a zero time disables the corresponding bound. An empty
// result is not an error.
func (s *Service) FetchMessages(ctx context.Context, chatID int64, from, to time.Time) ([]models.Message, error) {
	query := `
		SELECT Events.EventID,
		       Events.ChatID,
		       Events.timestamp,
		       COALESCE(Contact.Name, Contact.ClientName, ''),
		       Messages.Type,
		       COALESCE(Messages.Subject, ''),
		       COALESCE(Messages.Body, ''),
		       COALESCE(Messages.Info, ''),
		       COALESCE(Messages.Duration, 0),
		       COALESCE(Messages.StickerID, 0)
		FROM Events
		JOIN Messages ON Messages.EventID = Events.EventID
		JOIN Contact ON Contact.ContactID = Events.ContactID
		WHERE Events.ChatID = ?`
	args := []any{chatID}
	if !from.IsZero() {
		query += ` AND Events.timestamp >= ?`
		args = append(args, from.UnixMilli())
	}
	if !to.IsZero() {
		query += ` AND Events.timestamp < ?`
		args = append(args, to.UnixMilli())
	}
	query += ` ORDER BY Events.timestamp ASC, Events.EventID ASC`
	s.logQuery(query, args...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var (
			m  models.Message
			ms int64
		)
		if err := rows.Scan(&m.EventID, &m.ChatID, &ms, &m.Sender, &m.Type,
			&m.Subject, &m.Body, &m.Info, &m.Duration, &m.StickerID); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Timestamp = time.UnixMilli(ms).UTC()
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
