// Package storagetest builds throwaway Viber stores for tests.
package storagetest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Schema mirrors the subset of the Viber desktop schema the tool reads.
var schema = []string{
	`CREATE TABLE Contact (
		ContactID INTEGER PRIMARY KEY,
		Name TEXT,
		ClientName TEXT
	)`,
	`CREATE TABLE ChatInfo (
		ChatID INTEGER PRIMARY KEY,
		Name TEXT
	)`,
	`CREATE TABLE ChatRelation (
		ChatID INTEGER NOT NULL,
		ContactID INTEGER NOT NULL
	)`,
	`CREATE TABLE Events (
		EventID INTEGER PRIMARY KEY,
		ChatID INTEGER NOT NULL,
		ContactID INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE TABLE Messages (
		EventID INTEGER PRIMARY KEY,
		Type INTEGER NOT NULL,
		Subject TEXT,
		Body TEXT,
		Info TEXT,
		Duration INTEGER,
		StickerID INTEGER
	)`,
}

// CreateStore writes an empty Viber-shaped store into the test's temp
// directory and returns its path together with a writable handle for
// seeding rows. The handle is closed automatically at test cleanup.
func CreateStore(t *testing.T) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viber.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create fixture schema: %v", err)
		}
	}
	// ContactID 1 is the store owner and is excluded from rosters.
	InsertContact(t, db, 1, "Me", "")
	return path, db
}

// InsertContact seeds one Contact row.
func InsertContact(t *testing.T, db *sql.DB, id int64, name, clientName string) {
	t.Helper()
	var nameArg, clientArg any
	if name != "" {
		nameArg = name
	}
	if clientName != "" {
		clientArg = clientName
	}
	if _, err := db.Exec(`INSERT INTO Contact (ContactID, Name, ClientName) VALUES (?, ?, ?)`,
		id, nameArg, clientArg); err != nil {
		t.Fatalf("insert contact: %v", err)
	}
}

// InsertChat seeds a chat with the given participants (besides the owner).
func InsertChat(t *testing.T, db *sql.DB, chatID int64, name string, contactIDs ...int64) {
	t.Helper()
	var nameArg any
	if name != "" {
		nameArg = name
	}
	if _, err := db.Exec(`INSERT INTO ChatInfo (ChatID, Name) VALUES (?, ?)`, chatID, nameArg); err != nil {
		t.Fatalf("insert chat: %v", err)
	}
	ids := append([]int64{1}, contactIDs...)
	for _, cid := range ids {
		if _, err := db.Exec(`INSERT INTO ChatRelation (ChatID, ContactID) VALUES (?, ?)`, chatID, cid); err != nil {
			t.Fatalf("insert chat relation: %v", err)
		}
	}
}

// InsertText seeds a plain text message and returns its event ID.
func InsertText(t *testing.T, db *sql.DB, chatID, contactID int64, at time.Time, body string) int64 {
	t.Helper()
	return InsertMessage(t, db, chatID, contactID, at, 1, "", body, "", 0, 0)
}

// InsertMessage seeds an Events/Messages row pair and returns the event ID.
func InsertMessage(t *testing.T, db *sql.DB, chatID, contactID int64, at time.Time, msgType int, subject, body, info string, duration, stickerID int64) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO Events (ChatID, ContactID, timestamp) VALUES (?, ?, ?)`,
		chatID, contactID, at.UnixMilli())
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("event id: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO Messages (EventID, Type, Subject, Body, Info, Duration, StickerID) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		eventID, msgType, subject, body, info, duration, stickerID); err != nil {
		t.Fatalf("insert message: %v", err)
	}
	return eventID
}
