// Package sqlite is the write-through store for user and message rows.
// Rows are never read back; a restart loses all live state by design.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/chathaven/chathaven/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	room TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	text TEXT NOT NULL,
	time TEXT NOT NULL,
	response TEXT
);
`

// Store persists chat records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the store and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InsertUser records a join.
func (s *Store) InsertUser(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, username, room) VALUES (?, ?, ?)`,
		string(user.ID), user.Username, string(user.Room))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// DeleteUser records a disconnect. Deleting an absent row is not an error.
func (s *Store) DeleteUser(ctx context.Context, id domain.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// InsertMessage records a chat message.
func (s *Store) InsertMessage(ctx context.Context, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO messages (username, text, time) VALUES (?, ?, ?)`,
		msg.Username, msg.Text, msg.Time)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// InsertMessageWithResponse records a message together with the responder's
// reply to it.
func (s *Store) InsertMessageWithResponse(ctx context.Context, msg domain.Message, response string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO messages (username, text, time, response) VALUES (?, ?, ?, ?)`,
		msg.Username, msg.Text, msg.Time, response)
	if err != nil {
		return fmt.Errorf("insert message with response: %w", err)
	}
	return nil
}
