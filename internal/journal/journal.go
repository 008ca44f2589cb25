// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a SQLite history of executed conversion plans so a
// run can be reviewed (or undone by hand) later.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/eutils/pkg/types"
)

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			time TEXT NOT NULL,
			source TEXT NOT NULL,
			dest TEXT NOT NULL,
			action TEXT NOT NULL,
			command TEXT,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_time ON entries(time)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e to the journal. A zero Time is replaced by the current
// time. The stored entry ID is returned.
func (s *Store) Record(ctx context.Context, e types.JournalEntry) (int64, error) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (time, source, dest, action, command, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(time.RFC3339Nano), e.Source, e.Dest, string(e.Action),
		e.Command, string(e.Status), e.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("recording %s: %w", e.Source, err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, time, source, dest, action, COALESCE(command, ''), status, COALESCE(error, '')
		 FROM entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []types.JournalEntry
	for rows.Next() {
		var (
			e              types.JournalEntry
			ts             string
			action, status string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Source, &e.Dest, &action, &e.Command, &status, &e.Error); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing journal time %q: %w", ts, err)
		}
		e.Time = t
		e.Action = types.Action(action)
		e.Status = types.JournalStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
