// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only log of past catalog searches in a
// local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rmewada/bookshelf/pkg/types"
)

// Log manages the search-history SQLite database.
type Log struct {
	db         *sql.DB
	maxResults int
}

// Entry is one recorded search.
type Entry struct {
	ID         int64     `json:"id"`
	Query      string    `json:"query"`
	Source     string    `json:"source"`
	Results    int       `json:"results"`
	SearchedAt time.Time `json:"searched_at"`
}

// Open opens or creates the history database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Log, error) {
	path := cfg.Path
	if path == "" {
		path = "bookshelf.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	l := &Log{db: db, maxResults: maxResults}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		source TEXT NOT NULL,
		results INTEGER NOT NULL,
		searched_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one search to the log.
func (l *Log) Record(ctx context.Context, query, source string, results int) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO searches (query, source, results, searched_at) VALUES (?, ?, ?, ?)`,
		query, source, results, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the most recent searches, newest first. A limit of zero
// uses the configured default.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = l.maxResults
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, query, source, results, searched_at FROM searches ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var searchedAt string
		if err := rows.Scan(&e.ID, &e.Query, &e.Source, &e.Results, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, searchedAt); parseErr == nil {
			e.SearchedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
