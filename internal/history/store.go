// Package history persists submitted SQL to a local sqlite database so a
// session's queries survive restarts even though session state does not.
package history

import (
	"database/sql"
	_ "embed"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one submitted statement, successful or not.
type Entry struct {
	ID       int64
	Engine   string
	Database string
	Query    string
	RanAt    time.Time
	Duration time.Duration
	Success  bool
	ErrorMsg string
}

// Store manages query history persistence.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Add records one submission. Failures to record are the caller's to
// ignore; history must never block query dispatch.
func (s *Store) Add(e Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO query_history (engine, database_name, query, duration_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Engine,
		e.Database,
		e.Query,
		e.Duration.Milliseconds(),
		e.Success,
		e.ErrorMsg,
	)
	return err
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, engine, database_name, query, ran_at, duration_ms, success, error_message
		FROM query_history
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ranAt string
		var durationMs int64
		if err := rows.Scan(&e.ID, &e.Engine, &e.Database, &e.Query, &ranAt, &durationMs, &e.Success, &e.ErrorMsg); err != nil {
			return nil, err
		}
		if t, perr := time.Parse("2006-01-02 15:04:05", ranAt); perr == nil {
			e.RanAt = t
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
