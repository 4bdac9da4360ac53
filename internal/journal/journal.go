// Package journal keeps a record of finished answering passes for the
// running session. The database lives in memory and is gone when the
// process exits.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const tableAttempts = "attempts"

// Attempt is one finished answering pass.
type Attempt struct {
	ID         int64
	SessionID  string
	Try        int
	Correct    int
	Total      int
	Perfect    bool
	FinishedAt time.Time
}

// Journal appends and lists attempts.
type Journal struct {
	drv *entsql.Driver
}

// Open creates an empty in-memory journal.
func Open(ctx context.Context) (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Journal{drv: entsql.OpenDB(dialect.SQLite, db)}, nil
}

// Close releases the database. All attempts are discarded.
func (j *Journal) Close() error {
	return j.drv.Close()
}

// Append records an attempt.
func (j *Journal) Append(ctx context.Context, a Attempt) error {
	if a.FinishedAt.IsZero() {
		a.FinishedAt = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttempts).
		Columns("session_id", "try", "correct", "total", "perfect", "finished_at_ms").
		Values(a.SessionID, a.Try, a.Correct, a.Total, a.Perfect, a.FinishedAt.UnixMilli()).
		Query()

	var res sql.Result
	if err := j.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// List returns the attempts of a session in the order they were appended.
func (j *Journal) List(ctx context.Context, sessionID string) ([]Attempt, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "session_id", "try", "correct", "total", "perfect", "finished_at_ms").
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("id").
		Query()

	var rows entsql.Rows
	if err := j.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a  Attempt
			ms int64
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Try, &a.Correct, &a.Total, &a.Perfect, &ms); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.FinishedAt = time.UnixMilli(ms)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = MEMORY",
		"PRAGMA synchronous = OFF",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		try INTEGER NOT NULL CHECK (try >= 1),
		correct INTEGER NOT NULL CHECK (correct >= 0),
		total INTEGER NOT NULL CHECK (total >= 1),
		perfect INTEGER NOT NULL,
		finished_at_ms INTEGER NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS attempts_session ON attempts (session_id)`)
	return err
}
