// Package history persists extraction runs so a route can be reopened
// after the manifest photo is gone.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routescan/internal/db"
)

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("history: run not found")

// timeLayout sorts lexically in the same order as chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one extraction over one manifest.
type Run struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	LineCount int       `json:"line_count"`
	Addresses []string  `json:"addresses"`
}

// Summary is a Run without its address list.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	LineCount    int       `json:"line_count"`
	AddressCount int       `json:"address_count"`
}

// Store reads and writes runs through a db.Connection.
type Store struct {
	conn *db.Connection
	now  func() time.Time
}

// NewStore wraps conn. Call Migrate before first use.
func NewStore(conn *db.Connection) *Store {
	return &Store{conn: conn, now: time.Now}
}

// Migrate creates the runs table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS extraction_runs (
			id            TEXT PRIMARY KEY,
			source        TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			line_count    INTEGER NOT NULL,
			address_count INTEGER NOT NULL,
			addresses     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_extraction_runs_created ON extraction_runs(created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.conn.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate history: %w", err)
		}
	}
	return nil
}

// Save inserts run, filling in ID and CreatedAt when they are zero.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	if run.Addresses == nil {
		run.Addresses = []string{}
	}

	addrs, err := json.Marshal(run.Addresses)
	if err != nil {
		return fmt.Errorf("encode addresses: %w", err)
	}

	_, err = s.conn.DB.ExecContext(ctx, s.conn.Rebind(`
		INSERT INTO extraction_runs (id, source, created_at, line_count, address_count, addresses)
		VALUES (?, ?, ?, ?, ?, ?)`),
		run.ID.String(), run.Source, run.CreatedAt.Format(timeLayout),
		run.LineCount, len(run.Addresses), string(addrs),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// Get loads a run by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	var (
		run              Run
		rawID, createdAt string
		addrs            string
	)
	err := s.conn.DB.QueryRowContext(ctx, s.conn.Rebind(`
		SELECT id, source, created_at, line_count, addresses
		FROM extraction_runs WHERE id = ?`), id.String(),
	).Scan(&rawID, &run.Source, &createdAt, &run.LineCount, &addrs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	if run.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("get run %s: bad id: %w", id, err)
	}
	if run.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("get run %s: bad timestamp: %w", id, err)
	}
	if err := json.Unmarshal([]byte(addrs), &run.Addresses); err != nil {
		return nil, fmt.Errorf("get run %s: bad addresses: %w", id, err)
	}
	return &run, nil
}

// List returns up to limit run summaries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.DB.QueryContext(ctx, s.conn.Rebind(`
		SELECT id, source, created_at, line_count, address_count
		FROM extraction_runs
		ORDER BY created_at DESC, id
		LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum              Summary
			rawID, createdAt string
		)
		if err := rows.Scan(&rawID, &sum.Source, &createdAt, &sum.LineCount, &sum.AddressCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if sum.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("scan run: bad id: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("scan run: bad timestamp: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
