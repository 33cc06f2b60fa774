// Package sqlite stores saved colours in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/figerout/figerout/internal/collection"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// colourColumns must match the scan order in scanColour.
const colourColumns = `id, hex, name, note, saved_at`

// Store implements collection.Store.
type Store struct {
	db     *sql.DB
	logger hclog.Logger
}

var _ collection.Store = (*Store)(nil)

// Open creates or opens the database at path, creating parent directories.
// It configures WAL mode, sets pragmas, and applies the schema.
func Open(path string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	logger.Debug("collection database open", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func scanColour(scanner interface{ Scan(dest ...any) error }) (*collection.Colour, error) {
	var (
		c       collection.Colour
		savedAt string
	)
	if err := scanner.Scan(&c.ID, &c.Hex, &c.Name, &c.Note, &savedAt); err != nil {
		return nil, err
	}

	t, err := parseTime(savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse saved_at for %s: %w", c.ID, err)
	}
	c.SavedAt = t
	return &c, nil
}

// Save inserts c.
func (s *Store) Save(ctx context.Context, c *collection.Colour) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_colours (id, hex, name, note, saved_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Hex, c.Name, c.Note, formatTime(c.SavedAt),
	)
	return err
}

// Get returns the colour with id.
// Returns collection.ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*collection.Colour, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+colourColumns+` FROM saved_colours WHERE id = ?`, id)

	c, err := scanColour(row)
	if err == sql.ErrNoRows {
		return nil, collection.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns colours newest first. Colours saved at the same instant are
// ordered by insertion, latest first.
func (s *Store) List(ctx context.Context, opts collection.ListOptions) ([]*collection.Colour, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+colourColumns+` FROM saved_colours
		ORDER BY saved_at DESC, seq DESC
		LIMIT ? OFFSET ?`, limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colours := make([]*collection.Colour, 0)
	for rows.Next() {
		c, err := scanColour(rows)
		if err != nil {
			return nil, err
		}
		colours = append(colours, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return colours, nil
}

// Delete removes the colour with id.
// Returns collection.ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_colours WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpdateNote replaces the note of the colour with id and returns the result.
func (s *Store) UpdateNote(ctx context.Context, id, note string) (*collection.Colour, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE saved_colours SET note = ? WHERE id = ?`, note, id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return collection.ErrNotFound
	}
	return nil
}
