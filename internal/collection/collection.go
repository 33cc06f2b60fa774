// Package collection manages the user's saved colours.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/figerout/figerout/internal/colour"
)

// IDPrefix is prepended to every saved colour ID.
const IDPrefix = "col"

// MaxNoteLength bounds the note stored with a colour, in characters.
const MaxNoteLength = 500

var (
	// ErrNotFound is returned when no saved colour has the requested ID.
	ErrNotFound = errors.New("saved colour not found")

	// ErrNoteTooLong is returned when a note exceeds MaxNoteLength.
	ErrNoteTooLong = fmt.Errorf("note exceeds %d characters", MaxNoteLength)
)

// Colour is one saved entry. The same hex may be saved more than once.
type Colour struct {
	ID      string    `json:"id"`
	Hex     string    `json:"hex"`
	Name    string    `json:"name"`
	Note    string    `json:"note,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

// ListOptions pages through saved colours. A zero Limit returns everything.
type ListOptions struct {
	Limit  int
	Offset int
}

// Store persists saved colours.
type Store interface {
	Save(ctx context.Context, c *Colour) error
	Get(ctx context.Context, id string) (*Colour, error)
	// List returns saved colours newest first.
	List(ctx context.Context, opts ListOptions) ([]*Colour, error)
	Delete(ctx context.Context, id string) error
	UpdateNote(ctx context.Context, id, note string) (*Colour, error)
	Close() error
}

// NewID returns a prefixed NanoID such as "col-V1StGXR8_Z5jdHi6B-myT".
func NewID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return IDPrefix + "-" + id, nil
}

// Service applies naming and validation on top of a Store.
type Service struct {
	store  Store
	logger hclog.Logger
	now    func() time.Time
}

// NewService creates a Service. A nil logger discards output.
func NewService(store Store, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Save normalises hex, names it and stores it with note.
func (s *Service) Save(ctx context.Context, hex, note string) (*Colour, error) {
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	note, err = cleanNote(note)
	if err != nil {
		return nil, err
	}

	id, err := NewID()
	if err != nil {
		return nil, err
	}

	c := &Colour{
		ID:      id,
		Hex:     rgb.Hex(),
		Name:    colour.Nearest(rgb).Entry.Name,
		Note:    note,
		SavedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save %s: %w", c.Hex, err)
	}

	s.logger.Debug("colour saved", "id", c.ID, "hex", c.Hex, "name", c.Name)
	return c, nil
}

// Get returns the saved colour with id.
func (s *Service) Get(ctx context.Context, id string) (*Colour, error) {
	return s.store.Get(ctx, id)
}

// List returns saved colours newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Colour, error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("invalid page: limit=%d offset=%d", opts.Limit, opts.Offset)
	}
	return s.store.List(ctx, opts)
}

// Delete removes the saved colour with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("colour deleted", "id", id)
	return nil
}

// UpdateNote replaces the note on a saved colour.
func (s *Service) UpdateNote(ctx context.Context, id, note string) (*Colour, error) {
	note, err := cleanNote(note)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateNote(ctx, id, note)
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

func cleanNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return "", ErrNoteTooLong
	}
	return note, nil
}
