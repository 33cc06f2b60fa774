package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figerout/figerout/internal/collection"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "collection.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func makeColour(id, hex, name string, savedAt time.Time) *collection.Colour {
	return &collection.Colour{ID: id, Hex: hex, Name: name, SavedAt: savedAt}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	savedAt := time.Date(2025, 3, 1, 12, 30, 0, 123456789, time.UTC)
	c := makeColour("col-1", "#FF6B35", "Figerout Orange", savedAt)
	c.Note = "logo"
	require.NoError(t, s.Save(ctx, c))

	got, err := s.Get(ctx, "col-1")
	require.NoError(t, err)
	assert.Equal(t, c.Hex, got.Hex)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, "logo", got.Note)
	assert.True(t, got.SavedAt.Equal(savedAt), "SavedAt: got %v, want %v", got.SavedAt, savedAt)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "col-missing")
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, makeColour("col-a", "#000000", "Black", base)))
	require.NoError(t, s.Save(ctx, makeColour("col-b", "#FFFFFF", "White", base.Add(100*time.Millisecond))))
	require.NoError(t, s.Save(ctx, makeColour("col-c", "#FF0000", "Red", base.Add(120*time.Millisecond))))
	// Same instant as col-c; inserted later so listed first.
	require.NoError(t, s.Save(ctx, makeColour("col-d", "#FF0000", "Red", base.Add(120*time.Millisecond))))

	all, err := s.List(ctx, collection.ListOptions{})
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"col-d", "col-c", "col-b", "col-a"}, ids)

	page, err := s.List(ctx, collection.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "col-c", page[0].ID)
	assert.Equal(t, "col-b", page[1].ID)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	all, err := s.List(context.Background(), collection.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, makeColour("col-1", "#0000FF", "Blue", time.Now())))
	require.NoError(t, s.Delete(ctx, "col-1"))

	_, err := s.Get(ctx, "col-1")
	assert.ErrorIs(t, err, collection.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "col-1"), collection.ErrNotFound)
}

func TestUpdateNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, makeColour("col-1", "#0000FF", "Blue", time.Now())))

	got, err := s.UpdateNote(ctx, "col-1", "sky")
	require.NoError(t, err)
	assert.Equal(t, "sky", got.Note)

	got, err = s.UpdateNote(ctx, "col-1", "sky")
	require.NoError(t, err, "unchanged note still matches the row")
	assert.Equal(t, "sky", got.Note)

	_, err = s.UpdateNote(ctx, "col-2", "x")
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, makeColour("col-1", "#00FF00", "Lime", time.Now())))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "col-1")
	require.NoError(t, err)
	assert.Equal(t, "Lime", got.Name)
}
