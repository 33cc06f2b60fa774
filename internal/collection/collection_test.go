package collection_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figerout/figerout/internal/collection"
	"github.com/figerout/figerout/internal/collection/sqlite"
	"github.com/figerout/figerout/internal/colour"
)

func newTestService(t *testing.T) *collection.Service {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "collection.db"), nil)
	require.NoError(t, err)
	svc := collection.NewService(store, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestServiceSave(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.Save(ctx, "fe0000", "  almost red  ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID, collection.IDPrefix+"-"), "ID %q", c.ID)
	assert.Equal(t, "#FE0000", c.Hex)
	assert.Equal(t, "Red", c.Name)
	assert.Equal(t, "almost red", c.Note)
	assert.False(t, c.SavedAt.IsZero())

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Hex, got.Hex)
}

func TestServiceSaveDuplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Save(ctx, "#0000FF", "first")
	require.NoError(t, err)
	b, err := svc.Save(ctx, "#0000ff", "second")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	all, err := svc.List(ctx, collection.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestServiceSaveRejects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "#12345", "")
	assert.ErrorIs(t, err, colour.ErrMalformedColour)

	_, err = svc.Save(ctx, "#123456", strings.Repeat("x", collection.MaxNoteLength+1))
	assert.ErrorIs(t, err, collection.ErrNoteTooLong)

	_, err = svc.List(ctx, collection.ListOptions{Limit: -1})
	assert.Error(t, err)
}

func TestServiceNoteLengthCountsCharacters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// 500 two-byte characters: 1000 bytes, within the limit.
	note := strings.Repeat("é", collection.MaxNoteLength)
	saved, err := svc.Save(ctx, "#123456", note)
	require.NoError(t, err)
	assert.Equal(t, note, saved.Note)

	_, err = svc.UpdateNote(ctx, saved.ID, note+"é")
	assert.ErrorIs(t, err, collection.ErrNoteTooLong)
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.Save(ctx, "#2E3192", "")
	require.NoError(t, err)
	assert.Equal(t, "Figerout Indigo", c.Name)

	updated, err := svc.UpdateNote(ctx, c.ID, "brand")
	require.NoError(t, err)
	assert.Equal(t, "brand", updated.Note)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := collection.NewID()
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.Len(t, id, len("col-")+21)
	}
}
