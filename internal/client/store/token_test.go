package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *TokenStore {
	t.Helper()
	db, err := OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTokenStore(db)
}

func TestTokenStore_EmptyLoad(t *testing.T) {
	s := openMemory(t)

	tok, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", tok)

	_, ok, err := s.SavedAt(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_SaveReplacesAndClear(t *testing.T) {
	s := openMemory(t)
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "first"))
	require.NoError(t, s.Save(ctx, "second"))

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	at, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, now.Equal(at))

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", tok)

	// clearing twice is fine
	require.NoError(t, s.Clear(ctx))
}

func TestTokenStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "client.db")
	ctx := context.Background()

	db, err := OpenDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewTokenStore(db).Save(ctx, "persisted"))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tok, err := NewTokenStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)
}

func TestTokenStore_ClosedDB(t *testing.T) {
	db, err := OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	s := NewTokenStore(db)
	require.NoError(t, db.Close())

	require.ErrorContains(t, s.Save(context.Background(), "x"), "save token")
	require.ErrorContains(t, s.Clear(context.Background()), "clear token")
	_, err = s.Load(context.Background())
	require.Error(t, err)
}
