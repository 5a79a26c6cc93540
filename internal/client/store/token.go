package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fraudshield/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fraudshield/internal/dbx"
)

const (
	tokenKey   = "token"
	savedAtKey = "token_saved_at"
)

// CredentialStore persists at most one opaque bearer token.
type CredentialStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)
	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
	// Clear removes the stored token.
	Clear(ctx context.Context) error
}

// TokenStore is the sqlite-backed CredentialStore.
type TokenStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewTokenStore returns a store over an already migrated database.
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	tok, err := metadata.NewSQLiteRepository(s.db).Get(ctx, tokenKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

// Save writes the token together with the time it was stored.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, s.db, func(tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, tokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, s.now().UTC().Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, func(tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, tokenKey, savedAtKey)
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// SavedAt returns when the current token was stored. ok is false when no
// token is stored.
func (s *TokenStore) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, savedAtKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", savedAtKey, err)
	}
	return t, true, nil
}
