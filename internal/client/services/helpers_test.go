package services

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fraudshield/internal/client/auth"
	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/fakeapi"
	"github.com/dmitrijs2005/fraudshield/internal/client/store"
)

// memStore is an in-memory CredentialStore with error injection.
type memStore struct {
	mu       sync.Mutex
	token    string
	saveErr  error
	clearErr error
	loadErr  error
	clears   int
}

func (m *memStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.loadErr
}

func (m *memStore) Save(_ context.Context, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = tok
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

var errDisk = errors.New("disk full")

// clock is the decoder's time source; tests move it forward to expire tokens.
type clock struct {
	mu  sync.Mutex
	off time.Duration
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Now().Add(c.off)
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.off += d
}

type fixture struct {
	backend *fakeapi.Backend
	api     *client.HTTPClient
	store   *memStore
	clock   *clock
	session *SessionManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := fakeapi.New()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)

	api := client.NewHTTPClient(srv.URL)
	st := &memStore{}
	clk := &clock{}
	return &fixture{
		backend: b,
		api:     api,
		store:   st,
		clock:   clk,
		session: NewSessionManager(api, st, auth.NewDecoder(clk.Now), nil),
	}
}

// sqliteStore returns a real store backed by an in-memory database.
func sqliteStore(t *testing.T) *store.TokenStore {
	t.Helper()
	db, err := store.OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.NewTokenStore(db)
}
