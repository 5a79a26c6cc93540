// Package services contains application services for the FraudShield client.
// This file defines the session manager: login, signup, logout, startup
// restore and derivation of the current principal from the stored token.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fraudshield/internal/client/auth"
	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/store"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// Snapshot is the credential as seen by one operation. Generation increases
// on every credential change, so a task that captured a Snapshot can tell
// whether its result is still wanted.
type Snapshot struct {
	Token      string
	Generation uint64
}

// Confirmation is the server's reply to a successful signup.
type Confirmation struct {
	Message string
}

// SessionManager owns the credential. It is the only writer; views and the
// checker read it through Snapshot and State.
//
// The principal is never cached: State and CurrentRole decode the current
// token on every call, so a logout is visible immediately.
type SessionManager struct {
	api     client.Client
	store   store.CredentialStore
	decoder *auth.Decoder
	log     logging.Logger

	mu         sync.RWMutex
	token      string
	generation uint64
	nextSubID  int
	subs       map[int]func(Snapshot)
}

// NewSessionManager constructs a manager in the Anonymous state. Call Restore
// to adopt a persisted credential.
func NewSessionManager(api client.Client, st store.CredentialStore, decoder *auth.Decoder, log logging.Logger) *SessionManager {
	if decoder == nil {
		decoder = auth.NewDecoder(nil)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &SessionManager{
		api:     api,
		store:   st,
		decoder: decoder,
		log:     log.With("component", "session"),
		subs:    make(map[int]func(Snapshot)),
	}
}

// Restore adopts the persisted credential, if any. A credential that cannot
// be decoded leaves the session Anonymous and is removed from the store.
func (m *SessionManager) Restore(ctx context.Context) error {
	tok, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if tok == "" {
		return nil
	}

	if _, err := m.decoder.Decode(tok); err != nil {
		m.log.Warn(ctx, "discarding unusable stored credential", "error", err)
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn(ctx, "failed to clear stored credential", "error", err)
		}
		return nil
	}

	m.adopt(tok)
	m.log.Info(ctx, "session restored", "state", auth.Describe(m.State()))
	return nil
}

// Login authenticates and adopts the issued credential. Server-reported
// failures and credentials that cannot be decoded are returned as
// *client.AuthError, network failures as client.ErrUnavailable.
func (m *SessionManager) Login(ctx context.Context, email, password string) (string, error) {
	tok, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Info(ctx, "login failed", "error", err)
		return "", err
	}

	if _, err := m.decoder.Decode(tok); err != nil {
		m.log.Warn(ctx, "server issued an unusable credential", "error", err)
		return "", &client.AuthError{Message: "Login failed", Err: err}
	}

	m.adopt(tok)
	if err := m.store.Save(ctx, tok); err != nil {
		// The session stays usable; it just won't survive a restart.
		m.log.Warn(ctx, "failed to persist credential", "error", err)
	}

	m.log.Info(ctx, "login succeeded", "state", auth.Describe(m.State()))
	return tok, nil
}

// Signup registers an account. It never establishes a session.
func (m *SessionManager) Signup(ctx context.Context, name, email, password string) (Confirmation, error) {
	msg, err := m.api.Signup(ctx, name, email, password)
	if err != nil {
		m.log.Info(ctx, "signup failed", "error", err)
		return Confirmation{}, err
	}
	return Confirmation{Message: msg}, nil
}

// Logout drops the credential unconditionally. The in-memory session is
// Anonymous on return even if clearing the store fails; that error is
// returned for reporting only.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.adopt("")
	m.log.Info(ctx, "logged out")

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// adopt replaces the credential, bumps the generation and notifies
// subscribers outside the lock.
func (m *SessionManager) adopt(tok string) {
	m.mu.Lock()
	m.token = tok
	m.generation++
	snap := Snapshot{Token: m.token, Generation: m.generation}
	subs := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Snapshot returns the current credential and generation.
func (m *SessionManager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Token: m.token, Generation: m.generation}
}

// IsCurrent reports whether gen is still the live generation.
func (m *SessionManager) IsCurrent(gen uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation == gen
}

// Authenticated returns the current snapshot when its credential decodes.
// ok is false when there is no credential or it is malformed or expired.
func (m *SessionManager) Authenticated() (Snapshot, bool) {
	snap := m.Snapshot()
	if snap.Token == "" {
		return snap, false
	}
	if _, err := m.decoder.Decode(snap.Token); err != nil {
		m.log.Debug(context.Background(), "credential no longer usable", "error", err)
		return Snapshot{Generation: snap.Generation}, false
	}
	return snap, true
}

// Subscribe registers fn to run after every credential change. The returned
// func removes it.
func (m *SessionManager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Principal decodes the current credential. ok is false when there is no
// credential or it cannot be decoded (malformed or expired).
func (m *SessionManager) Principal() (p auth.Principal, ok bool) {
	tok := m.Snapshot().Token
	if tok == "" {
		return auth.Principal{}, false
	}
	p, err := m.decoder.Decode(tok)
	if err != nil {
		if !errors.Is(err, auth.ErrTokenDecode) {
			m.log.Error(context.Background(), "unexpected decode failure", "error", err)
		}
		return auth.Principal{}, false
	}
	return p, true
}

// CurrentRole returns the role claim of the current credential.
func (m *SessionManager) CurrentRole() (auth.Role, bool) {
	p, ok := m.Principal()
	if !ok {
		return "", false
	}
	return p.Role, true
}

// State returns the authentication state variant.
func (m *SessionManager) State() auth.State {
	p, ok := m.Principal()
	if !ok {
		return auth.Anonymous{}
	}
	return auth.StateOf(&p)
}
