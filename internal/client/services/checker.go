package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/models"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

var (
	ErrInFlight         = errors.New("a check is already in progress")
	ErrPredictionFailed = errors.New("prediction failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionChanged   = errors.New("session changed during request")
)

// Checker submits messages for classification and holds the latest result.
//
// Only one submission may be outstanding. A submission clears the previous
// result, marks the checker loading, awaits the backend, records either the
// result or the error, and finally clears loading.
type Checker struct {
	api     client.Client
	session *SessionManager
	log     logging.Logger

	mu      sync.Mutex
	loading bool
	result  *models.RiskPayload
	err     error

	unsubscribe func()
}

// NewChecker returns a checker bound to session. Its result is cleared on
// every credential change. Call Close to detach it.
func NewChecker(api client.Client, session *SessionManager, log logging.Logger) *Checker {
	if log == nil {
		log = logging.Nop()
	}
	c := &Checker{api: api, session: session, log: log.With("component", "checker")}
	c.unsubscribe = session.Subscribe(func(Snapshot) { c.Reset() })
	return c
}

// Check classifies text with the current credential. Without a credential
// that still decodes it fails with ErrNotAuthenticated and sends nothing.
func (c *Checker) Check(ctx context.Context, text string) (models.RiskPayload, error) {
	snap, ok := c.session.Authenticated()
	if !ok {
		return models.RiskPayload{}, ErrNotAuthenticated
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return models.RiskPayload{}, ErrInFlight
	}
	c.result = nil
	c.err = nil
	c.loading = true
	c.mu.Unlock()

	p, err := c.api.Predict(ctx, snap.Token, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loading = false }()

	if !c.session.IsCurrent(snap.Generation) {
		c.log.Debug(ctx, "dropping result from previous session", "generation", snap.Generation)
		return models.RiskPayload{}, ErrSessionChanged
	}
	if err != nil {
		c.err = fmt.Errorf("%w: %w", ErrPredictionFailed, err)
		c.log.Warn(ctx, "prediction failed", "error", err)
		return models.RiskPayload{}, c.err
	}

	c.result = &p
	return p, nil
}

// Result returns the latest payload, if any.
func (c *Checker) Result() (models.RiskPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return models.RiskPayload{}, false
	}
	return *c.result, true
}

// Loading reports whether a submission is outstanding.
func (c *Checker) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error of the latest submission.
func (c *Checker) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Reset clears the result and error. An outstanding submission keeps running
// but its result will be dropped if the session changed.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.err = nil
}

// Close detaches the checker from the session.
func (c *Checker) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
