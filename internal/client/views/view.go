// Package views holds the dashboard view models. A view fetches its data when
// mounted, drops any result that arrives after the session changed or the
// view was unmounted, and exposes the loaded data to the renderer.
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/fraudshield/internal/client/services"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

var (
	ErrStale      = errors.New("stale fetch dropped")
	ErrNotMounted = errors.New("view is not mounted")
)

// Session is the read side of services.SessionManager used by views.
type Session interface {
	Snapshot() services.Snapshot
	IsCurrent(gen uint64) bool
}

// View is the lifecycle shared by all dashboard views.
type View interface {
	Name() string
	Mount(ctx context.Context) error
	Refresh(ctx context.Context) error
	Unmount()
}

// loader runs fetches for one view and guards their results.
type loader[T any] struct {
	name    string
	session Session
	fetch   func(ctx context.Context, token string) (T, error)
	log     logging.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	data    T
	loaded  bool
	gen     uint64
	lastErr error
}

func (l *loader[T]) setup(name string, s Session, log logging.Logger, fetch func(context.Context, string) (T, error)) {
	if log == nil {
		log = logging.Nop()
	}
	l.name, l.session, l.fetch, l.log = name, s, fetch, log.With("view", name)
}

// Name returns the view name.
func (l *loader[T]) Name() string { return l.name }

// Mount starts the view's lifetime and performs the initial fetch. The
// lifetime ends on Unmount or when ctx is done.
func (l *loader[T]) Mount(ctx context.Context) error {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.ctx, l.cancel = context.WithCancel(ctx)
	l.mu.Unlock()

	return l.load()
}

// Refresh re-fetches when the session generation moved since the last
// successful load, or when nothing is loaded.
func (l *loader[T]) Refresh(context.Context) error {
	l.mu.Lock()
	mounted := l.ctx != nil
	fresh := l.loaded && l.session.IsCurrent(l.gen)
	l.mu.Unlock()

	if !mounted {
		return ErrNotMounted
	}
	if fresh {
		return nil
	}
	return l.load()
}

// reload fetches unconditionally.
func (l *loader[T]) reload() error {
	return l.load()
}

func (l *loader[T]) load() error {
	l.mu.Lock()
	ctx := l.ctx
	l.mu.Unlock()
	if ctx == nil {
		return ErrNotMounted
	}

	snap := l.session.Snapshot()
	v, err := l.fetch(ctx, snap.Token)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ctx != ctx || ctx.Err() != nil || !l.session.IsCurrent(snap.Generation) {
		l.log.Debug(ctx, "dropping stale fetch", "generation", snap.Generation)
		return ErrStale
	}

	if err != nil {
		var zero T
		l.data, l.loaded, l.lastErr = zero, false, err
		l.log.Warn(ctx, "fetch failed", "error", err)
		return err
	}

	l.data, l.loaded, l.gen, l.lastErr = v, true, snap.Generation, nil
	return nil
}

// Unmount ends the view's lifetime: the in-flight fetch is cancelled and its
// result will be dropped.
func (l *loader[T]) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	var zero T
	l.ctx, l.cancel = nil, nil
	l.data, l.loaded, l.lastErr = zero, false, nil
}

// snapshot returns the loaded data.
func (l *loader[T]) snapshot() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data, l.loaded
}

// Err returns the error of the last fetch, if it failed.
func (l *loader[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
