package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/fraudshield/internal/client/auth"
	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/config"
	"github.com/dmitrijs2005/fraudshield/internal/client/metrics"
	"github.com/dmitrijs2005/fraudshield/internal/client/services"
	"github.com/dmitrijs2005/fraudshield/internal/client/store"
	"github.com/dmitrijs2005/fraudshield/internal/client/views"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// App is one running client: its database, session and services.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	tokens  *store.TokenStore
	session *services.SessionManager
	checker *services.Checker
	router  *views.Router
	metrics *metrics.Metrics

	reader *bufio.Reader
	ttyFd  int
	out    io.Writer
}

// Option configures an App.
type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.ttyFd = terminalFd(in)
		a.out = out
	}
}

// NewApp opens the credential database, restores any persisted session and
// wires the services. Close releases the database.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := store.OpenDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	m := metrics.New()
	hc := &http.Client{Timeout: c.Timeout, Transport: m.RoundTripper(nil)}
	api := client.NewHTTPClient(c.APIURL, client.WithHTTPClient(hc), client.WithLogger(log))

	tokens := store.NewTokenStore(db)
	session := services.NewSessionManager(api, tokens, auth.NewDecoder(nil), log)
	if err := session.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		log:     log,
		db:      db,
		tokens:  tokens,
		session: session,
		checker: services.NewChecker(api, session, log),
		router:  views.NewRouter(api, session, log),
		metrics: m,
		reader:  bufio.NewReader(os.Stdin),
		ttyFd:   terminalFd(os.Stdin),
		out:     os.Stdout,
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Close detaches the checker and closes the database.
func (a *App) Close() error {
	a.checker.Close()
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	_, anonymous := a.session.State().(auth.Anonymous)
	return !anonymous
}

func (a *App) getStatus() string {
	return auth.Describe(a.session.State())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Metrics prints the request metrics recorded by this process.
func (a *App) Metrics(context.Context) error {
	samples, err := a.metrics.Summary()
	if err != nil {
		return err
	}
	renderMetrics(a.out, samples)
	return nil
}
