// Package fakeapi is an in-memory FraudShield backend for tests. It serves the
// same REST surface as the real service, signs real HS256 tokens and records
// every call so tests can assert on the exact requests the client issued.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/fraudshield/internal/client/models"
)

// Call is one request received by the backend.
type Call struct {
	Method string
	Path   string
	Token  string
}

type account struct {
	id       int64
	name     string
	email    string
	password string
	role     string
}

type report struct {
	id         int64
	userID     int64
	message    string
	scam       bool
	confidence float64
	day        string
}

// Backend is the fake service state. The zero value is not usable; call New.
type Backend struct {
	mu       sync.Mutex
	secret   []byte
	accounts map[int64]*account
	order    []int64
	nextID   int64
	reports  []report
	calls    []Call
	failures map[string]int

	expiresAt  time.Time
	loginToken string

	predict func(text string) models.RiskPayload
	hold    chan struct{}
	entered chan struct{}
}

// New returns an empty backend.
func New() *Backend {
	return &Backend{
		secret:   []byte("dev_fraudshield_secret"),
		accounts: make(map[int64]*account),
		failures: make(map[string]int),
		predict:  defaultPredict,
	}
}

// defaultPredict flags messages containing "otp" or "prize" and reports any
// http(s) link found.
func defaultPredict(text string) models.RiskPayload {
	lower := strings.ToLower(text)
	p := models.RiskPayload{URLsDetected: []string{}}
	for _, f := range strings.Fields(text) {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			p.URLsDetected = append(p.URLsDetected, f)
		}
	}
	switch {
	case strings.Contains(lower, "otp"), strings.Contains(lower, "prize"):
		p.IsScam, p.Confidence = true, 80
	case len(p.URLsDetected) > 0:
		p.Confidence = 35
	default:
		p.Confidence = 5
	}
	return p
}

// AddUser registers an account directly and returns its id.
func (b *Backend) AddUser(name, email, password, role string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(name, email, password, role)
}

func (b *Backend) addUserLocked(name, email, password, role string) int64 {
	b.nextID++
	id := b.nextID
	b.accounts[id] = &account{id: id, name: name, email: email, password: password, role: role}
	b.order = append(b.order, id)
	return id
}

// AddReport stores a classified message for userID on the given day label.
func (b *Backend) AddReport(userID int64, message string, scam bool, confidence float64, day string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reports = append(b.reports, report{
		id: int64(len(b.reports) + 1), userID: userID, message: message,
		scam: scam, confidence: confidence, day: day,
	})
}

// Token signs a token for the given user id and role.
func (b *Backend) Token(userID int64, role string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
	}
	b.mu.Lock()
	if !b.expiresAt.IsZero() {
		claims["exp"] = b.expiresAt.Unix()
	}
	b.mu.Unlock()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return tok
}

// ExpireTokensAt adds an exp claim to every token signed from now on.
func (b *Backend) ExpireTokensAt(t time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expiresAt = t
}

// IssueLoginToken makes a successful /login answer with tok verbatim.
func (b *Backend) IssueLoginToken(tok string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loginToken = tok
}

// SetPredict replaces the scoring function.
func (b *Backend) SetPredict(fn func(text string) models.RiskPayload) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.predict = fn
}

// HoldPredict makes /predict block until the returned release func is called.
// The entered channel receives once per request that reached the handler.
func (b *Backend) HoldPredict() (entered <-chan struct{}, release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hold = make(chan struct{})
	b.entered = make(chan struct{}, 16)
	hold := b.hold
	var once sync.Once
	return b.entered, func() { once.Do(func() { close(hold) }) }
}

// FailWith makes every request to path answer with status until cleared with
// status 0.
func (b *Backend) FailWith(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, path)
		return
	}
	b.failures[path] = status
}

// Calls returns a copy of the recorded requests.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// UserIDs returns the ids of all accounts in creation order.
func (b *Backend) UserIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64(nil), b.order...)
}

// Handler returns the HTTP routes.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Post("/login", b.handleLogin)
	r.Post("/signup", b.handleSignup)

	r.Group(func(r chi.Router) {
		r.Use(b.requireToken)
		r.Post("/predict", b.handlePredict)
		r.Get("/history", b.handleHistory)
		r.Get("/analytics", b.adminOnly(b.handleAnalytics))
		r.Get("/admin/users", b.adminOnly(b.handleUsers))
		r.Delete("/admin/users/{id}", b.adminOnly(b.handleDeleteUser))
	})
	return r
}

type ctxClaims struct{}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Token:  strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
		})
		status := b.failures[r.URL.Path]
		b.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authorization required"})
			return
		}
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(h, "Bearer "), claims, func(*jwt.Token) (any, error) {
			return b.secret, nil
		})
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithClaims(r, claims)))
	})
}

func (b *Backend) adminOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claimsFrom(r)["role"] != "admin" {
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Forbidden"})
			return
		}
		h(w, r)
	}
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	var found *account
	for _, id := range b.order {
		if a := b.accounts[id]; a.email == in.Email {
			found = a
			break
		}
	}
	b.mu.Unlock()

	// The real service answers 200 with an error field on bad credentials.
	if found == nil || found.password != in.Password {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Invalid credentials"})
		return
	}
	b.mu.Lock()
	tok := b.loginToken
	b.mu.Unlock()
	if tok == "" {
		tok = b.Token(found.id, found.role)
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name, Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range b.order {
		if b.accounts[id].email == in.Email {
			writeJSON(w, http.StatusOK, map[string]string{"error": "Email already exists"})
			return
		}
	}
	b.addUserLocked(in.Name, in.Email, in.Password, "user")
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered"})
}

func (b *Backend) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in struct{ Text string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}

	b.mu.Lock()
	hold, entered, predict := b.hold, b.entered, b.predict
	b.mu.Unlock()
	if hold != nil {
		entered <- struct{}{}
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	p := predict(in.Text)
	uid := userIDFrom(r)
	b.AddReport(uid, in.Text, p.IsScam, p.Confidence, time.Now().Format("2006-01-02"))

	writeJSON(w, http.StatusOK, map[string]any{
		"scam":          p.IsScam,
		"confidence":    p.Confidence,
		"ml_score":      p.MLScore,
		"url_risk":      p.URLRisk,
		"keyword_risk":  p.KeywordRisk,
		"urls_detected": p.URLsDetected,
	})
}

func (b *Backend) handleHistory(w http.ResponseWriter, r *http.Request) {
	uid := userIDFrom(r)
	admin := claimsFrom(r)["role"] == "admin"

	b.mu.Lock()
	rows := make([][]any, 0, len(b.reports))
	for i := len(b.reports) - 1; i >= 0; i-- {
		rep := b.reports[i]
		if !admin && rep.userID != uid {
			continue
		}
		flag := 0
		if rep.scam {
			flag = 1
		}
		rows = append(rows, []any{rep.id, rep.message, flag, rep.confidence, rep.userID, rep.day + "T00:00:00"})
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, rows)
}

func (b *Backend) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	var scam, safe int64
	perDay := map[string]int64{}
	var days []string
	for _, rep := range b.reports {
		if rep.scam {
			scam++
		} else {
			safe++
		}
		if _, ok := perDay[rep.day]; !ok {
			days = append(days, rep.day)
		}
		perDay[rep.day]++
	}
	total := int64(len(b.reports))
	b.mu.Unlock()

	daily := make([]models.DailyCount, 0, len(days))
	for _, d := range days {
		daily = append(daily, models.DailyCount{Label: d, Count: perDay[d]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total, "scam": scam, "safe": safe, "daily": daily})
}

func (b *Backend) handleUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	users := make([]models.UserRecord, 0, len(b.order))
	for _, id := range b.order {
		a := b.accounts[id]
		users = append(users, models.UserRecord{ID: a.id, Name: a.name, Email: a.email, Role: a.role})
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, users)
}

func (b *Backend) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid id"})
		return
	}

	b.mu.Lock()
	delete(b.accounts, id)
	kept := b.order[:0]
	for _, v := range b.order {
		if v != id {
			kept = append(kept, v)
		}
	}
	b.order = kept
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
