package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fraudshield/internal/client/models"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets the underlying http.Client (timeouts, transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for the backend rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type predictRequest struct {
	Text string `json:"text"`
}

// authResponse covers both the success and error shapes of /login and
// /signup. Detail is FastAPI's error field and may be a string or a list.
type authResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  any    `json:"detail"`
}

func (r authResponse) errorMessage(fallback string) string {
	if r.Error != "" {
		return r.Error
	}
	if s, ok := r.Detail.(string); ok && s != "" {
		return s
	}
	return fallback
}

// do sends one request and returns the status code and raw body. Only
// transport-level failures produce an error here.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in any) (int, []byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode)
	return resp.StatusCode, b, nil
}

func decode(path string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w: decode %s: %v", ErrUnavailable, ErrUnexpectedResponse, path, err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// checkStatus maps non-2xx replies of authenticated endpoints.
func checkStatus(status int, body []byte) error {
	if isSuccess(status) {
		return nil
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return ErrUnauthorized
	}
	var r authResponse
	_ = json.Unmarshal(body, &r)
	return &StatusError{StatusCode: status, Message: r.errorMessage("")}
}

// getJSON performs an authenticated call and decodes a 2xx body into out.
func (c *HTTPClient) getJSON(ctx context.Context, method, path, token string, in, out any) error {
	status, body, err := c.do(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if err := checkStatus(status, body); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(path, body, out)
}

// Login returns the issued token. A reply without a token is an *AuthError
// carrying the server's message.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var r authResponse
	if err := decode("/login", body, &r); err != nil {
		return "", err
	}
	if !isSuccess(status) || r.Token == "" {
		return "", &AuthError{StatusCode: status, Message: r.errorMessage("Login failed")}
	}
	return r.Token, nil
}

// Signup returns the server's confirmation message verbatim. It never yields
// a token.
func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/signup", "", signupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var r authResponse
	if err := decode("/signup", body, &r); err != nil {
		return "", err
	}
	if !isSuccess(status) || r.Error != "" {
		return "", &AuthError{StatusCode: status, Message: r.errorMessage("Signup failed")}
	}
	return r.Message, nil
}

func (c *HTTPClient) Predict(ctx context.Context, token, text string) (models.RiskPayload, error) {
	var p models.RiskPayload
	if err := c.getJSON(ctx, http.MethodPost, "/predict", token, predictRequest{Text: text}, &p); err != nil {
		return models.RiskPayload{}, err
	}
	return p, nil
}

func (c *HTTPClient) Analytics(ctx context.Context, token string) (models.AnalyticsSummary, error) {
	var s models.AnalyticsSummary
	if err := c.getJSON(ctx, http.MethodGet, "/analytics", token, nil, &s); err != nil {
		return models.AnalyticsSummary{}, err
	}
	return s, nil
}

func (c *HTTPClient) Users(ctx context.Context, token string) ([]models.UserRecord, error) {
	users := []models.UserRecord{}
	if err := c.getJSON(ctx, http.MethodGet, "/admin/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser issues DELETE /admin/users/{id}.
func (c *HTTPClient) DeleteUser(ctx context.Context, token string, id int64) error {
	path := "/admin/users/" + strconv.FormatInt(id, 10)
	return c.getJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *HTTPClient) History(ctx context.Context, token string) ([]models.HistoryRecord, error) {
	rows := []models.HistoryRecord{}
	if err := c.getJSON(ctx, http.MethodGet, "/history", token, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
