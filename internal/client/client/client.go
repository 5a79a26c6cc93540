package client

import (
	"context"

	"github.com/dmitrijs2005/fraudshield/internal/client/models"
)

// Client is the backend API consumed by the session manager, the checker and
// the dashboard views.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Signup registers an account and returns the server's confirmation text.
	Signup(ctx context.Context, name, email, password string) (string, error)
	// Predict scores one message.
	Predict(ctx context.Context, token, text string) (models.RiskPayload, error)
	// Analytics returns admin-wide report statistics.
	Analytics(ctx context.Context, token string) (models.AnalyticsSummary, error)
	// Users lists all accounts (admin only).
	Users(ctx context.Context, token string) ([]models.UserRecord, error)
	// DeleteUser removes one account by id (admin only).
	DeleteUser(ctx context.Context, token string, id int64) error
	// History lists the caller's classified messages.
	History(ctx context.Context, token string) ([]models.HistoryRecord, error)
}
