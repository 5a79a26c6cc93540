package views

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/models"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// HistoryView lists the caller's past checks. Read-only.
type HistoryView struct {
	loader[[]models.HistoryRecord]
}

func NewHistoryView(api client.Client, s Session, log logging.Logger) *HistoryView {
	v := &HistoryView{}
	v.setup("history", s, log, func(ctx context.Context, token string) ([]models.HistoryRecord, error) {
		return api.History(ctx, token)
	})
	return v
}

// Records returns the loaded rows in server order.
func (v *HistoryView) Records() []models.HistoryRecord {
	r, _ := v.snapshot()
	return r
}

// FormatPercent renders a risk value with exactly two decimals.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// YesNo renders a scam flag.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
