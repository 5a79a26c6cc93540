package views

import (
	"context"

	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/models"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// Slice is one labelled value of a chart series.
type Slice struct {
	Label string
	Value int64
}

// AnalyticsView shows admin-wide report statistics. Read-only.
type AnalyticsView struct {
	loader[models.AnalyticsSummary]
}

func NewAnalyticsView(api client.Client, s Session, log logging.Logger) *AnalyticsView {
	v := &AnalyticsView{}
	v.setup("analytics", s, log, func(ctx context.Context, token string) (models.AnalyticsSummary, error) {
		return api.Analytics(ctx, token)
	})
	return v
}

// Summary returns the loaded statistics.
func (v *AnalyticsView) Summary() (models.AnalyticsSummary, bool) {
	return v.snapshot()
}

// Distribution is the scam/safe split, in that order.
func (v *AnalyticsView) Distribution() []Slice {
	s, ok := v.snapshot()
	if !ok {
		return nil
	}
	return []Slice{
		{Label: "Scam", Value: s.ScamCount},
		{Label: "Safe", Value: s.SafeCount},
	}
}

// DailySeries is the per-day report count in server order.
func (v *AnalyticsView) DailySeries() []Slice {
	s, ok := v.snapshot()
	if !ok {
		return nil
	}
	out := make([]Slice, 0, len(s.Daily))
	for _, d := range s.Daily {
		out = append(out, Slice{Label: d.Label, Value: d.Count})
	}
	return out
}

// Cards are the headline counters.
func (v *AnalyticsView) Cards() []Slice {
	s, ok := v.snapshot()
	if !ok {
		return nil
	}
	return []Slice{
		{Label: "Total Reports", Value: s.Total},
		{Label: "Scams", Value: s.ScamCount},
		{Label: "Safe", Value: s.SafeCount},
	}
}
