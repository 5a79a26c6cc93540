package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/fraudshield/internal/client/classify"
	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/metrics"
	"github.com/dmitrijs2005/fraudshield/internal/client/models"
	"github.com/dmitrijs2005/fraudshield/internal/client/services"
	"github.com/dmitrijs2005/fraudshield/internal/client/views"
)

const barWidth = 30

// Notice turns an error into the one-line message shown to the user.
func Notice(err error) string {
	var ae *client.AuthError
	switch {
	case errors.As(err, &ae):
		return ae.Message
	case errors.Is(err, services.ErrPredictionFailed):
		return "Prediction failed"
	case errors.Is(err, client.ErrUnavailable):
		return "Backend not reachable"
	case errors.Is(err, services.ErrInFlight):
		return "A check is already running"
	case errors.Is(err, services.ErrNotAuthenticated):
		return "Please log in first"
	case errors.Is(err, client.ErrUnauthorized):
		return "Not authorized"
	default:
		return err.Error()
	}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderResult(w io.Writer, p models.RiskPayload) {
	fmt.Fprintln(w, classify.Classify(p))
	fmt.Fprintf(w, "Scam Risk: %s%%\n", number(p.Confidence))

	if p.MLScore != 0 || p.URLRisk != 0 || p.KeywordRisk != 0 {
		fmt.Fprintf(w, "  model %s, links %s, keywords %s\n",
			number(p.MLScore), number(p.URLRisk), number(p.KeywordRisk))
	}

	if classify.ShowURLs(p) {
		fmt.Fprintln(w, "URLs detected:")
		for _, u := range p.URLsDetected {
			fmt.Fprintf(w, "  - %s\n", u)
		}
	}
}

// bar draws v as a share of top.
func bar(v, top int64) string {
	if top <= 0 || v <= 0 {
		return ""
	}
	n := int(v * barWidth / top)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func renderSeries(w io.Writer, title string, series []views.Slice) {
	fmt.Fprintln(w, title)
	if len(series) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}

	var top int64
	for _, s := range series {
		if s.Value > top {
			top = s.Value
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range series {
		fmt.Fprintf(tw, "  %s\t%s\t%d\n", s.Label, bar(s.Value, top), s.Value)
	}
	_ = tw.Flush()
}

func renderAnalytics(w io.Writer, v *views.AnalyticsView) {
	fmt.Fprintln(w, "Admin Analytics")
	if _, ok := v.Summary(); !ok {
		fmt.Fprintln(w, "  (not loaded)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range v.Cards() {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Label, c.Value)
	}
	_ = tw.Flush()

	renderSeries(w, "Scam vs Safe", v.Distribution())
	renderSeries(w, "Reports per Day", v.DailySeries())
}

func renderUsers(w io.Writer, users []models.UserRecord) {
	fmt.Fprintln(w, "User Management")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tEmail\tRole")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	_ = tw.Flush()
}

func renderHistory(w io.Writer, records []models.HistoryRecord) {
	fmt.Fprintln(w, "Your History")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMessage\tScam\tRisk %")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, oneLine(r.Message), views.YesNo(r.IsScam), views.FormatPercent(r.RiskPercent))
	}
	_ = tw.Flush()
}

func renderMetrics(w io.Writer, samples []metrics.Sample) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range samples {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Labels, number(s.Value))
	}
	_ = tw.Flush()
}

// oneLine keeps multi-line messages from breaking table rows.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
