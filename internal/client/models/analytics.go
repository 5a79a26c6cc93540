package models

import (
	"encoding/json"
	"fmt"
)

// DailyCount is the number of reports filed on one day.
type DailyCount struct {
	Label string
	Count int64
}

// UnmarshalJSON decodes the backend's [label, count] pair.
func (d *DailyCount) UnmarshalJSON(data []byte) error {
	cols, err := splitRow(data, 2)
	if err != nil {
		return err
	}
	label, err := decodeString(cols[0])
	if err != nil {
		return fmt.Errorf("daily label: %w", err)
	}
	count, err := decodeInt(cols[1])
	if err != nil {
		return fmt.Errorf("daily count: %w", err)
	}
	*d = DailyCount{Label: label, Count: count}
	return nil
}

// AnalyticsSummary is a read-only snapshot of report statistics.
type AnalyticsSummary struct {
	Total     int64        `json:"total"`
	ScamCount int64        `json:"scam"`
	SafeCount int64        `json:"safe"`
	Daily     []DailyCount `json:"daily"`
}

// MarshalJSON is used by the fake backend in tests; it mirrors the wire shape.
func (d DailyCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Label, d.Count})
}
