package models

import (
	"encoding/json"
	"fmt"
)

// HistoryRecord is one previously classified message.
type HistoryRecord struct {
	ID          int64
	Message     string
	IsScam      bool
	RiskPercent float64
}

// UnmarshalJSON decodes a report row [id, message, scam, confidence, ...].
// The backend returns the whole reports row, so trailing columns are ignored.
func (h *HistoryRecord) UnmarshalJSON(data []byte) error {
	cols, err := splitRow(data, 4)
	if err != nil {
		return err
	}

	var r HistoryRecord
	if r.ID, err = decodeInt(cols[0]); err != nil {
		return fmt.Errorf("history id: %w", err)
	}
	if r.Message, err = decodeString(cols[1]); err != nil {
		return fmt.Errorf("history message: %w", err)
	}
	if r.IsScam, err = decodeBool(cols[2]); err != nil {
		return fmt.Errorf("history scam flag: %w", err)
	}
	if r.RiskPercent, err = decodeFloat(cols[3]); err != nil {
		return fmt.Errorf("history risk: %w", err)
	}
	*h = r
	return nil
}

// MarshalJSON mirrors the wire row shape, with the scam flag as 0/1.
func (h HistoryRecord) MarshalJSON() ([]byte, error) {
	flag := 0
	if h.IsScam {
		flag = 1
	}
	return json.Marshal([]any{h.ID, h.Message, flag, h.RiskPercent})
}
