package models

import "encoding/json"

// RiskPayload is the classifier output for one submitted message.
// A payload is immutable once decoded.
type RiskPayload struct {
	// IsScam is the backend verdict.
	IsScam bool
	// Confidence is the final risk score in percent (0–100).
	Confidence float64
	// URLsDetected lists links found in the message, in message order.
	URLsDetected []string

	// Score breakdown as reported by the backend. Zero when absent.
	MLScore     float64
	URLRisk     float64
	KeywordRisk float64
}

// riskWire accepts both the backend field names (scam, urls_detected) and the
// camel-case variants.
type riskWire struct {
	Scam        *bool    `json:"scam"`
	IsScam      *bool    `json:"isScam"`
	Confidence  float64  `json:"confidence"`
	URLs        []string `json:"urls_detected"`
	URLsCamel   []string `json:"urlsDetected"`
	MLScore     float64  `json:"ml_score"`
	URLRisk     float64  `json:"url_risk"`
	KeywordRisk float64  `json:"keyword_risk"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RiskPayload) UnmarshalJSON(data []byte) error {
	var w riskWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := RiskPayload{
		Confidence:  w.Confidence,
		MLScore:     w.MLScore,
		URLRisk:     w.URLRisk,
		KeywordRisk: w.KeywordRisk,
	}
	switch {
	case w.Scam != nil:
		out.IsScam = *w.Scam
	case w.IsScam != nil:
		out.IsScam = *w.IsScam
	}

	urls := w.URLs
	if urls == nil {
		urls = w.URLsCamel
	}
	out.URLsDetected = append([]string{}, urls...)

	*p = out
	return nil
}
