// Package classify maps a classifier RiskPayload to the discrete status shown
// to the user.
package classify

import "github.com/dmitrijs2005/fraudshield/internal/client/models"

// SuspiciousThreshold is the exclusive lower bound on confidence for a
// non-scam message to be shown as suspicious.
const SuspiciousThreshold = 30

// Status is the three-way display classification.
type Status int

const (
	Safe Status = iota
	Suspicious
	ScamDetected
)

func (s Status) String() string {
	switch s {
	case ScamDetected:
		return "Scam Detected"
	case Suspicious:
		return "Suspicious"
	default:
		return "Looks Safe"
	}
}

// Classify returns the display status for p. Checks run in order and the
// first match wins: the backend verdict, then the confidence threshold.
func Classify(p models.RiskPayload) Status {
	if p.IsScam {
		return ScamDetected
	}
	if p.Confidence > SuspiciousThreshold {
		return Suspicious
	}
	return Safe
}

// ShowURLs reports whether the detected-URL block is rendered. It does not
// depend on the status.
func ShowURLs(p models.RiskPayload) bool {
	return len(p.URLsDetected) > 0
}
