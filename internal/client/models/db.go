// Package models defines client-side data models used by the FraudShield CLI:
// classification payloads returned by /predict and the read models behind the
// admin and history dashboards.
package models
