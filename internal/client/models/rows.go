package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrShortRow is returned when a positional row has fewer columns than required.
var ErrShortRow = errors.New("row has too few columns")

// splitRow decodes a JSON array into its raw columns and checks the minimum width.
// Extra trailing columns are allowed.
func splitRow(data []byte, width int) ([]json.RawMessage, error) {
	var cols []json.RawMessage
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, err
	}
	if len(cols) < width {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrShortRow, width, len(cols))
	}
	return cols, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func decodeInt(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}

func decodeFloat(raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Float64()
}

// decodeBool accepts JSON booleans and numeric flags (0 is false).
func decodeBool(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	f, err := decodeFloat(raw)
	if err != nil {
		return false, fmt.Errorf("not a boolean: %s", string(raw))
	}
	return f != 0, nil
}
