package cli

import (
	"context"
	"errors"
	"strings"
)

var errEmptyMessage = errors.New("nothing to check")

// Check classifies text and prints the result. With empty text the message
// is read from the input, ending on a blank line.
func (a *App) Check(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		var err error
		text, err = GetMultiline(a.reader, "Paste SMS, email, or message here", a.out)
		if err != nil {
			return err
		}
	}
	if text == "" {
		return errEmptyMessage
	}

	a.printf("Analyzing...\n")
	p, err := a.checker.Check(ctx, text)
	if err != nil {
		return err
	}

	renderResult(a.out, p)
	return nil
}
