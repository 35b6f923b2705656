package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Window is a half-open-ended date range used for workload queries.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Days returns the window length in (fractional) days.
func (w Window) Days() float64 {
	return w.To.Sub(w.From).Hours() / 24
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// ValidateID rejects blank identifiers.
func ValidateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w", field, ErrInvalidInput)
	}
	return nil
}

// ValidateWindow rejects zero or inverted date ranges.
func ValidateWindow(w Window) error {
	if w.From.IsZero() || w.To.IsZero() {
		return fmt.Errorf("window bounds required: %w", ErrInvalidInput)
	}
	if !w.To.After(w.From) {
		return fmt.Errorf("window end must follow start: %w", ErrInvalidInput)
	}
	return nil
}
