package ledger

import "errors"

var (
	// ErrInvalidInput indicates a malformed identifier or date range,
	// rejected before any fetch.
	ErrInvalidInput = errors.New("invalid input")
)
