package sync

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sync errors. All of them abort the whole request with nothing committed.
var (
	// ErrUnknownTable indicates an operation for a table other than decks, cards, reviews
	ErrUnknownTable = errors.New("unknown table")

	// ErrMalformedRow indicates a row that can't be decoded or misses required fields
	ErrMalformedRow = errors.New("malformed row")

	// ErrInvalidCheckpoint indicates a negative last_sync
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
)

// OperationError describes which operation of the batch was rejected
type OperationError struct {
	Err   error
	Table string
	Index int
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%q): %v", e.Index, clip(e.Table), e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsMalformedBatch reports whether err was caused by the client's batch
// rather than by the store.
func IsMalformedBatch(err error) bool {
	return errors.Is(err, ErrUnknownTable) ||
		errors.Is(err, ErrMalformedRow) ||
		errors.Is(err, ErrInvalidCheckpoint)
}

// maxEchoLen bounds client-supplied names quoted back in error messages
const maxEchoLen = 32

// clip shortens s to maxEchoLen runes, marking the cut with "..."
func clip(s string) string {
	if utf8.RuneCountInString(s) <= maxEchoLen {
		return s
	}
	return string([]rune(s)[:maxEchoLen]) + "..."
}
