package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrRecordNotFound indicates that a deck, card or review is not stored locally
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownTable indicates an operation for a table the client does not keep
	ErrUnknownTable = errors.New("unknown table")

	// ErrInvalidRow indicates a row without a usable identity
	ErrInvalidRow = errors.New("invalid row")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
