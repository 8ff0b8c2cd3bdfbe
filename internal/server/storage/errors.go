package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidAccountID indicates that account id can't name an account store
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrInvalidRecord indicates that record can't be stored (empty identity, unknown table)
	ErrInvalidRecord = errors.New("invalid record")

	// ErrCorruptRecord indicates that a stored identity column is not text
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrProviderClosed indicates that the account provider has been closed
	ErrProviderClosed = errors.New("account provider closed")
)
