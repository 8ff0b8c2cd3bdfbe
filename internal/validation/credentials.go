package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// usernamePattern: латинские буквы, цифры и подчеркивание, 3-32 символа
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 32

	MinPasswordLen = 8
	// MaxPasswordLen is the bcrypt input limit in bytes
	MaxPasswordLen = 72
)

var (
	// ErrInvalidUsername wraps every username rule violation
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidPassword wraps every password rule violation
	ErrInvalidPassword = errors.New("invalid password")
)

// ValidateUsername checks that username is 3-32 characters of a-z, A-Z, 0-9 and _
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidUsername)
	case len(username) < MinUsernameLen:
		return fmt.Errorf("%w: username must be at least %d characters long", ErrInvalidUsername, MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("%w: username must not exceed %d characters", ErrInvalidUsername, MaxUsernameLen)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("%w: username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)", ErrInvalidUsername)
	}

	return nil
}

// ValidatePassword checks the account password length.
// The upper bound is in bytes since bcrypt rejects longer input.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("%w: password cannot be empty", ErrInvalidPassword)
	case len([]rune(password)) < MinPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidPassword, MinPasswordLen)
	case len(password) > MaxPasswordLen:
		return fmt.Errorf("%w: password must not exceed %d bytes", ErrInvalidPassword, MaxPasswordLen)
	}

	return nil
}

// ValidateCredentials validates a username/password pair
func ValidateCredentials(username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	return ValidatePassword(password)
}
