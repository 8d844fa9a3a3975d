package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrGameNotFound is returned when Redis holds no game state for a PIN.
	ErrGameNotFound = errors.New("no Redis game state found")
	// ErrNoPlayerData is returned when a game exists but neither scores nor
	// per-question answers are present.
	ErrNoPlayerData = errors.New("no player data found")
	// ErrUserExists signals that an account with the same username or email
	// is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrQuizNotFound indicates no quiz with the requested title exists for
	// the logged-in user.
	ErrQuizNotFound = errors.New("quiz not found")
)

// DecodeError reports a cache value that is present but not parseable into
// the expected structure.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps a failure of the underlying cache transport. It is
// always fatal for the run that hit it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
