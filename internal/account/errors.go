package account

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrWrongCredentials is returned when a password does not verify
	// against the stored hash.
	ErrWrongCredentials = errors.New("wrong credentials")
)

// ConflictError reports unique-constraint violations. Fields names every
// violated field so a caller colliding on both email and username learns
// about both in one error.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	if len(e.Fields) == 0 {
		return "conflict"
	}
	return fmt.Sprintf("%s already exists", strings.Join(e.Fields, " and "))
}

// IsConflict reports whether err is a ConflictError and returns it.
func IsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
