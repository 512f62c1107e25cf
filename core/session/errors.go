package session

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage wraps every failure reported by a session backend.
	ErrStorage = errors.New("session storage failure")
	// ErrInvalidID is returned when a record is written or read with an empty id.
	ErrInvalidID = errors.New("invalid session id")
)

// StorageError wraps a backend failure so that errors.Is(err, ErrStorage)
// holds while keeping the cause in the chain.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
