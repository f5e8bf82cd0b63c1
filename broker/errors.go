package broker

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected means no live client exists for the account id; the
	// caller must log in or restore a session first.
	ErrNotConnected = errors.New("broker: account not connected")

	// ErrRecordNotFound means no session record exists on disk for the account.
	ErrRecordNotFound = errors.New("broker: session record not found")

	// ErrRecordCorrupt means the on-disk session record could not be parsed.
	ErrRecordCorrupt = errors.New("broker: session record corrupt")
)

// UserNotResolvedError is returned when every id-resolution strategy has
// been exhausted for a username.
type UserNotResolvedError struct {
	Username string
}

func (e *UserNotResolvedError) Error() string {
	return fmt.Sprintf("could not resolve user @%s", e.Username)
}
