package discogs

import (
	"errors"
	"fmt"
)

// Sentinel errors for Discogs API operations.
var (
	ErrNotFound     = errors.New("discogs: not found")
	ErrRateLimited  = errors.New("discogs: rate limited by server")
	ErrUnauthorized = errors.New("discogs: unauthorized")
	ErrBadRequest   = errors.New("discogs: bad request")
	ErrServer       = errors.New("discogs: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op       string // Operation: "search", "getCollection", "getWantlist", ...
	Username string // If applicable
	Err      error
}

func (e *Error) Error() string {
	if e.Username != "" {
		return fmt.Sprintf("discogs %s [%s]: %v", e.Op, e.Username, e.Err)
	}
	return fmt.Sprintf("discogs %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, username string, err error) error {
	return &Error{
		Op:       op,
		Username: username,
		Err:      err,
	}
}
