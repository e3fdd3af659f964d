package maxima

import (
	"errors"
	"fmt"
)

// ErrUnavailable is matched by every optimizer failure.
var ErrUnavailable = errors.New("optimizer unavailable")

// Error describes a failed optimizer call.
type Error struct {
	Op      string // "write", "start", "read", "wait", "timeout"
	Command string
	Stderr  string // trailing stderr output, if any
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("maxima %s (%s): %v", e.Op, e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every *Error match ErrUnavailable.
func (e *Error) Is(target error) bool {
	return target == ErrUnavailable
}
