package commands

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup for a name that was never registered.
var ErrNotFound = errors.New("command not registered")

// RecoverableError marks an expected operational failure inside a handler,
// such as an unreachable target. Callers translate it into a clean non-zero
// exit instead of treating it as a crash.
type RecoverableError struct {
	Err error
}

func (e *RecoverableError) Error() string {
	if e == nil || e.Err == nil {
		return "recoverable command failure"
	}
	return e.Err.Error()
}

func (e *RecoverableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Recoverable wraps err as a RecoverableError. A nil err stays nil.
func Recoverable(err error) error {
	if err == nil {
		return nil
	}
	var existing *RecoverableError
	if errors.As(err, &existing) {
		return err
	}
	return &RecoverableError{Err: err}
}

// Recoverablef formats a message into a RecoverableError.
func Recoverablef(format string, args ...any) error {
	return &RecoverableError{Err: fmt.Errorf(format, args...)}
}

// IsRecoverable reports whether err carries a RecoverableError.
func IsRecoverable(err error) bool {
	var target *RecoverableError
	return errors.As(err, &target)
}
