package inspector

import (
	"errors"
	"fmt"
)

// RuleExecutionError records a check that panicked or returned a value the
// dispatcher cannot interpret. It never escapes the dispatcher; it is turned
// into an ERROR message.
type RuleExecutionError struct {
	Check  string
	Object string
	Cause  any
	Stack  []byte
}

func (e *RuleExecutionError) Error() string {
	msg := fmt.Sprintf("check %s failed on %s: %v", e.Check, e.Object, e.Cause)
	if len(e.Stack) > 0 {
		msg += "\n" + string(e.Stack)
	}
	return msg
}

// Unwrap returns the cause when the check panicked with an error value.
func (e *RuleExecutionError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// FileReadError records a data file that could not be opened or decoded.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ConfigurationError reports a malformed check configuration document.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid check configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid check configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UsageError reports options that cannot be combined or understood.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ErrSelectAndIgnore is wrapped by the UsageError returned when both a
// select and an ignore list are supplied.
var ErrSelectAndIgnore = errors.New("options 'ignore' and 'select' cannot both be used")

// IsUsageError reports whether err is or wraps a *UsageError.
func IsUsageError(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}
