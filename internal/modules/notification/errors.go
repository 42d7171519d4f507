package notification

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a notification id or slug matches no row
// belonging to the caller.
var ErrNotFound = errors.New("notification not found")

// ConfigurationError reports a misused API: a required event field is
// missing, or the deployment configuration is inconsistent. It is
// surfaced synchronously to the caller, never swallowed.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

// NewConfigurationError builds a ConfigurationError with a formatted
// message.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err is (or wraps) a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
