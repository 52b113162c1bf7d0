package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError reports a settings field that violates the indicator
// contract. The engine refuses to compute with it.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string

	err error
}

func NewConfigurationError(field string, value interface{}, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

func wrapConfigurationError(field string, value interface{}, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: err.Error(), err: err}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid setting %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap exposes the sentinel error, if any, for errors.Is.
func (e *ConfigurationError) Unwrap() error {
	return e.err
}

func (e *ConfigurationError) Cause() error {
	return e.err
}

// IsConfigurationError reports whether err, or anything it wraps, is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
