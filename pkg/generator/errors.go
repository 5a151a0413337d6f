package generator

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a required field missing when a record is
// instantiated.
type ConfigurationError struct {
	Kind       string
	Identifier string
	Field      string
}

func (e *ConfigurationError) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("%s %q: missing required field %s", e.Kind, e.Identifier, e.Field)
	}
	return fmt.Sprintf("%s: missing required field %s", e.Kind, e.Field)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ResolutionError reports a field that failed to resolve while a record was
// being instantiated. Err is the error the resolvable produced.
type ResolutionError struct {
	Kind       string
	Identifier string
	Field      string
	Err        error
}

func (e *ResolutionError) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("%s %q: resolving %s: %v", e.Kind, e.Identifier, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: resolving %s: %v", e.Kind, e.Field, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
