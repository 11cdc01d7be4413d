package model

import (
	"errors"
	"fmt"
)

// ConfigError reports a catalog defect with a suggested fix.
type ConfigError struct {
	Field      string // dotted path, e.g. "catalog.compatibility[0].destinations"
	Message    string // what's wrong
	Suggestion string // how to fix it
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigErrors flattens err into the ConfigErrors it carries. Errors of any
// other type are wrapped in a ConfigError without a field.
func ConfigErrors(err error) []*ConfigError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*ConfigError
		for _, e := range joined.Unwrap() {
			out = append(out, ConfigErrors(e)...)
		}
		return out
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		if ce == err {
			return []*ConfigError{ce}
		}
		return ConfigErrors(errors.Unwrap(err))
	}
	return []*ConfigError{{Message: err.Error()}}
}
