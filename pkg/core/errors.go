package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedOperation is returned when a dialect has no syntax for an
	// operation, e.g. renaming a sequence on Oracle.
	ErrUnsupportedOperation = errors.New("operation not supported by dialect")

	// ErrNotConnected is returned by plugins used after Close.
	ErrNotConnected = errors.New("plugin is closed")

	// ErrConfig is matched by every ConfigError.
	ErrConfig = errors.New("configuration error")
)

// ConfigError is a fatal configuration problem: a missing driver, a missing
// required attribute or an unknown plugin key. It is never retried.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Msg, e.Err)
	}
	return "configuration error: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfig) hold.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// UnknownPluginError is returned when a plugin key has no registered factory.
type UnknownPluginError struct {
	Key       string
	Available []string
}

func (e *UnknownPluginError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown plugin %q: no plugins registered", e.Key)
	}
	return fmt.Sprintf("unknown plugin %q, available: %s", e.Key, strings.Join(e.Available, ", "))
}

// Is makes errors.Is(err, ErrConfig) hold.
func (e *UnknownPluginError) Is(target error) bool { return target == ErrConfig }

// ExecutionError wraps a driver error raised while running a statement or a
// catalog query. The driver message is kept verbatim.
type ExecutionError struct {
	Op     string
	Plugin string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Plugin, e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// CoercionError reports a cell value that could not be converted to the bind
// type its column requires.
type CoercionError struct {
	Column string
	Value  string
	Target string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("column %s: cannot convert %q to %s: %v", e.Column, e.Value, e.Target, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
