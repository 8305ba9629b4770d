package uart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaud indicates a baud rate which is not positive.
	ErrInvalidBaud = errors.New("invalid baud rate")
	// ErrInvalidClock indicates a base clock frequency which is not positive.
	ErrInvalidClock = errors.New("invalid clock frequency")
	// ErrBaudTooHigh indicates the baud rate exceeds the base clock.
	ErrBaudTooHigh = errors.New("baud rate too high for clock")
)

// ConfigError wraps an invalid configuration value.
type ConfigError struct {
	Field string
	Value int
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}
