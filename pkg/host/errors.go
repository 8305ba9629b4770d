package host

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout indicates no byte came back in time.
	ErrTimeout = errors.New("timeout waiting for echo")
)

// TransferError reports the failed byte of a transfer.
type TransferError struct {
	// Offset is the position of the byte in the input.
	Offset int
	Err    error
}

// Error implements error.
func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer failed at byte %d: %v", e.Offset, e.Err)
}

// Unwrap returns the cause.
func (e *TransferError) Unwrap() error {
	return e.Err
}
