package platform

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var ErrUnsupported = errors.New("operation not supported on this platform")

// AdapterError reports a failed call into the OS wallpaper service.
type AdapterError struct {
	Op        string
	MonitorID string
	Err       error
}

func (e *AdapterError) Error() string {
	if e.MonitorID != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.MonitorID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// NewAdapterError wraps err and records the call stack for verbose output.
func NewAdapterError(op, monitorID string, err error) error {
	return pkgerrors.WithStack(&AdapterError{Op: op, MonitorID: monitorID, Err: err})
}

// IsAdapterError reports whether err originated in the wallpaper service.
func IsAdapterError(err error) bool {
	var ae *AdapterError
	return errors.As(err, &ae)
}
