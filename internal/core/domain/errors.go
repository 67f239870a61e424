package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies a transform failure for the cascade driver.
// Retries are reserved exclusively for timeouts.
type ErrorKind string

const (
	ErrorNone          ErrorKind = ""
	ErrorTimeout       ErrorKind = "timeout"
	ErrorTransform     ErrorKind = "transform"
	ErrorValidation    ErrorKind = "validation"
	ErrorConfiguration ErrorKind = "configuration"
)

// TimeoutError reports an attempt that exceeded its wall-clock budget.
type TimeoutError struct {
	Budget   time.Duration
	Attempts int
}

func (e *TimeoutError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("transform exceeded %s budget after %d attempts", e.Budget, e.Attempts)
	}
	return fmt.Sprintf("transform exceeded %s budget", e.Budget)
}

// TransformError wraps a non-timeout failure of the external
// capability. Never retried; routed to the next cascade level.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed: %v", e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// ConfigurationError reports malformed batch inputs. Fatal: aborts the
// batch immediately regardless of fail-fast mode.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid batch configuration: " + e.Reason
}

// Classify maps an error to its kind for outcome reporting.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorNone
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return ErrorTimeout
	}
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ErrorConfiguration
	}
	return ErrorTransform
}
