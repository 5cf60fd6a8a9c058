package helpers

import (
	"errors"
	"fmt"
	"sync"

	"fn-peaks/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type PeakError struct {
	Message string
	Cause   error
}

func (e *PeakError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PeakError) Unwrap() error {
	return e.Cause
}

// Helper to define distinct error types for type assertions if needed
type ConfigurationError struct{ PeakError }
type DatabaseError struct{ PeakError }
type ValidationError struct{ PeakError }

// -----------------------------------------------------------------------------
// Range Errors
// -----------------------------------------------------------------------------

// ErrRangeTooLarge is matched by every RangeTooLargeError.
var ErrRangeTooLarge = errors.New("requested time range is too large")

// RangeTooLargeError is returned before any I/O when a range spans more than MaxDays whole days.
type RangeTooLargeError struct {
	Days    int
	MaxDays int
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("the maximum processing time is %d days, requested %d days", e.MaxDays, e.Days)
}

func (e *RangeTooLargeError) Is(target error) bool {
	return target == ErrRangeTooLarge
}

// -----------------------------------------------------------------------------

// InvalidTimeError reports an input timestamp that matched no accepted layout.
type InvalidTimeError struct {
	ValidationError
	Input string
}

func NewInvalidTimeError(input string, cause error) *InvalidTimeError {
	return &InvalidTimeError{
		ValidationError: ValidationError{PeakError{Message: fmt.Sprintf("invalid time %q", input), Cause: cause}},
		Input:           input,
	}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	mu         sync.Mutex
	errorCount int
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

// Handle logs a non-nil err and counts it. It reports whether err was non-nil.
func (e *ErrorHandler) Handle(err error, context string) bool {
	if err == nil {
		return false
	}
	e.mu.Lock()
	e.errorCount++
	e.mu.Unlock()

	var rangeErr *RangeTooLargeError
	if errors.As(err, &rangeErr) {
		e.Logger.Warning("Rejected request in %s: %v", context, err)
	} else {
		e.Logger.Error("Error in %s: %v", context, err)
	}
	return true
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorCount
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = 0
	e.mu.Unlock()
}
