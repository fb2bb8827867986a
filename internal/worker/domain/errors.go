package domain

import "errors"

var (
	// ErrApplicationNotFound is returned when an application cannot be found in the database
	ErrApplicationNotFound = errors.New("application not found")

	// ErrApplicationAlreadyClaimed is returned when attempting to claim an application that's already settled
	ErrApplicationAlreadyClaimed = errors.New("application already claimed or not in PENDING status")

	// ErrApplicationInFlight is returned when another attempt holds the application and has not gone stale
	ErrApplicationInFlight = errors.New("application is being processed by another attempt")

	// ErrJobOfferNotFound is returned when the job offer of an application no longer exists
	ErrJobOfferNotFound = errors.New("job offer not found")

	// ErrInvalidPayload is returned when a queue message is malformed
	ErrInvalidPayload = errors.New("invalid application message")

	// ErrMaxRetriesExceeded is returned when an application has exceeded its retry limit
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
