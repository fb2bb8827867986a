package domain

import "errors"

const (
	ApplicationStatusPending    = "PENDING"
	ApplicationStatusProcessing = "PROCESSING"
	ApplicationStatusSubmitted  = "SUBMITTED"
	ApplicationStatusRejected   = "REJECTED"
	ApplicationStatusFailed     = "FAILED"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrJobOfferNotFound    = errors.New("job offer not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("candidate already applied to this job offer")
	ErrJobOfferClosed      = errors.New("job offer is not accepting applications")
	ErrForbidden           = errors.New("forbidden")
)

