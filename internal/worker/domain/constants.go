package domain

// Application status constants
const (
	ApplicationStatusPending    = "PENDING"
	ApplicationStatusProcessing = "PROCESSING"
	ApplicationStatusSubmitted  = "SUBMITTED"
	ApplicationStatusRejected   = "REJECTED"
	ApplicationStatusFailed     = "FAILED"
)

// JobOfferStatusOpen is the only job offer status that accepts applications
const JobOfferStatusOpen = "open"
