package domain

import "time"

// Application is the worker's view of an application row
type Application struct {
	ApplicationID string
	JobOfferID    string
	CandidateID   string
	Status        string
	WorkerID      string
	RetryCount    int
	MaxRetries    int
}

// JobOfferState holds the job offer columns that decide whether an application is accepted
type JobOfferState struct {
	JobOfferID string
	Status     string
	Deadline   *time.Time
}

// RejectionReason returns why the offer refuses applications at now, or "" when it accepts them
func (s *JobOfferState) RejectionReason(now time.Time) string {
	if s.Status != JobOfferStatusOpen {
		return "job offer is " + s.Status
	}
	if s.Deadline != nil && !s.Deadline.After(now) {
		return "job offer deadline has passed"
	}
	return ""
}

// ApplicationMessage represents an application message from RabbitMQ
type ApplicationMessage struct {
	ApplicationID string `json:"application_id"`
	DeliveryTag   uint64 `json:"-"`
}
