package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/worker/domain"
	"github.com/cuongbtq/recruitment-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// ClaimApplication moves an application to PROCESSING for workerID.
// A PENDING row is claimed directly. A PROCESSING row untouched for staleAfter belongs
// to an attempt that died, so it is taken over and the lost attempt counts as a retry.
func (s *Storage) ClaimApplication(ctx context.Context, applicationID, workerID string, staleAfter time.Duration) (*domain.Application, error) {
	query := `
		UPDATE applications
		SET status = $1,
		    worker_id = $2,
		    retry_count = CASE WHEN status = $1 THEN retry_count + 1 ELSE retry_count END,
		    updated_at = NOW()
		WHERE application_id = $3
		  AND (status = $4 OR (status = $1 AND updated_at < NOW() - make_interval(secs => $5)))
		RETURNING application_id, job_offer_id, candidate_id, retry_count, max_retries
	`

	var app domain.Application
	err := s.db.QueryRowContext(ctx, query,
		domain.ApplicationStatusProcessing, workerID, applicationID, domain.ApplicationStatusPending,
		staleAfter.Seconds(),
	).Scan(
		&app.ApplicationID,
		&app.JobOfferID,
		&app.CandidateID,
		&app.RetryCount,
		&app.MaxRetries,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.claimConflict(ctx, applicationID, workerID)
		}
		return nil, fmt.Errorf("failed to claim application: %w", err)
	}

	app.Status = domain.ApplicationStatusProcessing
	app.WorkerID = workerID

	s.logger.Info("Application claimed successfully",
		slog.String("application_id", applicationID),
		slog.String("worker_id", workerID),
		slog.Int("retry_count", app.RetryCount),
	)

	return &app, nil
}

// claimConflict explains why a claim matched no row
func (s *Storage) claimConflict(ctx context.Context, applicationID, workerID string) error {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM applications WHERE application_id = $1`, applicationID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to get application status: %w", err)
	}

	s.logger.Warn("Failed to claim application",
		slog.String("application_id", applicationID),
		slog.String("worker_id", workerID),
		slog.String("status", status),
	)

	if status == domain.ApplicationStatusProcessing {
		return domain.ErrApplicationInFlight
	}
	return domain.ErrApplicationAlreadyClaimed
}

// GetJobOfferState loads the status and deadline of a job offer
func (s *Storage) GetJobOfferState(ctx context.Context, jobOfferID string) (*domain.JobOfferState, error) {
	query := `
		SELECT job_offer_id, status, deadline
		FROM job_offers
		WHERE job_offer_id = $1
	`

	var state domain.JobOfferState
	var deadline sql.NullTime

	err := s.db.QueryRowContext(ctx, query, jobOfferID).Scan(&state.JobOfferID, &state.Status, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobOfferNotFound
		}
		return nil, fmt.Errorf("failed to get job offer: %w", err)
	}

	if deadline.Valid {
		state.Deadline = &deadline.Time
	}

	return &state, nil
}

// SubmitApplication counts the applicant on its job offer and marks the application SUBMITTED atomically
func (s *Storage) SubmitApplication(ctx context.Context, app *domain.Application) error {
	return postgresql.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE job_offers
			SET applicant_count = applicant_count + 1,
			    updated_at = NOW()
			WHERE job_offer_id = $1`, app.JobOfferID)
		if err != nil {
			return fmt.Errorf("failed to increment applicant count: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return domain.ErrJobOfferNotFound
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE applications
			SET status = $1,
			    error_message = NULL,
			    processed_at = NOW(),
			    updated_at = NOW()
			WHERE application_id = $2`, domain.ApplicationStatusSubmitted, app.ApplicationID)
		if err != nil {
			return fmt.Errorf("failed to mark application submitted: %w", err)
		}

		return nil
	})
}

// RejectApplication marks the application REJECTED with reason
func (s *Storage) RejectApplication(ctx context.Context, applicationID, reason string) error {
	return s.finish(ctx, applicationID, domain.ApplicationStatusRejected, reason)
}

// FailApplication marks the application FAILED with reason
func (s *Storage) FailApplication(ctx context.Context, applicationID, reason string) error {
	return s.finish(ctx, applicationID, domain.ApplicationStatusFailed, reason)
}

func (s *Storage) finish(ctx context.Context, applicationID, status, reason string) error {
	query := `
		UPDATE applications
		SET status = $1,
		    error_message = $2,
		    processed_at = NOW(),
		    updated_at = NOW()
		WHERE application_id = $3
	`

	_, err := s.db.ExecContext(ctx, query, status, reason, applicationID)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	s.logger.Info("Application status updated",
		slog.String("application_id", applicationID),
		slog.String("status", status),
	)

	return nil
}

// ReleaseApplication puts a claimed application back to PENDING and counts the retry
func (s *Storage) ReleaseApplication(ctx context.Context, applicationID, reason string) error {
	query := `
		UPDATE applications
		SET status = $1,
		    worker_id = NULL,
		    retry_count = retry_count + 1,
		    error_message = $2,
		    updated_at = NOW()
		WHERE application_id = $3 AND status = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		domain.ApplicationStatusPending, reason, applicationID, domain.ApplicationStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("failed to release application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Application release - no rows affected (application may not be processing)",
			slog.String("application_id", applicationID),
		)
	}

	return nil
}
