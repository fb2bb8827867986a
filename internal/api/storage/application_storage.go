package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/cuongbtq/recruitment-be/shared/postgresql"
)

func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (
			application_id, job_offer_id, candidate_id, status,
			retry_count, max_retries, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		app.ApplicationID,
		app.JobOfferID,
		app.CandidateID,
		app.Status,
		app.RetryCount,
		app.MaxRetries,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return domain.ErrAlreadyApplied
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (s *Storage) GetApplication(ctx context.Context, applicationID string) (*model.Application, error) {
	var app model.Application
	query := `
		SELECT
			application_id, job_offer_id, candidate_id, status,
			retry_count, max_retries, error_message, created_at, updated_at
		FROM applications
		WHERE application_id = $1
	`

	err := s.db.GetContext(ctx, &app, query, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

// DeleteApplication removes an application that never reached the queue
func (s *Storage) DeleteApplication(ctx context.Context, applicationID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE application_id = $1`, applicationID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}
