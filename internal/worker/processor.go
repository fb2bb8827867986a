package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/recruitment-be/internal/worker/domain"
)

// processApplication claims an application and records whether its job offer accepts it.
// A nil return means the message is settled and can be ACKed.
func (w *Worker) processApplication(ctx context.Context, msg *domain.ApplicationMessage) error {
	w.logger.Info("Processing application",
		slog.String("application_id", msg.ApplicationID),
		slog.String("worker_id", w.workerID),
	)

	// Finish the current message even when shutdown cancels ctx
	procCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.processTimeout)
	defer cancel()

	// Step 1: Claim application (PENDING → PROCESSING, or take over a stale attempt)
	app, err := w.store.ClaimApplication(procCtx, msg.ApplicationID, w.workerID, w.processTimeout)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationAlreadyClaimed), errors.Is(err, domain.ErrApplicationNotFound):
			w.logger.Warn("Application already settled or removed, skipping",
				slog.String("application_id", msg.ApplicationID),
				slog.String("reason", err.Error()),
			)
			return fmt.Errorf("application cannot be claimed: %w", err)
		case errors.Is(err, domain.ErrApplicationInFlight):
			// Redelivered while the first attempt may still be running; it becomes
			// claimable once that attempt goes stale
			return domain.NewRetryableError(err)
		}
		// Nothing was claimed, so the message itself is retried
		return domain.NewRetryableError(fmt.Errorf("failed to claim application: %w", err))
	}

	// Step 2: Check the job offer still accepts applications
	offer, err := w.store.GetJobOfferState(procCtx, app.JobOfferID)
	if err != nil {
		if errors.Is(err, domain.ErrJobOfferNotFound) {
			return w.reject(procCtx, app, "job offer no longer exists")
		}
		return w.handleFailure(procCtx, app, err)
	}

	if reason := offer.RejectionReason(w.now()); reason != "" {
		return w.reject(procCtx, app, reason)
	}

	// Step 3: Count the applicant and mark the application SUBMITTED
	if err := w.store.SubmitApplication(procCtx, app); err != nil {
		if errors.Is(err, domain.ErrJobOfferNotFound) {
			return w.reject(procCtx, app, "job offer no longer exists")
		}
		return w.handleFailure(procCtx, app, err)
	}

	w.logger.Info("Application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.String("job_offer_id", app.JobOfferID),
	)

	return nil
}

// reject settles the application as REJECTED; the message is ACKed
func (w *Worker) reject(ctx context.Context, app *domain.Application, reason string) error {
	w.logger.Info("Application rejected",
		slog.String("application_id", app.ApplicationID),
		slog.String("job_offer_id", app.JobOfferID),
		slog.String("reason", reason),
	)

	if err := w.store.RejectApplication(ctx, app.ApplicationID, reason); err != nil {
		return w.handleFailure(ctx, app, err)
	}
	return nil
}

// handleFailure releases the application for another attempt or marks it FAILED
func (w *Worker) handleFailure(ctx context.Context, app *domain.Application, cause error) error {
	if app.RetryCount < app.MaxRetries {
		w.logger.Info("Application will be retried",
			slog.String("application_id", app.ApplicationID),
			slog.Int("retry_count", app.RetryCount),
			slog.Int("max_retries", app.MaxRetries),
		)

		if err := w.store.ReleaseApplication(ctx, app.ApplicationID, cause.Error()); err != nil {
			w.logger.Error("Failed to release application",
				slog.String("application_id", app.ApplicationID),
				slog.String("error", err.Error()),
			)
		}

		return domain.NewRetryableError(fmt.Errorf("application processing failed: %w", cause))
	}

	w.logger.Warn("Application exceeded max retries",
		slog.String("application_id", app.ApplicationID),
		slog.Int("retry_count", app.RetryCount),
		slog.Int("max_retries", app.MaxRetries),
	)

	if err := w.store.FailApplication(ctx, app.ApplicationID, cause.Error()); err != nil {
		w.logger.Error("Failed to update application status to FAILED",
			slog.String("application_id", app.ApplicationID),
			slog.String("error", err.Error()),
		)
	}

	return fmt.Errorf("%w: %v", domain.ErrMaxRetriesExceeded, cause)
}
