package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/dto"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Apply handles POST /api/v1/job-offers/:job_offer_id/applications
// Records a PENDING application and queues it for the worker
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobOfferID, ok := pathUUID(c, h.logger, "job_offer_id")
	if !ok {
		return
	}

	claims := currentClaims(c)

	h.logger.Info("Apply called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_offer_id", jobOfferID),
		slog.String("candidate_id", claims.UserID),
	)

	ctx := c.Request.Context()

	offer, err := h.jobOffers.GetJobOffer(ctx, jobOfferID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to apply")
		return
	}

	if !acceptsApplications(offer, time.Now()) {
		respondError(c, h.logger, domain.ErrJobOfferClosed, "Failed to apply")
		return
	}

	now := time.Now().UTC()
	app := &model.Application{
		ApplicationID: uuid.New().String(),
		JobOfferID:    jobOfferID,
		CandidateID:   claims.UserID,
		Status:        domain.ApplicationStatusPending,
		MaxRetries:    h.maxRetries,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.applications.CreateApplication(ctx, app); err != nil {
		respondError(c, h.logger, err, "Failed to apply")
		return
	}

	if err := h.publisher.PublishJSON(ctx, dto.ApplicationMessage{ApplicationID: app.ApplicationID}); err != nil {
		h.logger.Error("Failed to queue application",
			slog.String("application_id", app.ApplicationID),
			slog.String("error", err.Error()),
		)

		// Without a queued message the row would stay PENDING forever
		if delErr := h.applications.DeleteApplication(context.WithoutCancel(ctx), app.ApplicationID); delErr != nil {
			h.logger.Error("Failed to remove unqueued application",
				slog.String("application_id", app.ApplicationID),
				slog.String("error", delErr.Error()),
			)
		}

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to queue application, please retry",
		})
		return
	}

	h.logger.Info("Application queued",
		slog.String("application_id", app.ApplicationID),
		slog.String("job_offer_id", jobOfferID),
	)

	c.JSON(http.StatusAccepted, toApplicationDTO(app))
}

// GetApplication handles GET /api/v1/applications/:application_id
// Visible to the applying candidate and to the owner of the job offer
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	applicationID, ok := pathUUID(c, h.logger, "application_id")
	if !ok {
		return
	}

	claims := currentClaims(c)
	ctx := c.Request.Context()

	app, err := h.applications.GetApplication(ctx, applicationID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get application")
		return
	}

	if app.CandidateID != claims.UserID {
		offer, err := h.jobOffers.GetJobOffer(ctx, app.JobOfferID)
		if err != nil && !errors.Is(err, domain.ErrJobOfferNotFound) {
			respondError(c, h.logger, err, "Failed to get application")
			return
		}
		if offer == nil || offer.EmployeeID != claims.UserID {
			respondError(c, h.logger, domain.ErrForbidden, "Failed to get application")
			return
		}
	}

	c.JSON(http.StatusOK, toApplicationDTO(app))
}

func acceptsApplications(offer *model.JobOffer, now time.Time) bool {
	if offer.Status != string(domain.JobOfferStatusOpen) {
		return false
	}
	return !offer.Deadline.Valid || offer.Deadline.Time.After(now)
}
