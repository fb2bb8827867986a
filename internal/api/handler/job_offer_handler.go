package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/dto"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/cuongbtq/recruitment-be/internal/api/storage"
	"github.com/cuongbtq/recruitment-be/internal/api/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateJobOffer handles POST /api/v1/job-offers
// Publishes a new job offer owned by the calling employee
func (h *JobOfferHandler) CreateJobOffer(c *gin.Context) {
	claims := currentClaims(c)

	h.logger.Info("CreateJobOffer called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("employee_id", claims.UserID),
	)

	var req dto.CreateJobOfferRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err, "Invalid request body")
		return
	}

	offer := toJobOfferModel(&req, uuid.New().String(), claims.UserID, time.Now().UTC())

	if err := h.jobOffers.CreateJobOffer(c.Request.Context(), offer); err != nil {
		respondError(c, h.logger, err, "Failed to create job offer")
		return
	}

	h.logger.Info("Job offer created",
		slog.String("job_offer_id", offer.JobOfferID),
		slog.Int("skills", len(offer.Skills)),
	)

	c.JSON(http.StatusCreated, toJobOfferDTO(offer))
}

// GetJobOffer handles GET /api/v1/job-offers/:job_offer_id
func (h *JobOfferHandler) GetJobOffer(c *gin.Context) {
	jobOfferID, ok := pathUUID(c, h.logger, "job_offer_id")
	if !ok {
		return
	}

	offer, err := h.jobOffers.GetJobOffer(c.Request.Context(), jobOfferID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get job offer")
		return
	}

	c.JSON(http.StatusOK, toJobOfferDTO(offer))
}

// ListJobOffers handles GET /api/v1/job-offers
// Lists job offers with optional filtering and cursor pagination
func (h *JobOfferHandler) ListJobOffers(c *gin.Context) {
	h.logger.Info("ListJobOffers called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
	)

	var req dto.ListJobOffersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err, "Invalid query parameters")
		return
	}

	if req.PageSize == 0 {
		req.PageSize = dto.DefaultPageSize
	}
	if req.PageSize > dto.MaxPageSize {
		req.PageSize = dto.MaxPageSize
	}

	cursor, err := DecodeJobOfferCursor(req.Cursor)
	if err != nil {
		h.logger.Error("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	if req.EmployeeID != "" {
		if _, err := uuid.Parse(req.EmployeeID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "employee_id must be a valid UUID",
			})
			return
		}
	}

	filter := storage.JobOfferFilter{
		EmployeeID: req.EmployeeID,
		WorkMode:   req.WorkMode,
		Status:     req.Status,
		Location:   req.Location,
		PageSize:   req.PageSize,
		Cursor:     cursor,
	}

	offers, err := h.jobOffers.ListJobOffers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to list job offers")
		return
	}

	// One extra row is fetched to detect a next page
	hasMore := len(offers) > req.PageSize
	if hasMore {
		offers = offers[:req.PageSize]
	}

	resp := dto.ListJobOffersResponse{
		JobOffers: make([]dto.JobOfferDTO, len(offers)),
	}
	for i := range offers {
		resp.JobOffers[i] = toJobOfferDTO(&offers[i])
	}

	if hasMore {
		last := offers[len(offers)-1]
		resp.NextCursor = EncodeJobOfferCursor(&storage.JobOfferCursor{
			CreatedAt:  last.CreatedAt,
			JobOfferID: last.JobOfferID,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateJobOffer handles PATCH /api/v1/job-offers/:job_offer_id
// Applies a partial update; only the owning employee may change an offer
func (h *JobOfferHandler) UpdateJobOffer(c *gin.Context) {
	jobOfferID, ok := pathUUID(c, h.logger, "job_offer_id")
	if !ok {
		return
	}

	claims := currentClaims(c)

	h.logger.Info("UpdateJobOffer called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_offer_id", jobOfferID),
	)

	var req dto.UpdateJobOfferRequest
	if err := bindJSON(c, &req, validation.NonEmptyPipe{}); err != nil {
		respondError(c, h.logger, err, "Invalid request body")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.ownedJobOffer(c, jobOfferID, claims.UserID); err != nil {
		respondError(c, h.logger, err, "Failed to update job offer")
		return
	}

	if err := h.jobOffers.UpdateJobOffer(ctx, jobOfferID, toJobOfferPatch(&req)); err != nil {
		respondError(c, h.logger, err, "Failed to update job offer")
		return
	}

	offer, err := h.jobOffers.GetJobOffer(ctx, jobOfferID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get job offer")
		return
	}

	c.JSON(http.StatusOK, toJobOfferDTO(offer))
}

// DeleteJobOffer handles DELETE /api/v1/job-offers/:job_offer_id
func (h *JobOfferHandler) DeleteJobOffer(c *gin.Context) {
	jobOfferID, ok := pathUUID(c, h.logger, "job_offer_id")
	if !ok {
		return
	}

	claims := currentClaims(c)

	h.logger.Info("DeleteJobOffer called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_offer_id", jobOfferID),
	)

	if _, err := h.ownedJobOffer(c, jobOfferID, claims.UserID); err != nil {
		respondError(c, h.logger, err, "Failed to delete job offer")
		return
	}

	if err := h.jobOffers.DeleteJobOffer(c.Request.Context(), jobOfferID); err != nil {
		respondError(c, h.logger, err, "Failed to delete job offer")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobOfferHandler) ownedJobOffer(c *gin.Context, jobOfferID, employeeID string) (*model.JobOffer, error) {
	offer, err := h.jobOffers.GetJobOffer(c.Request.Context(), jobOfferID)
	if err != nil {
		return nil, err
	}
	if offer.EmployeeID != employeeID {
		h.logger.Warn("Job offer ownership check failed",
			slog.String("job_offer_id", jobOfferID),
			slog.String("user_id", employeeID),
		)
		return nil, domain.ErrForbidden
	}
	return offer, nil
}
