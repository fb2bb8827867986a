package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/dto"
	"github.com/cuongbtq/recruitment-be/internal/api/validation"
	"github.com/gin-gonic/gin"
)

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	claims := currentClaims(c)
	h.respondWithUser(c, claims.UserID, http.StatusOK)
}

// UpdateMe handles PATCH /api/v1/users/me
// Applies a partial update to the caller's names and profile
func (h *UserHandler) UpdateMe(c *gin.Context) {
	claims := currentClaims(c)

	h.logger.Info("UpdateMe called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("user_id", claims.UserID),
	)

	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req, validation.NonEmptyPipe{}); err != nil {
		respondError(c, h.logger, err, "Invalid request body")
		return
	}

	patch := toUserPatch(&req, domain.UserType(claims.UserType))
	if err := h.users.UpdateUser(c.Request.Context(), claims.UserID, patch); err != nil {
		respondError(c, h.logger, err, "Failed to update user")
		return
	}

	h.respondWithUser(c, claims.UserID, http.StatusOK)
}

func (h *UserHandler) respondWithUser(c *gin.Context, userID string, status int) {
	ctx := c.Request.Context()

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get user")
		return
	}

	profile, err := h.users.GetProfile(ctx, user)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get user")
		return
	}

	c.JSON(status, toUserDTO(user, profile))
}
