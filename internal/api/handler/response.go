package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/recruitment-be/internal/api/auth"
	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClaimsKey is the gin context key under which the auth middleware stores *auth.Claims
const ClaimsKey = "auth_claims"

func currentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

// respondError maps err to a status code and JSON body. Validation rejections
// are logged at Warn; unknown errors are logged and reported as fallback with 500.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	if validation.IsValidationError(err) {
		logger.Warn("Request rejected",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	var constraintErr *validation.ConstraintError
	var shapeErr *validation.ShapeError

	switch {
	case errors.As(err, &constraintErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": constraintErr.Messages(),
		})
	case errors.As(err, &shapeErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": shapeErr.Message})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrJobOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job offer not found"})
	case errors.Is(err, domain.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
	case errors.Is(err, domain.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already applied to this job offer"})
	case errors.Is(err, domain.ErrJobOfferClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Job offer is not accepting applications"})
	default:
		logger.Error(fallback,
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// pathUUID reads a UUID path parameter, writing a 400 response when it is malformed
func pathUUID(c *gin.Context, logger *slog.Logger, name string) (string, bool) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		logger.Warn("Invalid path parameter",
			slog.String(name, value),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": name + " must be a valid UUID",
		})
		return "", false
	}
	return value, true
}
