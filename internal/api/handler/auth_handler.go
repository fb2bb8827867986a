package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/auth"
	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/dto"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Register handles POST /api/v1/auth/register
// Creates a user together with the profile selected by user_type
func (h *AuthHandler) Register(c *gin.Context) {
	h.logger.Info("Register called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	var req dto.RegisterRequest
	if err := bindJSON(c, &req, dto.UserTypePipe); err != nil {
		respondError(c, h.logger, err, "Invalid request body")
		return
	}

	hash, err := h.passwords.Hash(*req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Failed to register user")
		return
	}

	now := time.Now().UTC()
	user := &model.User{
		UserID:       uuid.New().String(),
		Email:        normalizeEmail(*req.Email),
		PasswordHash: hash,
		UserType:     *req.UserType,
		FirstName:    strings.TrimSpace(*req.FirstName),
		LastName:     strings.TrimSpace(*req.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := req.Profile()

	if err := h.users.CreateUser(c.Request.Context(), user, profile); err != nil {
		respondError(c, h.logger, err, "Failed to register user")
		return
	}

	resp, err := h.authResponse(user, profile)
	if err != nil {
		respondError(c, h.logger, err, "Failed to issue token")
		return
	}

	h.logger.Info("User registered",
		slog.String("user_id", user.UserID),
		slog.String("user_type", user.UserType),
	)

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	h.logger.Info("Login called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err, "Invalid request body")
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetUserByEmail(ctx, normalizeEmail(*req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			err = domain.ErrInvalidCredentials
		}
		respondError(c, h.logger, err, "Failed to log in")
		return
	}

	if err := h.passwords.Compare(user.PasswordHash, *req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			err = domain.ErrInvalidCredentials
		}
		respondError(c, h.logger, err, "Failed to log in")
		return
	}

	profile, err := h.users.GetProfile(ctx, user)
	if err != nil {
		respondError(c, h.logger, err, "Failed to log in")
		return
	}

	resp, err := h.authResponse(user, profile)
	if err != nil {
		respondError(c, h.logger, err, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) authResponse(user *model.User, profile domain.Profile) (dto.AuthResponse, error) {
	token, expiresAt, err := h.tokens.Generate(auth.Claims{
		UserID:   user.UserID,
		Email:    user.Email,
		UserType: user.UserType,
	})
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      toUserDTO(user, profile),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
