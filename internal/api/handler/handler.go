package handler

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/recruitment-be/internal/api/auth"
	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/cuongbtq/recruitment-be/internal/api/storage"
)

// UserStore persists users and their profiles
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User, profile domain.Profile) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	GetProfile(ctx context.Context, user *model.User) (domain.Profile, error)
	UpdateUser(ctx context.Context, userID string, patch model.UserPatch) error
}

// JobOfferStore persists job offers and their skills
type JobOfferStore interface {
	CreateJobOffer(ctx context.Context, offer *model.JobOffer) error
	GetJobOffer(ctx context.Context, jobOfferID string) (*model.JobOffer, error)
	ListJobOffers(ctx context.Context, filter storage.JobOfferFilter) ([]model.JobOffer, error)
	UpdateJobOffer(ctx context.Context, jobOfferID string, patch model.JobOfferPatch) error
	DeleteJobOffer(ctx context.Context, jobOfferID string) error
}

// ApplicationStore persists applications
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *model.Application) error
	GetApplication(ctx context.Context, applicationID string) (*model.Application, error)
	DeleteApplication(ctx context.Context, applicationID string) error
}

// Publisher sends messages to the application queue
type Publisher interface {
	PublishJSON(ctx context.Context, v any) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	Users        UserStore
	JobOffers    JobOfferStore
	Applications ApplicationStore
	Publisher    Publisher
	Tokens       *auth.TokenManager
	Passwords    *auth.PasswordHasher
	MaxRetries   int
	HealthCheck  func(ctx context.Context) error
	ServiceName  string
}

// AuthHandler handles registration and login
type AuthHandler struct {
	logger    *slog.Logger
	users     UserStore
	tokens    *auth.TokenManager
	passwords *auth.PasswordHasher
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger:    deps.Logger,
		users:     deps.Users,
		tokens:    deps.Tokens,
		passwords: deps.Passwords,
	}
}

// UserHandler handles the authenticated user's own account
type UserHandler struct {
	logger *slog.Logger
	users  UserStore
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(deps *Dependencies) *UserHandler {
	return &UserHandler{
		logger: deps.Logger,
		users:  deps.Users,
	}
}

// JobOfferHandler handles job offer HTTP requests
type JobOfferHandler struct {
	logger    *slog.Logger
	jobOffers JobOfferStore
}

// NewJobOfferHandler creates a new JobOfferHandler instance
func NewJobOfferHandler(deps *Dependencies) *JobOfferHandler {
	return &JobOfferHandler{
		logger:    deps.Logger,
		jobOffers: deps.JobOffers,
	}
}

// ApplicationHandler handles candidate applications
type ApplicationHandler struct {
	logger       *slog.Logger
	jobOffers    JobOfferStore
	applications ApplicationStore
	publisher    Publisher
	maxRetries   int
}

// NewApplicationHandler creates a new ApplicationHandler instance
func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	maxRetries := deps.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &ApplicationHandler{
		logger:       deps.Logger,
		jobOffers:    deps.JobOffers,
		applications: deps.Applications,
		publisher:    deps.Publisher,
		maxRetries:   maxRetries,
	}
}
