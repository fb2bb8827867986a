package router

import (
	"net/http"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	serviceName := deps.ServiceName
	if serviceName == "" {
		serviceName = "recruitment-api-service"
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": serviceName,
					"error":   err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	authHandler := handler.NewAuthHandler(deps)
	userHandler := handler.NewUserHandler(deps)
	jobOfferHandler := handler.NewJobOfferHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)

	requireAuth := AuthMiddleware(deps.Tokens, deps.Logger)
	employeeOnly := RequireUserType(domain.UserTypeEmployee)
	candidateOnly := RequireUserType(domain.UserTypeCandidate)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			// POST /api/v1/auth/register - Register an employee or a candidate
			authGroup.POST("/register", authHandler.Register)

			// POST /api/v1/auth/login - Exchange credentials for a token
			authGroup.POST("/login", authHandler.Login)
		}

		users := v1.Group("/users", requireAuth)
		{
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/me", userHandler.UpdateMe)
		}

		jobOffers := v1.Group("/job-offers")
		{
			// GET /api/v1/job-offers - List job offers with filtering and pagination
			jobOffers.GET("", jobOfferHandler.ListJobOffers)

			// GET /api/v1/job-offers/:job_offer_id - Get job offer details
			jobOffers.GET("/:job_offer_id", jobOfferHandler.GetJobOffer)

			// POST /api/v1/job-offers - Create a job offer
			jobOffers.POST("", requireAuth, employeeOnly, jobOfferHandler.CreateJobOffer)

			// PATCH /api/v1/job-offers/:job_offer_id - Partially update an owned job offer
			jobOffers.PATCH("/:job_offer_id", requireAuth, employeeOnly, jobOfferHandler.UpdateJobOffer)

			// DELETE /api/v1/job-offers/:job_offer_id - Delete an owned job offer
			jobOffers.DELETE("/:job_offer_id", requireAuth, employeeOnly, jobOfferHandler.DeleteJobOffer)

			// POST /api/v1/job-offers/:job_offer_id/applications - Apply to a job offer
			jobOffers.POST("/:job_offer_id/applications", requireAuth, candidateOnly, applicationHandler.Apply)
		}

		applications := v1.Group("/applications", requireAuth)
		{
			// GET /api/v1/applications/:application_id - Get application status
			applications.GET("/:application_id", applicationHandler.GetApplication)
		}
	}

	return r
}
