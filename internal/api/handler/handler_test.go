package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/auth"
	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/dto"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/cuongbtq/recruitment-be/internal/api/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	employeeID  = "11111111-1111-1111-1111-111111111111"
	candidateID = "22222222-2222-2222-2222-222222222222"
	strangerID  = "33333333-3333-3333-3333-333333333333"
	offerID     = "44444444-4444-4444-4444-444444444444"
)

type testEnv struct {
	deps      *Dependencies
	store     *fakeStore
	publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("test-secret", time.Hour, "recruitment-api")
	require.NoError(t, err)

	store := newFakeStore()
	publisher := &fakePublisher{}

	return &testEnv{
		deps: &Dependencies{
			Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
			Users:        store,
			JobOffers:    store,
			Applications: store,
			Publisher:    publisher,
			Tokens:       tokens,
			Passwords:    auth.NewPasswordHasher(bcrypt.MinCost),
			MaxRetries:   3,
		},
		store:     store,
		publisher: publisher,
	}
}

// engine wires the handlers directly; claims stands in for the auth middleware
func (e *testEnv) engine(claims *auth.Claims) *gin.Engine {
	r := gin.New()
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(ClaimsKey, claims)
			c.Next()
		})
	}

	authHandler := NewAuthHandler(e.deps)
	userHandler := NewUserHandler(e.deps)
	jobOfferHandler := NewJobOfferHandler(e.deps)
	applicationHandler := NewApplicationHandler(e.deps)

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/users/me", userHandler.GetMe)
	r.PATCH("/users/me", userHandler.UpdateMe)
	r.GET("/job-offers", jobOfferHandler.ListJobOffers)
	r.POST("/job-offers", jobOfferHandler.CreateJobOffer)
	r.GET("/job-offers/:job_offer_id", jobOfferHandler.GetJobOffer)
	r.PATCH("/job-offers/:job_offer_id", jobOfferHandler.UpdateJobOffer)
	r.DELETE("/job-offers/:job_offer_id", jobOfferHandler.DeleteJobOffer)
	r.POST("/job-offers/:job_offer_id/applications", applicationHandler.Apply)
	r.GET("/applications/:application_id", applicationHandler.GetApplication)
	return r
}

func (e *testEnv) seedOffer(status string) *model.JobOffer {
	offer := &model.JobOffer{
		JobOfferID:  offerID,
		EmployeeID:  employeeID,
		Position:    "Backend Engineer",
		Location:    "Hanoi",
		WorkMode:    "remote",
		Description: "Build services in Go",
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	e.store.offers[offer.JobOfferID] = offer
	return offer
}

func employeeClaims() *auth.Claims {
	return &auth.Claims{UserID: employeeID, Email: "boss@example.com", UserType: "employee"}
}

func candidateClaims() *auth.Claims {
	return &auth.Claims{UserID: candidateID, Email: "jane@example.com", UserType: "candidate"}
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{
			name:       "employee without employeeData",
			body:       `{"email":"boss@example.com","password":"s3cretpass","first_name":"Ann","last_name":"Lee","user_type":"employee"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "employeeData is required for EMPLOYEE users",
		},
		{
			name:       "candidate without candidateData",
			body:       `{"email":"jane@example.com","password":"s3cretpass","first_name":"Jane","last_name":"Doe","user_type":"candidate"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "candidateData is required for CANDIDATE users",
		},
		{
			name:       "body is not an object",
			body:       `[1,2,3]`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Request body must be a JSON object",
		},
		{
			name:       "field of the wrong type",
			body:       `{"email":"jane@example.com","password":"s3cretpass","first_name":123,"last_name":"Doe","user_type":"candidate","candidateData":{}}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantDetail: "first_name must be a string",
		},
		{
			name:       "nested object of the wrong type",
			body:       `{"email":"jane@example.com","password":"s3cretpass","first_name":"Jane","last_name":"Doe","user_type":"candidate","candidateData":"none"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantDetail: "candidateData must be an object",
		},
		{
			name: "multi-byte password over the bcrypt limit",
			body: `{"email":"jane@example.com","password":"` + strings.Repeat("é", 40) +
				`","first_name":"Jane","last_name":"Doe","user_type":"candidate","candidateData":{}}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantDetail: "password must be shorter than or equal to 72 bytes",
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","password":"s3cretpass","first_name":"Jane","last_name":"Doe","user_type":"candidate","candidateData":{}}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantDetail: "email must be an email",
		},
		{
			name:       "employee missing company name",
			body:       `{"email":"boss@example.com","password":"s3cretpass","first_name":"Ann","last_name":"Lee","user_type":"employee","employeeData":{}}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantDetail: "employeeData.company_name should not be empty",
		},
		{
			name:       "candidate with empty candidateData",
			body:       `{"email":"Jane@Example.com","password":"s3cretpass","first_name":"Jane","last_name":"Doe","user_type":"candidate","candidateData":{}}`,
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := doRequest(env.engine(nil), http.MethodPost, "/auth/register", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusCreated {
				body := decodeError(t, w)
				assert.Equal(t, tt.wantError, body.Error)
				if tt.wantDetail != "" {
					assert.Contains(t, body.Details, tt.wantDetail)
				}
				assert.Empty(t, env.store.users)
				return
			}

			var resp dto.AuthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, "jane@example.com", resp.User.Email)
			assert.Equal(t, "candidate", resp.User.UserType)
			assert.NotNil(t, resp.User.CandidateData)
			assert.Nil(t, resp.User.EmployeeData)
		})
	}
}

func TestRegister_DropsOtherProfile(t *testing.T) {
	env := newTestEnv(t)
	body := `{"email":"boss@example.com","password":"s3cretpass","first_name":"Ann","last_name":"Lee",
		"user_type":"employee","employeeData":{"company_name":"Acme"},"candidateData":{"location":"Hanoi"}}`

	w := doRequest(env.engine(nil), http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, env.store.profiles, 1)
	for _, p := range env.store.profiles {
		assert.Equal(t, domain.EmployeeProfile{CompanyName: "Acme"}, p)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	r := env.engine(nil)
	body := `{"email":"jane@example.com","password":"s3cretpass","first_name":"Jane","last_name":"Doe","user_type":"candidate","candidateData":{}}`

	require.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/auth/register", body).Code)

	w := doRequest(r, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	r := env.engine(nil)
	register := `{"email":"jane@example.com","password":"s3cretpass","first_name":"Jane","last_name":"Doe","user_type":"candidate","candidateData":{"location":"Hanoi"}}`
	require.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/auth/register", register).Code)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid credentials", `{"email":"JANE@example.com","password":"s3cretpass"}`, http.StatusOK},
		{"wrong password", `{"email":"jane@example.com","password":"wrong-pass"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"ghost@example.com","password":"s3cretpass"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"jane@example.com"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/auth/login", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusOK {
				var resp dto.AuthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				claims, err := env.deps.Tokens.Validate(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, resp.User.UserID, claims.UserID)
				require.NotNil(t, resp.User.CandidateData)
				assert.Equal(t, "Hanoi", *resp.User.CandidateData.Location)
			}
		})
	}
}

func seedCandidate(env *testEnv) {
	env.store.users[candidateID] = &model.User{
		UserID:    candidateID,
		Email:     "jane@example.com",
		UserType:  "candidate",
		FirstName: "Jane",
		LastName:  "Doe",
	}
	env.store.profiles[candidateID] = domain.CandidateProfile{}
}

func TestUpdateMe(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		env := newTestEnv(t)
		seedCandidate(env)

		w := doRequest(env.engine(candidateClaims()), http.MethodPatch, "/users/me", `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Update data cannot be empty", decodeError(t, w).Error)
	})

	t.Run("partial update", func(t *testing.T) {
		env := newTestEnv(t)
		seedCandidate(env)

		w := doRequest(env.engine(candidateClaims()), http.MethodPatch, "/users/me", `{"first_name":"Janet"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var user dto.UserDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "Janet", user.FirstName)
		assert.Equal(t, "Doe", user.LastName)
	})

	t.Run("profile of another user type is ignored", func(t *testing.T) {
		env := newTestEnv(t)
		seedCandidate(env)

		body := `{"employeeData":{"company_name":"Acme"},"candidateData":{"summary":"Go developer"}}`
		w := doRequest(env.engine(candidateClaims()), http.MethodPatch, "/users/me", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Nil(t, env.store.userPatch.Employee)
		require.NotNil(t, env.store.userPatch.Candidate)
		assert.Equal(t, "Go developer", *env.store.userPatch.Candidate.Summary)
	})

	t.Run("invalid field", func(t *testing.T) {
		env := newTestEnv(t)
		seedCandidate(env)

		w := doRequest(env.engine(candidateClaims()), http.MethodPatch, "/users/me", `{"first_name":"J"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "first_name must be longer than or equal to 2 characters")
	})
}

func TestGetMe_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	w := doRequest(env.engine(candidateClaims()), http.MethodGet, "/users/me", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateJobOffer(t *testing.T) {
	valid := `{"position":"Backend Engineer","location":"Hanoi","work_mode":"remote",
		"description":"Build services in Go","skills":[{"name":"Go","level":"advanced"}]}`

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "missing position",
			body:       `{"location":"Hanoi","work_mode":"remote","description":"Build services in Go"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "position should not be empty",
		},
		{
			name:       "invalid work mode",
			body:       `{"position":"Backend Engineer","location":"Hanoi","work_mode":"invalid","description":"Build services in Go"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "work_mode must be one of the following values: remote, hybrid, onsite",
		},
		{
			name:       "invalid skill level",
			body:       `{"position":"Backend Engineer","location":"Hanoi","work_mode":"remote","description":"Build services in Go","skills":[{"name":"Go","level":"guru"}]}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "skills.0.level must be one of the following values: beginner, intermediate, advanced, expert",
		},
		{
			name:       "skills of the wrong type",
			body:       `{"position":"Backend Engineer","location":"Hanoi","work_mode":"remote","description":"Build services in Go","skills":"Go"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "skills must be an array",
		},
		{
			name:       "deadline in the past",
			body:       `{"position":"Backend Engineer","location":"Hanoi","work_mode":"remote","description":"Build services in Go","deadline":"2001-01-01T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "deadline must be a future date",
		},
		{
			name:       "valid",
			body:       valid,
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := doRequest(env.engine(employeeClaims()), http.MethodPost, "/job-offers", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusCreated {
				body := decodeError(t, w)
				assert.Equal(t, "Validation failed", body.Error)
				assert.Contains(t, body.Details, tt.wantDetail)
				return
			}

			var offer dto.JobOfferDTO
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offer))
			assert.Equal(t, employeeID, offer.EmployeeID)
			assert.Equal(t, "Backend Engineer", offer.Position)
			assert.Equal(t, "open", offer.Status)
			require.Len(t, offer.Skills, 1)
			assert.Equal(t, "Go", offer.Skills[0].Name)
			assert.Contains(t, env.store.offers, offer.JobOfferID)
		})
	}
}

func TestCreateJobOffer_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.failWith = errDatabaseDown

	body := `{"position":"Backend Engineer","location":"Hanoi","work_mode":"remote","description":"Build services in Go"}`
	w := doRequest(env.engine(employeeClaims()), http.MethodPost, "/job-offers", body)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create job offer", decodeError(t, w).Error)
}

func TestGetJobOffer(t *testing.T) {
	env := newTestEnv(t)
	env.seedOffer("open")
	r := env.engine(nil)

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/job-offers/"+offerID, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/job-offers/"+uuid.NewString(), "").Code)

	w := doRequest(r, http.MethodGet, "/job-offers/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "job_offer_id must be a valid UUID", decodeError(t, w).Error)
}

func TestListJobOffers(t *testing.T) {
	t.Run("defaults and next cursor", func(t *testing.T) {
		env := newTestEnv(t)
		now := time.Now()
		for i := 0; i < dto.DefaultPageSize+1; i++ {
			env.store.listResult = append(env.store.listResult, model.JobOffer{
				JobOfferID: uuid.NewString(),
				CreatedAt:  now.Add(-time.Duration(i) * time.Minute),
			})
		}

		w := doRequest(env.engine(nil), http.MethodGet, "/job-offers?work_mode=remote", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.ListJobOffersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.JobOffers, dto.DefaultPageSize)
		assert.Equal(t, dto.DefaultPageSize, env.store.lastFilter.PageSize)
		assert.Equal(t, "remote", env.store.lastFilter.WorkMode)
		require.NotEmpty(t, resp.NextCursor)

		cursor, err := DecodeJobOfferCursor(resp.NextCursor)
		require.NoError(t, err)
		last := env.store.listResult[dto.DefaultPageSize-1]
		assert.Equal(t, last.JobOfferID, cursor.JobOfferID)
		assert.True(t, last.CreatedAt.Equal(cursor.CreatedAt))
	})

	t.Run("page size is capped", func(t *testing.T) {
		env := newTestEnv(t)
		w := doRequest(env.engine(nil), http.MethodGet, "/job-offers?page_size=1000", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.MaxPageSize, env.store.lastFilter.PageSize)

		var resp dto.ListJobOffersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.NextCursor)
	})

	tests := []struct {
		name  string
		query string
	}{
		{"negative page size", "?page_size=-1"},
		{"unknown status", "?status=archived"},
		{"garbage cursor", "?cursor=bm90LWEtY3Vyc29y"},
		{"employee id not a uuid", "?employee_id=abc"},
		{"page size not a number", "?page_size=ten"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := doRequest(env.engine(nil), http.MethodGet, "/job-offers"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestUpdateJobOffer(t *testing.T) {
	t.Run("owner updates", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")

		w := doRequest(env.engine(employeeClaims()), http.MethodPatch, "/job-offers/"+offerID, `{"position":"Staff Engineer","skills":[]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var offer dto.JobOfferDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offer))
		assert.Equal(t, "Staff Engineer", offer.Position)
		assert.NotNil(t, env.store.lastPatch.Skills)
		assert.Empty(t, env.store.lastPatch.Skills)
	})

	t.Run("empty payload", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")

		w := doRequest(env.engine(employeeClaims()), http.MethodPatch, "/job-offers/"+offerID, `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Update data cannot be empty", decodeError(t, w).Error)
	})

	t.Run("not the owner", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")
		claims := &auth.Claims{UserID: strangerID, UserType: "employee"}

		w := doRequest(env.engine(claims), http.MethodPatch, "/job-offers/"+offerID, `{"status":"closed"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "open", env.store.offers[offerID].Status)
	})

	t.Run("invalid value", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")

		w := doRequest(env.engine(employeeClaims()), http.MethodPatch, "/job-offers/"+offerID, `{"work_mode":"invalid"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "work_mode must be one of the following values: remote, hybrid, onsite")
	})
}

func TestDeleteJobOffer(t *testing.T) {
	env := newTestEnv(t)
	env.seedOffer("open")

	stranger := env.engine(&auth.Claims{UserID: strangerID, UserType: "employee"})
	assert.Equal(t, http.StatusForbidden, doRequest(stranger, http.MethodDelete, "/job-offers/"+offerID, "").Code)

	owner := env.engine(employeeClaims())
	assert.Equal(t, http.StatusNoContent, doRequest(owner, http.MethodDelete, "/job-offers/"+offerID, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(owner, http.MethodDelete, "/job-offers/"+offerID, "").Code)
}

func TestApply(t *testing.T) {
	t.Run("queues application", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")

		w := doRequest(env.engine(candidateClaims()), http.MethodPost, "/job-offers/"+offerID+"/applications", "")
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

		var app dto.ApplicationDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, candidateID, app.CandidateID)

		require.Len(t, env.publisher.messages, 1)
		assert.Equal(t, dto.ApplicationMessage{ApplicationID: app.ApplicationID}, env.publisher.messages[0])
		assert.Equal(t, 3, env.store.applications[app.ApplicationID].MaxRetries)
	})

	t.Run("applying twice", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")
		r := env.engine(candidateClaims())

		require.Equal(t, http.StatusAccepted, doRequest(r, http.MethodPost, "/job-offers/"+offerID+"/applications", "").Code)
		assert.Equal(t, http.StatusConflict, doRequest(r, http.MethodPost, "/job-offers/"+offerID+"/applications", "").Code)
	})

	t.Run("closed offer", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("closed")

		w := doRequest(env.engine(candidateClaims()), http.MethodPost, "/job-offers/"+offerID+"/applications", "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Empty(t, env.publisher.messages)
	})

	t.Run("deadline passed", func(t *testing.T) {
		env := newTestEnv(t)
		offer := env.seedOffer("open")
		offer.Deadline = sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}

		w := doRequest(env.engine(candidateClaims()), http.MethodPost, "/job-offers/"+offerID+"/applications", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("publish failure removes the application", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedOffer("open")
		env.publisher.err = errors.New("channel closed")

		w := doRequest(env.engine(candidateClaims()), http.MethodPost, "/job-offers/"+offerID+"/applications", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Empty(t, env.store.applications)
	})
}

func TestGetApplication(t *testing.T) {
	env := newTestEnv(t)
	env.seedOffer("open")
	appID := uuid.NewString()
	env.store.applications[appID] = &model.Application{
		ApplicationID: appID,
		JobOfferID:    offerID,
		CandidateID:   candidateID,
		Status:        domain.ApplicationStatusSubmitted,
	}

	tests := []struct {
		name       string
		claims     *auth.Claims
		path       string
		wantStatus int
	}{
		{"candidate", candidateClaims(), "/applications/" + appID, http.StatusOK},
		{"offer owner", employeeClaims(), "/applications/" + appID, http.StatusOK},
		{"stranger", &auth.Claims{UserID: strangerID, UserType: "candidate"}, "/applications/" + appID, http.StatusForbidden},
		{"unknown", candidateClaims(), "/applications/" + uuid.NewString(), http.StatusNotFound},
		{"bad id", candidateClaims(), "/applications/123", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.engine(tt.claims), http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRespondError_LogLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLevel  string
	}{
		{
			name:       "constraint violation",
			err:        &validation.ConstraintError{Violations: []validation.Violation{{Field: "email", Message: "email must be an email"}}},
			wantStatus: http.StatusBadRequest,
			wantLevel:  "WARN",
		},
		{
			name:       "payload shape",
			err:        validation.NewShapeError("Update data cannot be empty"),
			wantStatus: http.StatusBadRequest,
			wantLevel:  "WARN",
		},
		{
			name:       "unexpected failure",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", nil)

			respondError(c, logger, tt.err, "Failed to register user")

			assert.Equal(t, tt.wantStatus, w.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.err.Error(), entry["error"])
		})
	}
}
