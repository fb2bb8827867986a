package model

import (
	"database/sql"
	"time"
)

type User struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	UserType     string    `db:"user_type"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Employee struct {
	UserID      string         `db:"user_id"`
	CompanyName string         `db:"company_name"`
	Position    sql.NullString `db:"position"`
	Phone       sql.NullString `db:"phone"`
}

type Candidate struct {
	UserID   string         `db:"user_id"`
	Phone    sql.NullString `db:"phone"`
	Location sql.NullString `db:"location"`
	Summary  sql.NullString `db:"summary"`
	CVURL    sql.NullString `db:"cv_url"`
}

type JobOffer struct {
	JobOfferID     string          `db:"job_offer_id"`
	EmployeeID     string          `db:"employee_id"`
	Position       string          `db:"position"`
	Location       string          `db:"location"`
	WorkMode       string          `db:"work_mode"`
	Description    string          `db:"description"`
	Salary         sql.NullString  `db:"salary"`
	Benefits       sql.NullString  `db:"benefits"`
	Status         string          `db:"status"`
	Deadline       sql.NullTime    `db:"deadline"`
	ApplicantCount int             `db:"applicant_count"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
	Skills         []JobOfferSkill `db:"-"`
}

type JobOfferSkill struct {
	SkillID    string `db:"skill_id"`
	JobOfferID string `db:"job_offer_id"`
	Name       string `db:"name"`
	Level      string `db:"level"`
}

type Application struct {
	ApplicationID string         `db:"application_id"`
	JobOfferID    string         `db:"job_offer_id"`
	CandidateID   string         `db:"candidate_id"`
	Status        string         `db:"status"`
	RetryCount    int            `db:"retry_count"`
	MaxRetries    int            `db:"max_retries"`
	ErrorMessage  sql.NullString `db:"error_message"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// UserPatch holds the user columns a partial update may change; nil means unchanged.
// At most one of Employee and Candidate is set, matching the user's type.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Employee  *EmployeePatch
	Candidate *CandidatePatch
}

// JobOfferPatch holds the job offer columns a partial update may change; nil means unchanged.
// A non-nil Skills replaces every skill of the offer.
type JobOfferPatch struct {
	Position    *string
	Location    *string
	WorkMode    *string
	Description *string
	Salary      *string
	Benefits    *string
	Status      *string
	Deadline    *time.Time
	Skills      []JobOfferSkill
}

// EmployeePatch holds employee profile columns a partial update may change
type EmployeePatch struct {
	CompanyName *string
	Position    *string
	Phone       *string
}

// CandidatePatch holds candidate profile columns a partial update may change
type CandidatePatch struct {
	Phone    *string
	Location *string
	Summary  *string
	CVURL    *string
}
