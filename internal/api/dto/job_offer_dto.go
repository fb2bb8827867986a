package dto

import (
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/validation"
)

type JobOfferSkillRequest struct {
	Name  *string `json:"name"`
	Level *string `json:"level"`
}

type CreateJobOfferRequest struct {
	Position    *string                `json:"position"`
	Location    *string                `json:"location"`
	WorkMode    *string                `json:"work_mode"`
	Description *string                `json:"description"`
	Salary      *string                `json:"salary"`
	Benefits    *string                `json:"benefits"`
	Status      *string                `json:"status"`
	Deadline    *time.Time             `json:"deadline"`
	Skills      []JobOfferSkillRequest `json:"skills"`
}

func (r *CreateJobOfferRequest) Validate() error {
	v := validation.New()
	v.String("position", r.Position).Required().Length(PositionMinLength, PositionMaxLength)
	v.String("location", r.Location).Required().Length(LocationMinLength, LocationMaxLength)
	v.String("work_mode", r.WorkMode).Required().OneOf(domain.WorkModes...)
	v.String("description", r.Description).Required().Length(DescriptionMinLength, DescriptionMaxLength)
	v.String("salary", r.Salary).MaxLength(SalaryMaxLength)
	v.String("benefits", r.Benefits).MaxLength(BenefitsMaxLength)
	v.String("status", r.Status).OneOf(domain.JobOfferStatuses...)
	v.Check(r.Deadline == nil || r.Deadline.After(time.Now()), "deadline", "deadline must be a future date")
	validateSkills(v, r.Skills)
	return v.Err()
}

// UpdateJobOfferRequest is a partial update; absent fields are left unchanged
// and a present skills array replaces every existing skill.
type UpdateJobOfferRequest struct {
	Position    *string                `json:"position"`
	Location    *string                `json:"location"`
	WorkMode    *string                `json:"work_mode"`
	Description *string                `json:"description"`
	Salary      *string                `json:"salary"`
	Benefits    *string                `json:"benefits"`
	Status      *string                `json:"status"`
	Deadline    *time.Time             `json:"deadline"`
	Skills      []JobOfferSkillRequest `json:"skills"`
}

func (r *UpdateJobOfferRequest) Validate() error {
	v := validation.New()
	v.String("position", r.Position).Length(PositionMinLength, PositionMaxLength)
	v.String("location", r.Location).Length(LocationMinLength, LocationMaxLength)
	v.String("work_mode", r.WorkMode).OneOf(domain.WorkModes...)
	v.String("description", r.Description).Length(DescriptionMinLength, DescriptionMaxLength)
	v.String("salary", r.Salary).MaxLength(SalaryMaxLength)
	v.String("benefits", r.Benefits).MaxLength(BenefitsMaxLength)
	v.String("status", r.Status).OneOf(domain.JobOfferStatuses...)
	v.Check(r.Deadline == nil || r.Deadline.After(time.Now()), "deadline", "deadline must be a future date")
	validateSkills(v, r.Skills)
	return v.Err()
}

func validateSkills(v *validation.Validator, skills []JobOfferSkillRequest) {
	v.Slice("skills", len(skills), skills != nil).MaxSize(MaxSkillsPerOffer)
	validation.Each(v, "skills", skills, func(v *validation.Validator, s JobOfferSkillRequest) {
		v.String("name", s.Name).Required().Length(SkillNameMinLength, SkillNameMaxLength)
		v.String("level", s.Level).Required().OneOf(domain.SkillLevels...)
	})
}

type ListJobOffersRequest struct {
	WorkMode   string `form:"work_mode"`
	Status     string `form:"status"`
	Location   string `form:"location"`
	EmployeeID string `form:"employee_id"`
	PageSize   int    `form:"page_size"`
	Cursor     string `form:"cursor"`
}

func (r *ListJobOffersRequest) Validate() error {
	v := validation.New()
	v.String("work_mode", validation.Optional(r.WorkMode)).OneOf(domain.WorkModes...)
	v.String("status", validation.Optional(r.Status)).OneOf(domain.JobOfferStatuses...)
	v.String("location", validation.Optional(r.Location)).MaxLength(LocationMaxLength)
	v.Check(r.PageSize >= 0, "page_size", "page_size must not be less than 0")
	return v.Err()
}

type JobOfferSkillDTO struct {
	SkillID string `json:"skill_id"`
	Name    string `json:"name"`
	Level   string `json:"level"`
}

type JobOfferDTO struct {
	JobOfferID     string             `json:"job_offer_id"`
	EmployeeID     string             `json:"employee_id"`
	Position       string             `json:"position"`
	Location       string             `json:"location"`
	WorkMode       string             `json:"work_mode"`
	Description    string             `json:"description"`
	Salary         *string            `json:"salary,omitempty"`
	Benefits       *string            `json:"benefits,omitempty"`
	Status         string             `json:"status"`
	Deadline       *string            `json:"deadline,omitempty"`
	ApplicantCount int                `json:"applicant_count"`
	Skills         []JobOfferSkillDTO `json:"skills"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

type ListJobOffersResponse struct {
	JobOffers  []JobOfferDTO `json:"job_offers"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ApplicationMessage is published for the worker when a candidate applies
type ApplicationMessage struct {
	ApplicationID string `json:"application_id"`
}

type ApplicationDTO struct {
	ApplicationID string  `json:"application_id"`
	JobOfferID    string  `json:"job_offer_id"`
	CandidateID   string  `json:"candidate_id"`
	Status        string  `json:"status"`
	ErrorMessage  *string `json:"error_message,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
