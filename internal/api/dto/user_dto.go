package dto

import (
	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/validation"
)

// UserTypePipe requires employeeData or candidateData according to user_type
var UserTypePipe = validation.ConditionalFieldPipe{
	Discriminator: "user_type",
	Required: map[string]string{
		string(domain.UserTypeEmployee):  "employeeData",
		string(domain.UserTypeCandidate): "candidateData",
	},
}

type EmployeeData struct {
	CompanyName *string `json:"company_name"`
	Position    *string `json:"position"`
	Phone       *string `json:"phone"`
}

type CandidateData struct {
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Summary  *string `json:"summary"`
	CVURL    *string `json:"cv_url"`
}

type RegisterRequest struct {
	Email         *string        `json:"email"`
	Password      *string        `json:"password"`
	FirstName     *string        `json:"first_name"`
	LastName      *string        `json:"last_name"`
	UserType      *string        `json:"user_type"`
	EmployeeData  *EmployeeData  `json:"employeeData"`
	CandidateData *CandidateData `json:"candidateData"`
}

func (r *RegisterRequest) Validate() error {
	v := validation.New()
	v.String("email", r.Email).Required().MaxLength(EmailMaxLength).Email()
	v.String("password", r.Password).Required().Length(PasswordMinLength, PasswordMaxLength).MaxBytes(PasswordMaxBytes)
	v.String("first_name", r.FirstName).Required().Length(NameMinLength, NameMaxLength)
	v.String("last_name", r.LastName).Required().Length(NameMinLength, NameMaxLength)
	v.String("user_type", r.UserType).Required().OneOf(domain.UserTypes...)

	if r.UserType == nil {
		return v.Err()
	}

	switch domain.UserType(*r.UserType) {
	case domain.UserTypeEmployee:
		if r.EmployeeData != nil {
			v.Nested("employeeData", func(v *validation.Validator) {
				validateEmployeeData(v, r.EmployeeData, true)
			})
		}
	case domain.UserTypeCandidate:
		if r.CandidateData != nil {
			v.Nested("candidateData", func(v *validation.Validator) {
				validateCandidateData(v, r.CandidateData)
			})
		}
	}

	return v.Err()
}

// Profile returns the profile selected by user_type. The sub-object of the other
// user type, if sent, is dropped.
func (r *RegisterRequest) Profile() domain.Profile {
	if r.UserType != nil && domain.UserType(*r.UserType) == domain.UserTypeEmployee {
		profile := domain.EmployeeProfile{}
		if r.EmployeeData != nil {
			if r.EmployeeData.CompanyName != nil {
				profile.CompanyName = *r.EmployeeData.CompanyName
			}
			profile.Position = r.EmployeeData.Position
			profile.Phone = r.EmployeeData.Phone
		}
		return profile
	}

	profile := domain.CandidateProfile{}
	if r.CandidateData != nil {
		profile.Phone = r.CandidateData.Phone
		profile.Location = r.CandidateData.Location
		profile.Summary = r.CandidateData.Summary
		profile.CVURL = r.CandidateData.CVURL
	}
	return profile
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	v := validation.New()
	v.String("email", r.Email).Required().Email()
	v.String("password", r.Password).Required()
	return v.Err()
}

// UpdateUserRequest is a partial update of the caller's own user and profile
type UpdateUserRequest struct {
	FirstName     *string        `json:"first_name"`
	LastName      *string        `json:"last_name"`
	EmployeeData  *EmployeeData  `json:"employeeData"`
	CandidateData *CandidateData `json:"candidateData"`
}

func (r *UpdateUserRequest) Validate() error {
	v := validation.New()
	v.String("first_name", r.FirstName).Length(NameMinLength, NameMaxLength)
	v.String("last_name", r.LastName).Length(NameMinLength, NameMaxLength)
	if r.EmployeeData != nil {
		v.Nested("employeeData", func(v *validation.Validator) {
			validateEmployeeData(v, r.EmployeeData, false)
		})
	}
	if r.CandidateData != nil {
		v.Nested("candidateData", func(v *validation.Validator) {
			validateCandidateData(v, r.CandidateData)
		})
	}
	return v.Err()
}

func validateEmployeeData(v *validation.Validator, d *EmployeeData, companyRequired bool) {
	company := v.String("company_name", d.CompanyName)
	if companyRequired {
		company.Required()
	}
	company.Length(CompanyNameMinLength, CompanyNameMaxLength)
	v.String("position", d.Position).Length(PositionMinLength, PositionMaxLength)
	v.String("phone", d.Phone).Length(PhoneMinLength, PhoneMaxLength)
}

func validateCandidateData(v *validation.Validator, d *CandidateData) {
	v.String("phone", d.Phone).Length(PhoneMinLength, PhoneMaxLength)
	v.String("location", d.Location).Length(LocationMinLength, LocationMaxLength)
	v.String("summary", d.Summary).MaxLength(SummaryMaxLength)
	v.String("cv_url", d.CVURL).MaxLength(CVURLMaxLength)
}

type EmployeeDataResponse struct {
	CompanyName string  `json:"company_name"`
	Position    *string `json:"position,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

type CandidateDataResponse struct {
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	CVURL    *string `json:"cv_url,omitempty"`
}

type UserDTO struct {
	UserID        string                 `json:"user_id"`
	Email         string                 `json:"email"`
	UserType      string                 `json:"user_type"`
	FirstName     string                 `json:"first_name"`
	LastName      string                 `json:"last_name"`
	EmployeeData  *EmployeeDataResponse  `json:"employeeData,omitempty"`
	CandidateData *CandidateDataResponse `json:"candidateData,omitempty"`
	CreatedAt     string                 `json:"created_at"`
	UpdatedAt     string                 `json:"updated_at"`
}

type AuthResponse struct {
	Token     string  `json:"token"`
	TokenType string  `json:"token_type"`
	ExpiresAt string  `json:"expires_at"`
	User      UserDTO `json:"user"`
}
