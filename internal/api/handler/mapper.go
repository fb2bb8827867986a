package handler

import (
	"database/sql"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/dto"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
)

func toUserDTO(user *model.User, profile domain.Profile) dto.UserDTO {
	out := dto.UserDTO{
		UserID:    user.UserID,
		Email:     user.Email,
		UserType:  user.UserType,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}

	switch p := profile.(type) {
	case domain.EmployeeProfile:
		out.EmployeeData = &dto.EmployeeDataResponse{
			CompanyName: p.CompanyName,
			Position:    p.Position,
			Phone:       p.Phone,
		}
	case domain.CandidateProfile:
		out.CandidateData = &dto.CandidateDataResponse{
			Phone:    p.Phone,
			Location: p.Location,
			Summary:  p.Summary,
			CVURL:    p.CVURL,
		}
	}

	return out
}

func toUserPatch(req *dto.UpdateUserRequest, userType domain.UserType) model.UserPatch {
	patch := model.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	// Only the profile matching the user's type is updated
	switch {
	case userType == domain.UserTypeEmployee && req.EmployeeData != nil:
		patch.Employee = &model.EmployeePatch{
			CompanyName: req.EmployeeData.CompanyName,
			Position:    req.EmployeeData.Position,
			Phone:       req.EmployeeData.Phone,
		}
	case userType == domain.UserTypeCandidate && req.CandidateData != nil:
		patch.Candidate = &model.CandidatePatch{
			Phone:    req.CandidateData.Phone,
			Location: req.CandidateData.Location,
			Summary:  req.CandidateData.Summary,
			CVURL:    req.CandidateData.CVURL,
		}
	}

	return patch
}

func toJobOfferDTO(offer *model.JobOffer) dto.JobOfferDTO {
	skills := make([]dto.JobOfferSkillDTO, len(offer.Skills))
	for i, s := range offer.Skills {
		skills[i] = dto.JobOfferSkillDTO{
			SkillID: s.SkillID,
			Name:    s.Name,
			Level:   s.Level,
		}
	}

	out := dto.JobOfferDTO{
		JobOfferID:     offer.JobOfferID,
		EmployeeID:     offer.EmployeeID,
		Position:       offer.Position,
		Location:       offer.Location,
		WorkMode:       offer.WorkMode,
		Description:    offer.Description,
		Salary:         nullableString(offer.Salary),
		Benefits:       nullableString(offer.Benefits),
		Status:         offer.Status,
		ApplicantCount: offer.ApplicantCount,
		Skills:         skills,
		CreatedAt:      offer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      offer.UpdatedAt.Format(time.RFC3339),
	}

	if offer.Deadline.Valid {
		deadline := offer.Deadline.Time.Format(time.RFC3339)
		out.Deadline = &deadline
	}

	return out
}

func toJobOfferModel(req *dto.CreateJobOfferRequest, jobOfferID, employeeID string, now time.Time) *model.JobOffer {
	status := string(domain.JobOfferStatusOpen)
	if req.Status != nil {
		status = *req.Status
	}

	offer := &model.JobOffer{
		JobOfferID:  jobOfferID,
		EmployeeID:  employeeID,
		Position:    *req.Position,
		Location:    *req.Location,
		WorkMode:    *req.WorkMode,
		Description: *req.Description,
		Salary:      toNullString(req.Salary),
		Benefits:    toNullString(req.Benefits),
		Status:      status,
		Skills:      toSkillModels(req.Skills),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Deadline != nil {
		offer.Deadline = sql.NullTime{Time: *req.Deadline, Valid: true}
	}

	return offer
}

func toJobOfferPatch(req *dto.UpdateJobOfferRequest) model.JobOfferPatch {
	patch := model.JobOfferPatch{
		Position:    req.Position,
		Location:    req.Location,
		WorkMode:    req.WorkMode,
		Description: req.Description,
		Salary:      req.Salary,
		Benefits:    req.Benefits,
		Status:      req.Status,
		Deadline:    req.Deadline,
	}
	if req.Skills != nil {
		patch.Skills = toSkillModels(req.Skills)
	}
	return patch
}

func toSkillModels(skills []dto.JobOfferSkillRequest) []model.JobOfferSkill {
	out := make([]model.JobOfferSkill, len(skills))
	for i, s := range skills {
		out[i] = model.JobOfferSkill{
			Name:  *s.Name,
			Level: *s.Level,
		}
	}
	return out
}

func toApplicationDTO(app *model.Application) dto.ApplicationDTO {
	return dto.ApplicationDTO{
		ApplicationID: app.ApplicationID,
		JobOfferID:    app.JobOfferID,
		CandidateID:   app.CandidateID,
		Status:        app.Status,
		ErrorMessage:  nullableString(app.ErrorMessage),
		CreatedAt:     app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     app.UpdatedAt.Format(time.RFC3339),
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
