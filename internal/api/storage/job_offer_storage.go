package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/cuongbtq/recruitment-be/shared/postgresql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const jobOfferColumns = `
	job_offer_id, employee_id, position, location, work_mode,
	description, salary, benefits, status, deadline,
	applicant_count, created_at, updated_at`

// CreateJobOffer inserts the offer together with its skills
func (s *Storage) CreateJobOffer(ctx context.Context, offer *model.JobOffer) error {
	return postgresql.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO job_offers (
				job_offer_id, employee_id, position, location, work_mode,
				description, salary, benefits, status, deadline,
				applicant_count, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5,
				$6, $7, $8, $9, $10,
				$11, $12, $13
			)`,
			offer.JobOfferID,
			offer.EmployeeID,
			offer.Position,
			offer.Location,
			offer.WorkMode,
			offer.Description,
			offer.Salary,
			offer.Benefits,
			offer.Status,
			offer.Deadline,
			offer.ApplicantCount,
			offer.CreatedAt,
			offer.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create job offer: %w", err)
		}

		return insertSkills(ctx, tx, offer.JobOfferID, offer.Skills)
	})
}

func insertSkills(ctx context.Context, tx *sqlx.Tx, jobOfferID string, skills []model.JobOfferSkill) error {
	for i := range skills {
		if skills[i].SkillID == "" {
			skills[i].SkillID = uuid.New().String()
		}
		skills[i].JobOfferID = jobOfferID

		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO job_offer_skills (skill_id, job_offer_id, name, level)
			VALUES (:skill_id, :job_offer_id, :name, :level)`, skills[i])
		if err != nil {
			return fmt.Errorf("failed to create job offer skill: %w", err)
		}
	}
	return nil
}

func (s *Storage) GetJobOffer(ctx context.Context, jobOfferID string) (*model.JobOffer, error) {
	var offer model.JobOffer
	query := `SELECT ` + jobOfferColumns + ` FROM job_offers WHERE job_offer_id = $1`

	err := s.db.GetContext(ctx, &offer, query, jobOfferID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobOfferNotFound
		}
		return nil, fmt.Errorf("failed to get job offer: %w", err)
	}

	offers := []model.JobOffer{offer}
	if err := s.attachSkills(ctx, offers); err != nil {
		return nil, err
	}

	return &offers[0], nil
}

// ListJobOffers returns up to PageSize+1 offers newest first; the extra row signals a next page
func (s *Storage) ListJobOffers(ctx context.Context, filter JobOfferFilter) ([]model.JobOffer, error) {
	query := `SELECT ` + jobOfferColumns + ` FROM job_offers WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}

	if filter.WorkMode != "" {
		query += fmt.Sprintf(" AND work_mode = $%d", argIdx)
		args = append(args, filter.WorkMode)
		argIdx++
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, job_offer_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.JobOfferID)
		argIdx += 2
	}

	query += " ORDER BY created_at DESC, job_offer_id DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var offers []model.JobOffer
	err := s.db.SelectContext(ctx, &offers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job offers: %w", err)
	}

	if err := s.attachSkills(ctx, offers); err != nil {
		return nil, err
	}

	return offers, nil
}

// attachSkills loads the skills of every offer with a single query
func (s *Storage) attachSkills(ctx context.Context, offers []model.JobOffer) error {
	if len(offers) == 0 {
		return nil
	}

	ids := make([]string, len(offers))
	for i := range offers {
		ids[i] = offers[i].JobOfferID
	}

	var skills []model.JobOfferSkill
	err := s.db.SelectContext(ctx, &skills, `
		SELECT skill_id, job_offer_id, name, level
		FROM job_offer_skills
		WHERE job_offer_id = ANY($1)
		ORDER BY name`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to get job offer skills: %w", err)
	}

	byOffer := make(map[string][]model.JobOfferSkill, len(offers))
	for _, skill := range skills {
		byOffer[skill.JobOfferID] = append(byOffer[skill.JobOfferID], skill)
	}
	for i := range offers {
		offers[i].Skills = byOffer[offers[i].JobOfferID]
	}

	return nil
}

// UpdateJobOffer applies a partial update; a non-nil Skills replaces the offer's skills
func (s *Storage) UpdateJobOffer(ctx context.Context, jobOfferID string, patch model.JobOfferPatch) error {
	return postgresql.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		sets := []string{"updated_at = NOW()"}
		args := []interface{}{}
		argIdx := 1

		set := func(column string, value interface{}) {
			sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
			args = append(args, value)
			argIdx++
		}

		if patch.Position != nil {
			set("position", *patch.Position)
		}
		if patch.Location != nil {
			set("location", *patch.Location)
		}
		if patch.WorkMode != nil {
			set("work_mode", *patch.WorkMode)
		}
		if patch.Description != nil {
			set("description", *patch.Description)
		}
		if patch.Salary != nil {
			set("salary", *patch.Salary)
		}
		if patch.Benefits != nil {
			set("benefits", *patch.Benefits)
		}
		if patch.Status != nil {
			set("status", *patch.Status)
		}
		if patch.Deadline != nil {
			set("deadline", nullTime(patch.Deadline))
		}

		query := fmt.Sprintf("UPDATE job_offers SET %s WHERE job_offer_id = $%d", strings.Join(sets, ", "), argIdx)
		args = append(args, jobOfferID)

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update job offer: %w", err)
		}
		if err := requireRow(result, domain.ErrJobOfferNotFound); err != nil {
			return err
		}

		if patch.Skills == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM job_offer_skills WHERE job_offer_id = $1`, jobOfferID); err != nil {
			return fmt.Errorf("failed to clear job offer skills: %w", err)
		}

		return insertSkills(ctx, tx, jobOfferID, patch.Skills)
	})
}

// DeleteJobOffer removes the offer; skills and applications cascade
func (s *Storage) DeleteJobOffer(ctx context.Context, jobOfferID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM job_offers WHERE job_offer_id = $1`, jobOfferID)
	if err != nil {
		return fmt.Errorf("failed to delete job offer: %w", err)
	}

	return requireRow(result, domain.ErrJobOfferNotFound)
}
