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
	"github.com/jmoiron/sqlx"
)

const userColumns = `user_id, email, password_hash, user_type, first_name, last_name, created_at, updated_at`

// CreateUser inserts the user and the profile row selected by its type in one transaction
func (s *Storage) CreateUser(ctx context.Context, user *model.User, profile domain.Profile) error {
	return postgresql.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (
				user_id, email, password_hash, user_type,
				first_name, last_name, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4,
				$5, $6, $7, $8
			)`,
			user.UserID,
			user.Email,
			user.PasswordHash,
			user.UserType,
			user.FirstName,
			user.LastName,
			user.CreatedAt,
			user.UpdatedAt,
		)
		if err != nil {
			if postgresql.IsUniqueViolation(err) {
				return domain.ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		switch p := profile.(type) {
		case domain.EmployeeProfile:
			_, err = tx.ExecContext(ctx, `
				INSERT INTO employees (user_id, company_name, position, phone)
				VALUES ($1, $2, $3, $4)`,
				user.UserID, p.CompanyName, nullString(p.Position), nullString(p.Phone),
			)
		case domain.CandidateProfile:
			_, err = tx.ExecContext(ctx, `
				INSERT INTO candidates (user_id, phone, location, summary, cv_url)
				VALUES ($1, $2, $3, $4, $5)`,
				user.UserID, nullString(p.Phone), nullString(p.Location), nullString(p.Summary), nullString(p.CVURL),
			)
		default:
			return fmt.Errorf("unsupported profile type %T", profile)
		}
		if err != nil {
			return fmt.Errorf("failed to create %s profile: %w", profile.UserType(), err)
		}

		return nil
	})
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Storage) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetProfile loads the profile matching the user's type
func (s *Storage) GetProfile(ctx context.Context, user *model.User) (domain.Profile, error) {
	switch domain.UserType(user.UserType) {
	case domain.UserTypeEmployee:
		var e model.Employee
		err := s.db.GetContext(ctx, &e, `
			SELECT user_id, company_name, position, phone
			FROM employees
			WHERE user_id = $1`, user.UserID)
		if err != nil {
			return nil, profileError(err)
		}
		return domain.EmployeeProfile{
			CompanyName: e.CompanyName,
			Position:    stringPtr(e.Position),
			Phone:       stringPtr(e.Phone),
		}, nil

	case domain.UserTypeCandidate:
		var c model.Candidate
		err := s.db.GetContext(ctx, &c, `
			SELECT user_id, phone, location, summary, cv_url
			FROM candidates
			WHERE user_id = $1`, user.UserID)
		if err != nil {
			return nil, profileError(err)
		}
		return domain.CandidateProfile{
			Phone:    stringPtr(c.Phone),
			Location: stringPtr(c.Location),
			Summary:  stringPtr(c.Summary),
			CVURL:    stringPtr(c.CVURL),
		}, nil
	}

	return nil, fmt.Errorf("unknown user type %q", user.UserType)
}

func profileError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("failed to get profile: %w", err)
}

// UpdateUser applies a partial update to the user and its profile
func (s *Storage) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) error {
	return postgresql.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		sets := []string{"updated_at = NOW()"}
		args := []interface{}{}
		argIdx := 1

		if patch.FirstName != nil {
			sets = append(sets, fmt.Sprintf("first_name = $%d", argIdx))
			args = append(args, *patch.FirstName)
			argIdx++
		}

		if patch.LastName != nil {
			sets = append(sets, fmt.Sprintf("last_name = $%d", argIdx))
			args = append(args, *patch.LastName)
			argIdx++
		}

		query := fmt.Sprintf("UPDATE users SET %s WHERE user_id = $%d", strings.Join(sets, ", "), argIdx)
		args = append(args, userID)

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if err := requireRow(result, domain.ErrUserNotFound); err != nil {
			return err
		}

		if p := patch.Employee; p != nil {
			_, err = tx.ExecContext(ctx, `
				UPDATE employees
				SET company_name = COALESCE($2, company_name),
				    position = COALESCE($3, position),
				    phone = COALESCE($4, phone)
				WHERE user_id = $1`,
				userID, nullString(p.CompanyName), nullString(p.Position), nullString(p.Phone),
			)
			if err != nil {
				return fmt.Errorf("failed to update employee profile: %w", err)
			}
		}

		if p := patch.Candidate; p != nil {
			_, err = tx.ExecContext(ctx, `
				UPDATE candidates
				SET phone = COALESCE($2, phone),
				    location = COALESCE($3, location),
				    summary = COALESCE($4, summary),
				    cv_url = COALESCE($5, cv_url)
				WHERE user_id = $1`,
				userID, nullString(p.Phone), nullString(p.Location), nullString(p.Summary), nullString(p.CVURL),
			)
			if err != nil {
				return fmt.Errorf("failed to update candidate profile: %w", err)
			}
		}

		return nil
	})
}

func requireRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
