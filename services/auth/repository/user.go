package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/models"
)

// GetUserByPhone retrieves a user by phone number
func (r *UserRepo) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	query := `
		SELECT id, phone_number, email, first_name, last_name, role, status,
			is_verified, profile_picture_url, last_login_at, created_at, updated_at
		FROM users
		WHERE phone_number = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindUserNotFound, "User not found")
		}
		return nil, apperrors.Internal("failed to get user by phone", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, phone_number, email, first_name, last_name, role, status,
			is_verified, profile_picture_url, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindUserNotFound, "User not found")
		}
		return nil, apperrors.Internal("failed to get user by id", err)
	}

	return &user, nil
}

// CreateUser creates a new user record
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, phone_number, email, first_name, last_name, role,
			status, is_verified, profile_picture_url, last_login_at, created_at, updated_at
		) VALUES (:id, :phone_number, :email, :first_name, :last_name, :role,
			:status, :is_verified, :profile_picture_url, :last_login_at, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return apperrors.Internal("failed to insert user", err)
	}

	return nil
}

// UpdateUser persists mutable profile fields of an existing user
func (r *UserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET email = :email,
			first_name = :first_name,
			last_name = :last_name,
			role = :role,
			is_verified = :is_verified,
			profile_picture_url = :profile_picture_url,
			last_login_at = :last_login_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return apperrors.Internal("failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal("failed to read update result", err)
	}
	if rows == 0 {
		return apperrors.New(apperrors.KindUserNotFound, "User not found")
	}

	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET last_login_at = $1, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return apperrors.Internal("failed to update last login", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal("failed to read update result", err)
	}
	if rows == 0 {
		return apperrors.New(apperrors.KindUserNotFound, "User not found")
	}

	return nil
}
