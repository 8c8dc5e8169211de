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

// GetDriverByUserID retrieves the driver profile for a user, or a
// KindUserNotFound error when none exists
func (r *UserRepo) GetDriverByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	query := `
		SELECT id, user_id, license_number, license_expiry_date, cin,
			vehicle_make, vehicle_model, vehicle_year, vehicle_plate_number,
			city, verification_status, rating, total_rides, created_at, updated_at
		FROM drivers
		WHERE user_id = $1
	`

	var driver models.Driver
	err := r.db.GetContext(ctx, &driver, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindUserNotFound, "Driver profile not found")
		}
		return nil, apperrors.Internal("failed to get driver profile", err)
	}

	return &driver, nil
}

// CreateDriverProfile creates the driver profile for a user
func (r *UserRepo) CreateDriverProfile(ctx context.Context, driver *models.Driver) error {
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	now := time.Now()
	driver.CreatedAt = now
	driver.UpdatedAt = now

	query := `
		INSERT INTO drivers (id, user_id, license_number, license_expiry_date, cin,
			vehicle_make, vehicle_model, vehicle_year, vehicle_plate_number,
			city, verification_status, rating, total_rides, created_at, updated_at
		) VALUES (:id, :user_id, :license_number, :license_expiry_date, :cin,
			:vehicle_make, :vehicle_model, :vehicle_year, :vehicle_plate_number,
			:city, :verification_status, :rating, :total_rides, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, driver); err != nil {
		return apperrors.Internal("failed to insert driver profile", err)
	}

	return nil
}

// GetPassengerByUserID retrieves the passenger profile for a user
func (r *UserRepo) GetPassengerByUserID(ctx context.Context, userID uuid.UUID) (*models.Passenger, error) {
	query := `
		SELECT id, user_id, preferred_language, rating, total_rides, created_at, updated_at
		FROM passengers
		WHERE user_id = $1
	`

	var passenger models.Passenger
	err := r.db.GetContext(ctx, &passenger, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindUserNotFound, "Passenger profile not found")
		}
		return nil, apperrors.Internal("failed to get passenger profile", err)
	}

	return &passenger, nil
}

// CreatePassengerProfile creates the passenger profile for a user
func (r *UserRepo) CreatePassengerProfile(ctx context.Context, passenger *models.Passenger) error {
	if passenger.ID == uuid.Nil {
		passenger.ID = uuid.New()
	}
	now := time.Now()
	passenger.CreatedAt = now
	passenger.UpdatedAt = now

	query := `
		INSERT INTO passengers (id, user_id, preferred_language, rating, total_rides, created_at, updated_at)
		VALUES (:id, :user_id, :preferred_language, :rating, :total_rides, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, passenger); err != nil {
		return apperrors.Internal("failed to insert passenger profile", err)
	}

	return nil
}
