package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taxiconnect/backend/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/taxiconnect/backend/services/auth AuthRepo,UserRepo

// AuthRepo is the Redis-backed store for OTP records, rate limit
// windows and the token blacklist. Entries expire autonomously via
// key TTLs; the usecase only deletes explicitly on successful verify
// and on exceeding the attempt cap.
type AuthRepo interface {
	// CreateOTP stores the record for otp.PhoneNumber with the given
	// TTL, discarding any previous record and its attempt counter.
	CreateOTP(ctx context.Context, otp *models.OTP, ttl time.Duration) error
	// GetOTP returns the live record, or a KindOTPNotFound error when
	// the phone number has no record or it expired.
	GetOTP(ctx context.Context, phoneNumber string) (*models.OTP, error)
	// IncrementOTPAttempts records a failed verification without
	// resetting the expiry clock. Returns the new attempt count, or 0
	// when no record exists.
	IncrementOTPAttempts(ctx context.Context, phoneNumber string) (int, error)
	// DeleteOTP removes the record unconditionally. Idempotent.
	DeleteOTP(ctx context.Context, phoneNumber string) error

	// CheckRateLimit increments the window counter for (operation,
	// identifier) and reports whether the post-increment count exceeds
	// maxRequests. The triggering request is counted even when it is
	// the one that crosses the threshold.
	CheckRateLimit(ctx context.Context, operation, identifier string, maxRequests int, window time.Duration) (bool, error)

	// BlacklistToken rejects the token until its natural expiry
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// UserRepo is the user directory
type UserRepo interface {
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	GetDriverByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error)
	CreateDriverProfile(ctx context.Context, driver *models.Driver) error
	GetPassengerByUserID(ctx context.Context, userID uuid.UUID) (*models.Passenger, error)
	CreatePassengerProfile(ctx context.Context, passenger *models.Passenger) error
}
