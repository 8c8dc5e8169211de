package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/taxiconnect/backend/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/taxiconnect/backend/services/auth AuthUC

// AuthUC represents the auth usecase interface
type AuthUC interface {
	// OTP login flow
	RequestOTP(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, phoneNumber, code string) (*models.AuthResponse, error)

	// session management
	RefreshToken(ctx context.Context, oldToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, token string) error

	// profile management
	CompleteProfile(ctx context.Context, userID uuid.UUID, req *models.CompleteProfileRequest) (*models.User, error)
	RegisterDriver(ctx context.Context, userID uuid.UUID, req *models.RegisterDriverRequest) (*models.Driver, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
}
