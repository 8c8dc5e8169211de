package usecase

import (
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/services/auth"
)

// AuthUC coordinates the OTP store, rate limiter, token service, user
// directory and SMS gateway
type AuthUC struct {
	authRepo auth.AuthRepo
	userRepo auth.UserRepo
	smsGW    auth.SMSGW
	cfg      *models.Config
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	authRepo auth.AuthRepo,
	userRepo auth.UserRepo,
	smsGW auth.SMSGW,
	cfg *models.Config,
) *AuthUC {
	return &AuthUC{
		authRepo: authRepo,
		userRepo: userRepo,
		smsGW:    smsGW,
		cfg:      cfg,
	}
}
