package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/constants"
	jwtpkg "github.com/taxiconnect/backend/internal/pkg/jwt"
	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/internal/utils"
)

var otpCodePattern = regexp.MustCompile(`^\d{6}$`)

// RequestOTP generates a one-time password for the given phone number
// and dispatches it via SMS. A second request for the same number
// silently replaces the earlier code: last request wins.
func (u *AuthUC) RequestOTP(ctx context.Context, phoneNumber string) error {
	normalized, err := utils.ValidatePhoneNumber(phoneNumber)
	if err != nil {
		return apperrors.New(apperrors.KindInvalidInput, "Invalid Moroccan phone number format. Use +212XXXXXXXXX")
	}

	window := time.Duration(u.cfg.RateLimit.OTPRequestWindowSec) * time.Second
	exceeded, err := u.authRepo.CheckRateLimit(ctx, constants.RateOTPRequest, normalized, u.cfg.RateLimit.OTPRequestMax, window)
	if err != nil {
		return err
	}
	if exceeded {
		return apperrors.New(apperrors.KindRateLimited,
			fmt.Sprintf("Too many OTP requests. Please try again in %d minutes", int(window.Minutes())))
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return apperrors.Internal("failed to generate OTP code", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to hash OTP code", err)
	}

	otp := &models.OTP{
		PhoneNumber: normalized,
		CodeHash:    string(hash),
		CreatedAt:   time.Now(),
	}

	ttl := time.Duration(u.cfg.OTP.TTLSeconds) * time.Second
	if err := u.authRepo.CreateOTP(ctx, otp, ttl); err != nil {
		return err
	}

	// The code is stored at this point; a failed dispatch is logged and
	// the request still succeeds so the user can retry delivery.
	message := fmt.Sprintf("Your Taxi-Connect verification code is: %s", code)
	if err := u.smsGW.SendSMS(ctx, normalized, message); err != nil {
		logger.Warn("Failed to dispatch OTP SMS",
			logger.String("phone_number", normalized),
			logger.Err(err))
	}

	logger.Info("OTP generated",
		logger.String("phone_number", normalized),
		logger.Duration("ttl", ttl))

	return nil
}

// VerifyOTP checks a submitted code, then logs the user in, creating
// the account on first login. Codes are single use: a match deletes
// the record, a mismatch consumes one of the allowed attempts.
func (u *AuthUC) VerifyOTP(ctx context.Context, phoneNumber, code string) (*models.AuthResponse, error) {
	normalized, err := utils.ValidatePhoneNumber(phoneNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "Invalid Moroccan phone number format. Use +212XXXXXXXXX")
	}
	if !otpCodePattern.MatchString(code) {
		return nil, apperrors.New(apperrors.KindInvalidInput, "OTP must be exactly 6 digits")
	}

	window := time.Duration(u.cfg.RateLimit.OTPVerifyWindowSec) * time.Second
	exceeded, err := u.authRepo.CheckRateLimit(ctx, constants.RateOTPVerify, normalized, u.cfg.RateLimit.OTPVerifyMax, window)
	if err != nil {
		return nil, err
	}
	if exceeded {
		return nil, apperrors.New(apperrors.KindRateLimited,
			fmt.Sprintf("Too many OTP verification attempts. Please try again in %d minutes", int(window.Minutes())))
	}

	otp, err := u.authRepo.GetOTP(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if otp.Attempts >= u.cfg.OTP.MaxAttempts {
		if err := u.authRepo.DeleteOTP(ctx, normalized); err != nil {
			return nil, err
		}
		return nil, apperrors.New(apperrors.KindTooManyAttempts, "Too many failed attempts. Please request a new OTP")
	}

	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		if _, err := u.authRepo.IncrementOTPAttempts(ctx, normalized); err != nil {
			logger.Error("Failed to record OTP attempt",
				logger.String("phone_number", normalized),
				logger.Err(err))
		}
		return nil, apperrors.New(apperrors.KindInvalidOTP, "Invalid OTP")
	}

	// Single use: consume the code before issuing a session
	if err := u.authRepo.DeleteOTP(ctx, normalized); err != nil {
		return nil, err
	}

	user, isNewUser, err := u.loginUser(ctx, normalized)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := jwtpkg.GenerateToken(user.ID, user.Contact(), user.Role, u.cfg.JWT)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}

	logger.Info("User authenticated",
		logger.String("phone_number", normalized),
		logger.String("user_id", user.ID.String()),
		logger.Bool("is_new_user", isNewUser))

	return &models.AuthResponse{
		Token:     token,
		User:      user,
		IsNewUser: isNewUser,
		ExpiresAt: expiresAt,
	}, nil
}

// loginUser finds the account for a verified phone number, creating it
// with the default passenger role on first login
func (u *AuthUC) loginUser(ctx context.Context, phoneNumber string) (*models.User, bool, error) {
	now := time.Now()

	user, err := u.userRepo.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		if !apperrors.IsKind(err, apperrors.KindUserNotFound) {
			return nil, false, err
		}

		user = &models.User{
			PhoneNumber: phoneNumber,
			Role:        models.RolePassenger,
			Status:      models.StatusActive,
			IsVerified:  true,
			LastLoginAt: &now,
		}
		if err := u.userRepo.CreateUser(ctx, user); err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	user.LastLoginAt = &now
	user.IsVerified = true
	if err := u.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, false, err
	}

	return user, false, nil
}

// RefreshToken exchanges a valid session token for a fresh one. The
// old token stays valid until its natural expiry (sliding sessions);
// only logout blacklists it.
func (u *AuthUC) RefreshToken(ctx context.Context, oldToken string) (*models.TokenResponse, error) {
	window := time.Duration(u.cfg.RateLimit.TokenRefreshWindowSec) * time.Second
	exceeded, err := u.authRepo.CheckRateLimit(ctx, constants.RateTokenRefresh, refreshLimitKey(oldToken), u.cfg.RateLimit.TokenRefreshMax, window)
	if err != nil {
		return nil, err
	}
	if exceeded {
		return nil, apperrors.New(apperrors.KindRateLimited,
			fmt.Sprintf("Too many token refresh requests. Please try again in %d minutes", int(window.Minutes())))
	}

	claims, err := jwtpkg.ValidateToken(oldToken, u.cfg.JWT.Secret)
	if err != nil {
		// Signature and expiry failures collapse into one outward kind
		return nil, apperrors.New(apperrors.KindInvalidToken, "Invalid or expired token")
	}

	blacklisted, err := u.authRepo.IsTokenBlacklisted(ctx, oldToken)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, apperrors.New(apperrors.KindInvalidToken, "Invalid or expired token")
	}

	user, err := u.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := jwtpkg.GenerateToken(user.ID, user.Contact(), user.Role, u.cfg.JWT)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}

	return &models.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// refreshLimitKey derives the rate-limit identifier for a refresh
// call: the contact claim when the token decodes, otherwise a digest
// of the raw string. No trust is placed in the unverified claims.
func refreshLimitKey(token string) string {
	if claims, err := jwtpkg.ExtractClaimsUnverified(token); err == nil && claims.Contact != "" {
		return claims.Contact
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// Logout stamps the user's last activity and blacklists the presented
// token for the remainder of its lifetime
func (u *AuthUC) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	if err := u.userRepo.UpdateLastLogin(ctx, userID); err != nil {
		return err
	}

	claims, err := jwtpkg.ExtractClaimsUnverified(token)
	if err != nil || claims.ExpiresAt == nil {
		// Middleware validated the token already; treat a decode
		// failure here as an already-dead token.
		return nil
	}

	return u.authRepo.BlacklistToken(ctx, token, time.Until(claims.ExpiresAt.Time))
}
