package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	jwtpkg "github.com/taxiconnect/backend/internal/pkg/jwt"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/services/auth/mocks"
)

func testConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret",
			Expiration: 60,
			Issuer:     "taxiconnect-test",
		},
		OTP: models.OTPConfig{
			TTLSeconds:  300,
			MaxAttempts: 3,
		},
		RateLimit: models.RateLimitConfig{
			OTPRequestMax:         3,
			OTPRequestWindowSec:   900,
			OTPVerifyMax:          5,
			OTPVerifyWindowSec:    600,
			TokenRefreshMax:       10,
			TokenRefreshWindowSec: 900,
		},
	}
}

func newTestUC(t *testing.T) (*AuthUC, *mocks.MockAuthRepo, *mocks.MockUserRepo, *mocks.MockSMSGW) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	authRepo := mocks.NewMockAuthRepo(ctrl)
	userRepo := mocks.NewMockUserRepo(ctrl)
	smsGW := mocks.NewMockSMSGW(ctrl)
	uc := NewAuthUC(authRepo, userRepo, smsGW, testConfig())

	return uc, authRepo, userRepo, smsGW
}

func hashCode(t *testing.T, code string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRequestOTP_Success(t *testing.T) {
	uc, authRepo, _, smsGW := newTestUC(t)

	var storedHash string
	var sentBody string

	authRepo.EXPECT().
		CheckRateLimit(gomock.Any(), "otp-request", "+212612345678", 3, 15*time.Minute).
		Return(false, nil)
	authRepo.EXPECT().
		CreateOTP(gomock.Any(), gomock.Any(), 5*time.Minute).
		DoAndReturn(func(_ context.Context, otp *models.OTP, _ time.Duration) error {
			assert.Equal(t, "+212612345678", otp.PhoneNumber)
			storedHash = otp.CodeHash
			return nil
		})
	smsGW.EXPECT().
		SendSMS(gomock.Any(), "+212612345678", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body string) error {
			sentBody = body
			return nil
		})

	err := uc.RequestOTP(context.Background(), "+212612345678")
	require.NoError(t, err)

	// the code in the SMS is the one whose hash was stored
	require.Regexp(t, `: \d{6}$`, sentBody)
	code := sentBody[len(sentBody)-6:]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(code)))
}

func TestRequestOTP_NormalizesLocalFormat(t *testing.T) {
	uc, authRepo, _, smsGW := newTestUC(t)

	authRepo.EXPECT().
		CheckRateLimit(gomock.Any(), "otp-request", "+212612345678", 3, 15*time.Minute).
		Return(false, nil)
	authRepo.EXPECT().CreateOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	smsGW.EXPECT().SendSMS(gomock.Any(), "+212612345678", gomock.Any()).Return(nil)

	err := uc.RequestOTP(context.Background(), "0612345678")
	assert.NoError(t, err)
}

func TestRequestOTP_InvalidPhone(t *testing.T) {
	uc, _, _, _ := newTestUC(t)

	err := uc.RequestOTP(context.Background(), "+33612345678")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestRequestOTP_RateLimited(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().
		CheckRateLimit(gomock.Any(), "otp-request", "+212612345678", 3, 15*time.Minute).
		Return(true, nil)

	err := uc.RequestOTP(context.Background(), "+212612345678")
	assert.True(t, apperrors.IsKind(err, apperrors.KindRateLimited))
}

func TestRequestOTP_SMSFailureStillSucceeds(t *testing.T) {
	uc, authRepo, _, smsGW := newTestUC(t)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	authRepo.EXPECT().CreateOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	smsGW.EXPECT().SendSMS(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("nsqd unreachable"))

	err := uc.RequestOTP(context.Background(), "+212612345678")
	assert.NoError(t, err)
}

func TestVerifyOTP_NewUser(t *testing.T) {
	uc, authRepo, userRepo, _ := newTestUC(t)

	authRepo.EXPECT().
		CheckRateLimit(gomock.Any(), "otp-verify", "+212612345678", 5, 10*time.Minute).
		Return(false, nil)
	authRepo.EXPECT().
		GetOTP(gomock.Any(), "+212612345678").
		Return(&models.OTP{
			PhoneNumber: "+212612345678",
			CodeHash:    hashCode(t, "123456"),
			Attempts:    0,
		}, nil)
	authRepo.EXPECT().DeleteOTP(gomock.Any(), "+212612345678").Return(nil)
	userRepo.EXPECT().
		GetUserByPhone(gomock.Any(), "+212612345678").
		Return(nil, apperrors.New(apperrors.KindUserNotFound, "User not found"))
	userRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) error {
			assert.Equal(t, models.RolePassenger, user.Role)
			assert.Equal(t, models.StatusActive, user.Status)
			assert.True(t, user.IsVerified)
			assert.NotNil(t, user.LastLoginAt)
			return nil
		})

	resp, err := uc.VerifyOTP(context.Background(), "+212612345678", "123456")
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.NotEmpty(t, resp.Token)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := jwtpkg.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "+212612345678", claims.Contact)
	assert.Equal(t, models.RolePassenger, claims.Role)
}

func TestVerifyOTP_ExistingUser(t *testing.T) {
	uc, authRepo, userRepo, _ := newTestUC(t)

	userID := uuid.New()
	existing := &models.User{
		ID:          userID,
		PhoneNumber: "+212612345678",
		Email:       "aicha@example.com",
		Role:        models.RoleDriver,
		Status:      models.StatusActive,
	}

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	authRepo.EXPECT().GetOTP(gomock.Any(), "+212612345678").Return(&models.OTP{
		PhoneNumber: "+212612345678",
		CodeHash:    hashCode(t, "654321"),
	}, nil)
	authRepo.EXPECT().DeleteOTP(gomock.Any(), "+212612345678").Return(nil)
	userRepo.EXPECT().GetUserByPhone(gomock.Any(), "+212612345678").Return(existing, nil)
	userRepo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) error {
			assert.NotNil(t, user.LastLoginAt)
			assert.True(t, user.IsVerified)
			return nil
		})

	resp, err := uc.VerifyOTP(context.Background(), "+212612345678", "654321")
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.Equal(t, userID, resp.User.ID)

	// email takes precedence over phone in the token contact claim
	claims, err := jwtpkg.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "aicha@example.com", claims.Contact)
	assert.Equal(t, models.RoleDriver, claims.Role)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	authRepo.EXPECT().GetOTP(gomock.Any(), "+212612345678").Return(&models.OTP{
		PhoneNumber: "+212612345678",
		CodeHash:    hashCode(t, "123456"),
		Attempts:    1,
	}, nil)
	authRepo.EXPECT().IncrementOTPAttempts(gomock.Any(), "+212612345678").Return(2, nil)

	_, err := uc.VerifyOTP(context.Background(), "+212612345678", "000000")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOTP))
}

func TestVerifyOTP_TooManyAttempts(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	authRepo.EXPECT().GetOTP(gomock.Any(), "+212612345678").Return(&models.OTP{
		PhoneNumber: "+212612345678",
		CodeHash:    hashCode(t, "123456"),
		Attempts:    3,
	}, nil)
	authRepo.EXPECT().DeleteOTP(gomock.Any(), "+212612345678").Return(nil)

	// the attempt cap wins even when the submitted code is correct
	_, err := uc.VerifyOTP(context.Background(), "+212612345678", "123456")
	assert.True(t, apperrors.IsKind(err, apperrors.KindTooManyAttempts))
}

func TestVerifyOTP_NotFound(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	authRepo.EXPECT().GetOTP(gomock.Any(), "+212612345678").
		Return(nil, apperrors.New(apperrors.KindOTPNotFound, "OTP not found or expired. Please request a new one"))

	_, err := uc.VerifyOTP(context.Background(), "+212612345678", "123456")
	assert.True(t, apperrors.IsKind(err, apperrors.KindOTPNotFound))
}

func TestVerifyOTP_RateLimited(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().
		CheckRateLimit(gomock.Any(), "otp-verify", "+212612345678", 5, 10*time.Minute).
		Return(true, nil)

	_, err := uc.VerifyOTP(context.Background(), "+212612345678", "123456")
	assert.True(t, apperrors.IsKind(err, apperrors.KindRateLimited))
}

func TestVerifyOTP_MalformedCode(t *testing.T) {
	uc, _, _, _ := newTestUC(t)

	for _, code := range []string{"12345", "1234567", "12345a", ""} {
		_, err := uc.VerifyOTP(context.Background(), "+212612345678", code)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput), "code %q", code)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	uc, authRepo, userRepo, _ := newTestUC(t)

	userID := uuid.New()
	user := &models.User{ID: userID, PhoneNumber: "+212612345678", Role: models.RolePassenger}
	oldToken, _, err := jwtpkg.GenerateToken(userID, "+212612345678", models.RolePassenger, testConfig().JWT)
	require.NoError(t, err)

	authRepo.EXPECT().
		CheckRateLimit(gomock.Any(), "token-refresh", "+212612345678", 10, 15*time.Minute).
		Return(false, nil)
	authRepo.EXPECT().IsTokenBlacklisted(gomock.Any(), oldToken).Return(false, nil)
	userRepo.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)

	resp, err := uc.RefreshToken(context.Background(), oldToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := jwtpkg.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRefreshToken_InvalidToken(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), "token-refresh", gomock.Any(), 10, 15*time.Minute).Return(false, nil)

	_, err := uc.RefreshToken(context.Background(), "not-a-token")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidToken))
	assert.Equal(t, "Invalid or expired token", apperrors.MessageOf(err))
}

func TestRefreshToken_ExpiredToken(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	cfg := testConfig().JWT
	cfg.Expiration = -1
	expired, _, err := jwtpkg.GenerateToken(uuid.New(), "+212612345678", models.RolePassenger, cfg)
	require.NoError(t, err)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), "token-refresh", "+212612345678", 10, 15*time.Minute).Return(false, nil)

	// expired and invalid collapse into the same outward error
	_, err = uc.RefreshToken(context.Background(), expired)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidToken))
	assert.Equal(t, "Invalid or expired token", apperrors.MessageOf(err))
}

func TestRefreshToken_Blacklisted(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	token, _, err := jwtpkg.GenerateToken(uuid.New(), "+212612345678", models.RolePassenger, testConfig().JWT)
	require.NoError(t, err)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	authRepo.EXPECT().IsTokenBlacklisted(gomock.Any(), token).Return(true, nil)

	_, err = uc.RefreshToken(context.Background(), token)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidToken))
}

func TestRefreshToken_RateLimited(t *testing.T) {
	uc, authRepo, _, _ := newTestUC(t)

	authRepo.EXPECT().CheckRateLimit(gomock.Any(), "token-refresh", gomock.Any(), 10, 15*time.Minute).Return(true, nil)

	_, err := uc.RefreshToken(context.Background(), "whatever")
	assert.True(t, apperrors.IsKind(err, apperrors.KindRateLimited))
}

func TestLogout(t *testing.T) {
	uc, authRepo, userRepo, _ := newTestUC(t)

	userID := uuid.New()
	token, _, err := jwtpkg.GenerateToken(userID, "+212612345678", models.RolePassenger, testConfig().JWT)
	require.NoError(t, err)

	userRepo.EXPECT().UpdateLastLogin(gomock.Any(), userID).Return(nil)
	authRepo.EXPECT().
		BlacklistToken(gomock.Any(), token, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
			assert.Greater(t, ttl, 59*time.Minute)
			assert.LessOrEqual(t, ttl, 60*time.Minute)
			return nil
		})

	assert.NoError(t, uc.Logout(context.Background(), userID, token))
}

func TestLogout_UserNotFound(t *testing.T) {
	uc, _, userRepo, _ := newTestUC(t)

	userID := uuid.New()
	userRepo.EXPECT().UpdateLastLogin(gomock.Any(), userID).
		Return(apperrors.New(apperrors.KindUserNotFound, "User not found"))

	err := uc.Logout(context.Background(), userID, "token")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUserNotFound))
}
