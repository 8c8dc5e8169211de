package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/middleware"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/services/auth/mocks"
)

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestOTPHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	mockUC.EXPECT().RequestOTP(gomock.Any(), "+212612345678").Return(nil)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/request", `{"phone_number":"+212612345678"}`)
	require.NoError(t, handler.RequestOTP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OTP sent successfully", body["message"])
}

func TestRequestOTPHandler_MissingPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAuthHandler(mocks.NewMockAuthUC(ctrl))

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/request", `{}`)
	require.NoError(t, handler.RequestOTP(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestRequestOTPHandler_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	mockUC.EXPECT().RequestOTP(gomock.Any(), "+212612345678").
		Return(apperrors.New(apperrors.KindRateLimited, "Too many OTP requests. Please try again in 15 minutes"))

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/request", `{"phone_number":"+212612345678"}`)
	require.NoError(t, handler.RequestOTP(c))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequestOTPHandler_InternalErrorIsGeneric(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	mockUC.EXPECT().RequestOTP(gomock.Any(), gomock.Any()).
		Return(apperrors.Internal("redis write failed", assert.AnError))

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/request", `{"phone_number":"+212612345678"}`)
	require.NoError(t, handler.RequestOTP(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "redis")
}

func TestVerifyOTPHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	userID := uuid.New()
	mockUC.EXPECT().VerifyOTP(gomock.Any(), "+212612345678", "123456").
		Return(&models.AuthResponse{
			Token:     "signed-token",
			User:      &models.User{ID: userID, PhoneNumber: "+212612345678", Role: models.RolePassenger},
			IsNewUser: true,
			ExpiresAt: 1767225600,
		}, nil)

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify", `{"phone_number":"+212612345678","otp":"123456"}`)
	require.NoError(t, handler.VerifyOTP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "signed-token", data["token"])
	assert.Equal(t, true, data["is_new_user"])
}

func TestVerifyOTPHandler_WrongCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	mockUC.EXPECT().VerifyOTP(gomock.Any(), "+212612345678", "000000").
		Return(nil, apperrors.New(apperrors.KindInvalidOTP, "Invalid OTP"))

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify", `{"phone_number":"+212612345678","otp":"000000"}`)
	require.NoError(t, handler.VerifyOTP(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid OTP", body["error"])
}

func TestVerifyOTPHandler_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAuthHandler(mocks.NewMockAuthUC(ctrl))

	c, rec := newJSONContext(http.MethodPost, "/auth/otp/verify", `{"phone_number":"+212612345678"}`)
	require.NoError(t, handler.VerifyOTP(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshTokenHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	mockUC.EXPECT().RefreshToken(gomock.Any(), "old-token").
		Return(&models.TokenResponse{Token: "new-token", ExpiresAt: 1767225600}, nil)

	c, rec := newJSONContext(http.MethodPost, "/auth/token/refresh", `{"token":"old-token"}`)
	require.NoError(t, handler.RefreshToken(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "new-token", data["token"])
}

func TestRefreshTokenHandler_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	mockUC.EXPECT().RefreshToken(gomock.Any(), "bad-token").
		Return(nil, apperrors.New(apperrors.KindInvalidToken, "Invalid or expired token"))

	c, rec := newJSONContext(http.MethodPost, "/auth/token/refresh", `{"token":"bad-token"}`)
	require.NoError(t, handler.RefreshToken(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	userID := uuid.New()
	mockUC.EXPECT().Logout(gomock.Any(), userID, "session-token").Return(nil)

	c, rec := newJSONContext(http.MethodPost, "/auth/logout", "")
	c.Set(middleware.ContextUserID, userID)
	c.Set(middleware.ContextToken, "session-token")
	require.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutHandler_NoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAuthHandler(mocks.NewMockAuthUC(ctrl))

	c, rec := newJSONContext(http.MethodPost, "/auth/logout", "")
	require.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
