package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taxiconnect/backend/internal/pkg/middleware"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/internal/utils"
	"github.com/taxiconnect/backend/services/auth"
)

// AuthHandler handles HTTP requests for the OTP login and session flows
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// RequestOTP handles OTP generation requests
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req models.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.PhoneNumber == "" {
		return utils.BadRequestResponse(c, "Phone number is required")
	}

	if err := h.authUC.RequestOTP(c.Request().Context(), req.PhoneNumber); err != nil {
		return respondError(c, err, "RequestOTP")
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent successfully", nil)
}

// VerifyOTP handles OTP verification and login
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.PhoneNumber == "" || req.OTP == "" {
		return utils.BadRequestResponse(c, "Phone number and OTP are required")
	}

	resp, err := h.authUC.VerifyOTP(c.Request().Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		return respondError(c, err, "VerifyOTP")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// RefreshToken handles session token refresh
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Token == "" {
		return utils.BadRequestResponse(c, "Token is required")
	}

	resp, err := h.authUC.RefreshToken(c.Request().Context(), req.Token)
	if err != nil {
		return respondError(c, err, "RefreshToken")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", resp)
}

// Logout blacklists the presented token and stamps last activity
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	token, _ := c.Get(middleware.ContextToken).(string)

	if err := h.authUC.Logout(c.Request().Context(), userID, token); err != nil {
		return respondError(c, err, "Logout")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the session identity carried by the token
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	resp, err := h.authUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Me")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Session identity retrieved", resp)
}
