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

// ProfileHandler handles HTTP requests for profile management
type ProfileHandler struct {
	authUC auth.AuthUC
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authUC auth.AuthUC) *ProfileHandler {
	return &ProfileHandler{
		authUC: authUC,
	}
}

func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextUserID).(uuid.UUID)
	return userID, ok
}

// CompleteProfile handles first-login profile completion
func (h *ProfileHandler) CompleteProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CompleteProfileRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	user, err := h.authUC.CompleteProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, err, "CompleteProfile")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Profile completed successfully", user)
}

// RegisterDriver handles driver profile registration
func (h *ProfileHandler) RegisterDriver(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.RegisterDriverRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	driver, err := h.authUC.RegisterDriver(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, err, "RegisterDriver")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Driver registered successfully", driver)
}

// GetProfile returns the authenticated user's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	resp, err := h.authUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "GetProfile")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", resp)
}

// UpdateProfile applies a partial update to the authenticated user's profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	user, err := h.authUC.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, err, "UpdateProfile")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", user)
}
