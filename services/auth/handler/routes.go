package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taxiconnect/backend/internal/pkg/middleware"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler    *http.AuthHandler
	profileHandler *http.ProfileHandler
	blacklist      middleware.TokenBlacklist
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	profileHandler *http.ProfileHandler,
	blacklist middleware.TokenBlacklist,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		blacklist:      blacklist,
		cfg:            cfg,
	}
}

// RegisterRoutes sets up all HTTP routes for the auth service
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	authGroup := e.Group("/auth")

	// public login and session endpoints
	authGroup.POST("/otp/request", h.authHandler.RequestOTP)
	authGroup.POST("/otp/verify", h.authHandler.VerifyOTP)
	authGroup.POST("/token/refresh", h.authHandler.RefreshToken)

	// endpoints requiring an authenticated session
	protected := authGroup.Group("", middleware.JWTAuthMiddleware(h.cfg.JWT, h.blacklist))
	protected.POST("/logout", h.authHandler.Logout)
	protected.GET("/me", h.authHandler.Me)
	protected.POST("/profile/complete", h.profileHandler.CompleteProfile)
	protected.GET("/profile", h.profileHandler.GetProfile)
	protected.PUT("/profile", h.profileHandler.UpdateProfile)
	protected.POST("/driver/register", h.profileHandler.RegisterDriver)
}
