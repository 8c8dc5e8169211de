package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taxiconnect/backend/internal/pkg/jwt"
	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/pkg/models"
	"github.com/taxiconnect/backend/internal/utils"
)

// TokenBlacklist is consulted before trusting an otherwise valid
// token. A blacklisted token was logged out before its natural expiry.
type TokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextContact   = "contact"
	ContextUserRole  = "user_role"
	ContextToken     = "token"
	ContextExpiresAt = "token_expires_at"
)

// JWTAuthMiddleware authenticates requests from the Authorization
// header. The raw token is kept in context so the logout flow can
// blacklist it for its remaining lifetime.
func JWTAuthMiddleware(cfg models.JWTConfig, blacklist TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}
			tokenString := parts[1]

			claims, err := jwt.ValidateToken(tokenString, cfg.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or expired token")
			}

			if blacklist != nil {
				blacklisted, err := blacklist.IsTokenBlacklisted(c.Request().Context(), tokenString)
				if err != nil {
					logger.Error("Failed to check token blacklist", logger.Err(err))
					return utils.InternalServerErrorResponse(c, "")
				}
				if blacklisted {
					return utils.UnauthorizedResponse(c, "Invalid or expired token")
				}
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextContact, claims.Contact)
			c.Set(ContextUserRole, claims.Role)
			c.Set(ContextToken, tokenString)
			c.Set(ContextExpiresAt, claims.ExpiresAt.Time)

			return next(c)
		}
	}
}

// RequireRoles rejects authenticated requests whose role is not listed
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextUserRole).(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "You do not have permission to perform this action")
		}
	}
}
