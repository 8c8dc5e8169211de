package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/taxiconnect/backend/internal/pkg/models"
)

// Verification failure kinds. Callers that need a single outward-facing
// error (the refresh flow) collapse both; the HTTP boundary keeps them
// apart for error messages.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the session identity inside a signed token
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Contact string    `json:"contact"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the given user identity.
// Returns the token string and its unix expiry.
func GenerateToken(userID uuid.UUID, contact, role string, cfg models.JWTConfig) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(cfg.Expiration) * time.Minute)

	claims := &Claims{
		UserID:  userID,
		Contact: contact,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}

// ValidateToken verifies signature and expiry and returns the claims.
// Fails with ErrTokenExpired past expiry and ErrTokenInvalid for any
// other defect (bad signature, malformed, wrong algorithm).
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExtractClaimsUnverified decodes the claims without checking the
// signature. Only safe for non-security decisions such as picking a
// rate-limit key; validity always comes from ValidateToken.
func ExtractClaimsUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
