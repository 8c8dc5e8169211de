package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxiconnect/backend/internal/pkg/models"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret",
		Expiration: 60,
		Issuer:     "taxiconnect-test",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, expiresAt, err := GenerateToken(userID, "+212612345678", "passenger", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := ValidateToken(token, cfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "+212612345678", claims.Contact)
	assert.Equal(t, "passenger", claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, _, err := GenerateToken(uuid.New(), "+212612345678", "driver", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := ValidateToken("not-a-token", "test-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()

	// Sign a token that expired a minute ago
	claims := &Claims{
		UserID:  uuid.New(),
		Contact: "+212612345678",
		Role:    "passenger",
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-1 * time.Minute)),
			Issuer:    cfg.Issuer,
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, cfg.Secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestExtractClaimsUnverified(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, _, err := GenerateToken(userID, "user@example.com", "admin", cfg)
	require.NoError(t, err)

	claims, err := ExtractClaimsUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Contact)

	_, err = ExtractClaimsUnverified("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
