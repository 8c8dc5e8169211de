package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/constants"
)

// Tokens are blacklisted under a digest of the raw string; storing the
// token itself would leave valid credentials readable in Redis.

// BlacklistToken rejects the token for the given TTL, which callers
// set to the token's remaining lifetime.
func (r *AuthRepo) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past natural expiry, nothing to blacklist
		return nil
	}

	key := fmt.Sprintf(constants.KeyBlacklist, hashToken(token))
	if err := r.redisClient.Set(ctx, key, "1", ttl); err != nil {
		return apperrors.Internal("failed to blacklist token", err)
	}

	return nil
}

// IsTokenBlacklisted reports whether the token was logged out before
// its natural expiry
func (r *AuthRepo) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf(constants.KeyBlacklist, hashToken(token))

	exists, err := r.redisClient.Exists(ctx, key)
	if err != nil {
		return false, apperrors.Internal("failed to check token blacklist", err)
	}

	return exists, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
