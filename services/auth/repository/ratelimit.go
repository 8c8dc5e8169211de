package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/constants"
)

// CheckRateLimit increments the window counter for (operation,
// identifier) and reports whether the limit is exceeded. The count
// happens before the compare, so the rejected request still consumed a
// slot. A fresh window gets its expiry on the first increment and the
// counter resets by key expiry, never explicitly.
func (r *AuthRepo) CheckRateLimit(ctx context.Context, operation, identifier string, maxRequests int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(constants.KeyRateLimit, operation, identifier)

	count, err := r.redisClient.Incr(ctx, key)
	if err != nil {
		return false, apperrors.Internal("failed to increment rate limit counter", err)
	}

	if count == 1 {
		if err := r.redisClient.Expire(ctx, key, window); err != nil {
			return false, apperrors.Internal("failed to set rate limit window", err)
		}
	}

	return count > int64(maxRequests), nil
}
