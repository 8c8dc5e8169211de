package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/constants"
	"github.com/taxiconnect/backend/internal/pkg/models"
)

// The attempt counter lives in its own key so failed verifications can
// be recorded with an atomic INCR instead of a read-modify-write of
// the JSON record. Both keys share the record's TTL.

// CreateOTP stores the OTP record for its phone number, replacing any
// previous record and resetting the attempt counter.
func (r *AuthRepo) CreateOTP(ctx context.Context, otp *models.OTP, ttl time.Duration) error {
	data, err := json.Marshal(otp)
	if err != nil {
		return apperrors.Internal("failed to marshal OTP record", err)
	}

	key := fmt.Sprintf(constants.KeyOTP, otp.PhoneNumber)
	attemptsKey := fmt.Sprintf(constants.KeyOTPAttempts, otp.PhoneNumber)

	pipe := r.redisClient.Client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.Del(ctx, attemptsKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Internal("failed to store OTP in Redis", err)
	}

	return nil
}

// GetOTP returns the live record for a phone number. Absence covers
// both "never requested" and "expired": the TTL removed the key either
// way and the two are indistinguishable here.
func (r *AuthRepo) GetOTP(ctx context.Context, phoneNumber string) (*models.OTP, error) {
	key := fmt.Sprintf(constants.KeyOTP, phoneNumber)

	data, err := r.redisClient.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.New(apperrors.KindOTPNotFound, "OTP not found or expired. Please request a new one")
		}
		return nil, apperrors.Internal("failed to read OTP from Redis", err)
	}

	var otp models.OTP
	if err := json.Unmarshal([]byte(data), &otp); err != nil {
		return nil, apperrors.Internal("failed to decode OTP record", err)
	}

	attempts, err := r.getAttempts(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	otp.Attempts = attempts

	return &otp, nil
}

// IncrementOTPAttempts records a failed verification. The attempt key
// inherits the record's remaining TTL on first increment, so the
// expiry clock never resets.
func (r *AuthRepo) IncrementOTPAttempts(ctx context.Context, phoneNumber string) (int, error) {
	key := fmt.Sprintf(constants.KeyOTP, phoneNumber)
	attemptsKey := fmt.Sprintf(constants.KeyOTPAttempts, phoneNumber)

	exists, err := r.redisClient.Exists(ctx, key)
	if err != nil {
		return 0, apperrors.Internal("failed to check OTP existence", err)
	}
	if !exists {
		return 0, nil
	}

	count, err := r.redisClient.Incr(ctx, attemptsKey)
	if err != nil {
		return 0, apperrors.Internal("failed to increment OTP attempts", err)
	}

	if count == 1 {
		ttl, err := r.redisClient.TTL(ctx, key)
		if err != nil {
			return 0, apperrors.Internal("failed to read OTP TTL", err)
		}
		if ttl > 0 {
			if err := r.redisClient.Expire(ctx, attemptsKey, ttl); err != nil {
				return 0, apperrors.Internal("failed to expire OTP attempts key", err)
			}
		}
	}

	return int(count), nil
}

// DeleteOTP removes the record and its attempt counter. Idempotent.
func (r *AuthRepo) DeleteOTP(ctx context.Context, phoneNumber string) error {
	key := fmt.Sprintf(constants.KeyOTP, phoneNumber)
	attemptsKey := fmt.Sprintf(constants.KeyOTPAttempts, phoneNumber)

	if err := r.redisClient.Delete(ctx, key, attemptsKey); err != nil {
		return apperrors.Internal("failed to delete OTP from Redis", err)
	}

	return nil
}

func (r *AuthRepo) getAttempts(ctx context.Context, phoneNumber string) (int, error) {
	attemptsKey := fmt.Sprintf(constants.KeyOTPAttempts, phoneNumber)

	val, err := r.redisClient.Get(ctx, attemptsKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, apperrors.Internal("failed to read OTP attempts", err)
	}

	attempts, err := strconv.Atoi(val)
	if err != nil {
		return 0, apperrors.Internal("corrupt OTP attempts counter", err)
	}

	return attempts, nil
}
