package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/taxiconnect/backend/internal/pkg/database"
	"github.com/taxiconnect/backend/internal/pkg/models"
)

// AuthRepo implements the Redis-backed OTP store, rate limiter and
// token blacklist
type AuthRepo struct {
	redisClient *database.RedisClient
}

// NewAuthRepo creates a new auth repository instance
func NewAuthRepo(redisClient *database.RedisClient) *AuthRepo {
	return &AuthRepo{
		redisClient: redisClient,
	}
}

// UserRepo implements the PostgreSQL user directory
type UserRepo struct {
	db  *sqlx.DB
	cfg *models.Config
}

// NewUserRepo creates a new user repository instance
func NewUserRepo(cfg *models.Config, db *sqlx.DB) *UserRepo {
	return &UserRepo{
		db:  db,
		cfg: cfg,
	}
}
