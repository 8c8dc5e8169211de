package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/taxiconnect/backend/internal/pkg/models"
)

// InitConfig loads configuration from the environment. In local
// development the given .env file is loaded into the process
// environment first; deployed instances rely on real env vars.
func InitConfig(envPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()

	if v.GetString("APP_ENV") == "" || v.GetString("APP_ENV") == "local" {
		if err := godotenv.Load(envPath); err != nil {
			log.Println("no local env file loaded:", err)
		}
	}

	setDefaults(v)
	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "taxiconnect-auth")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "development")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 9990)
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_DATABASE", "taxiconnect")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NSQ_ADDRESS", "localhost:4150")
	v.SetDefault("NSQ_SMS_TOPIC", "sms.dispatch")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION", 10080) // 7 days, in minutes
	v.SetDefault("JWT_ISSUER", "taxiconnect")

	v.SetDefault("OTP_TTL_SECONDS", 300)
	v.SetDefault("OTP_MAX_ATTEMPTS", 3)

	v.SetDefault("RATE_OTP_REQUEST_MAX", 3)
	v.SetDefault("RATE_OTP_REQUEST_WINDOW_SECONDS", 900)
	v.SetDefault("RATE_OTP_VERIFY_MAX", 5)
	v.SetDefault("RATE_OTP_VERIFY_WINDOW_SECONDS", 600)
	v.SetDefault("RATE_TOKEN_REFRESH_MAX", 10)
	v.SetDefault("RATE_TOKEN_REFRESH_WINDOW_SECONDS", 900)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "")
}

func loadConfig(v *viper.Viper) *models.Config {
	cfg := &models.Config{}

	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENV")
	cfg.App.Debug = v.GetBool("APP_DEBUG")
	cfg.App.Version = v.GetString("APP_VERSION")

	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	cfg.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	cfg.Database.Host = v.GetString("DB_HOST")
	cfg.Database.Port = v.GetInt("DB_PORT")
	cfg.Database.Username = v.GetString("DB_USERNAME")
	cfg.Database.Password = v.GetString("DB_PASSWORD")
	cfg.Database.Database = v.GetString("DB_DATABASE")
	cfg.Database.SSLMode = v.GetString("DB_SSL_MODE")
	cfg.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	cfg.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	cfg.NSQ.Address = v.GetString("NSQ_ADDRESS")
	cfg.NSQ.SMSTopic = v.GetString("NSQ_SMS_TOPIC")

	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	cfg.JWT.Issuer = v.GetString("JWT_ISSUER")

	cfg.OTP.TTLSeconds = v.GetInt("OTP_TTL_SECONDS")
	cfg.OTP.MaxAttempts = v.GetInt("OTP_MAX_ATTEMPTS")

	cfg.RateLimit.OTPRequestMax = v.GetInt("RATE_OTP_REQUEST_MAX")
	cfg.RateLimit.OTPRequestWindowSec = v.GetInt("RATE_OTP_REQUEST_WINDOW_SECONDS")
	cfg.RateLimit.OTPVerifyMax = v.GetInt("RATE_OTP_VERIFY_MAX")
	cfg.RateLimit.OTPVerifyWindowSec = v.GetInt("RATE_OTP_VERIFY_WINDOW_SECONDS")
	cfg.RateLimit.TokenRefreshMax = v.GetInt("RATE_TOKEN_REFRESH_MAX")
	cfg.RateLimit.TokenRefreshWindowSec = v.GetInt("RATE_TOKEN_REFRESH_WINDOW_SECONDS")

	cfg.Logger.Level = v.GetString("LOG_LEVEL")
	cfg.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return cfg
}
