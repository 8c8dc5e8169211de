package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taxiconnect/backend/internal/pkg/config"
	"github.com/taxiconnect/backend/internal/pkg/database"
	"github.com/taxiconnect/backend/internal/pkg/health"
	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/pkg/middleware"
	"github.com/taxiconnect/backend/internal/pkg/server"
	"github.com/taxiconnect/backend/services/auth/gateway"
	"github.com/taxiconnect/backend/services/auth/handler"
	httpHandler "github.com/taxiconnect/backend/services/auth/handler/http"
	"github.com/taxiconnect/backend/services/auth/repository"
	"github.com/taxiconnect/backend/services/auth/usecase"
)

func main() {
	appName := "auth-service"

	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}
	configs := config.InitConfig(envPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize SMS gateway (NSQ producer)
	smsGW, err := gateway.NewSMSGateway(configs.NSQ, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	defer smsGW.Stop()

	// Initialize repositories
	authRepo := repository.NewAuthRepo(redisClient)
	userRepo := repository.NewUserRepo(configs, postgresClient.GetDB())

	// Initialize usecase
	authUC := usecase.NewAuthUC(authRepo, userRepo, smsGW, configs)

	// Initialize HTTP handlers
	authHandler := httpHandler.NewAuthHandler(authUC)
	profileHandler := httpHandler.NewProfileHandler(authUC)
	h := handler.NewHandler(authHandler, profileHandler, authRepo, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.EchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName)
	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}
}
