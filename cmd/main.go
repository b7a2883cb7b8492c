package main

import (
	"context"
	"fmt"
	"os"
	"time"

	redisclient "github.com/projectdesert/backend/internal/clients/redis"
	"github.com/projectdesert/backend/internal/clients/universalis"
	"github.com/projectdesert/backend/internal/db"
	"github.com/projectdesert/backend/internal/handlers"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/middleware"
	"github.com/projectdesert/backend/internal/observability"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/server"
	"github.com/projectdesert/backend/internal/services"
	"github.com/projectdesert/backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "projectdesert-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	asceticismRepo := repos.NewAsceticismRepo(thePG, log)
	userAsceticismRepo := repos.NewUserAsceticismRepo(thePG, log)
	asceticismLogRepo := repos.NewAsceticismLogRepo(thePG, log)
	packageRepo := repos.NewAsceticismPackageRepo(thePG, log)
	programRepo := repos.NewProgramRepo(thePG, log)
	groupRepo := repos.NewGroupRepo(thePG, log)
	massReadingRepo := repos.NewMassReadingRepo(thePG, log)
	noteRepo := repos.NewDailyReadingNoteRepo(thePG, log)

	// Redis
	readingsCache, err := redisclient.NewCache(log)
	if err != nil {
		log.Warn("Redis unavailable, readings cache disabled", "error", err)
		readingsCache = nil
	}

	// Upstream clients
	universalisClient := universalis.NewClient(log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	asceticismService := services.NewAsceticismService(thePG, log, asceticismRepo, userAsceticismRepo)
	progressService := services.NewProgressService(thePG, log, userAsceticismRepo, asceticismLogRepo)
	readingsService := services.NewReadingsService(thePG, log, readingsCache, massReadingRepo, noteRepo, universalisClient)
	catalogService := services.NewCatalogService(thePG, log, packageRepo, programRepo, groupRepo)
	adminService := services.NewAdminService(thePG, log, userRepo, userAsceticismRepo, groupRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	asceticismHandler := handlers.NewAsceticismHandler(asceticismService)
	progressHandler := handlers.NewProgressHandler(progressService)
	readingsHandler := handlers.NewReadingsHandler(readingsService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(authService, log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		AsceticismHandler: asceticismHandler,
		ProgressHandler:   progressHandler,
		ReadingsHandler:   readingsHandler,
		CatalogHandler:    catalogHandler,
		AdminHandler:      adminHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
