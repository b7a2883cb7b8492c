package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/projectdesert/backend/internal/handlers"
	"github.com/projectdesert/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	AsceticismHandler *handlers.AsceticismHandler
	ProgressHandler   *handlers.ProgressHandler
	ReadingsHandler   *handlers.ReadingsHandler
	CatalogHandler    *handlers.CatalogHandler
	AdminHandler      *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("projectdesert-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Asceticisms
	protected.GET("/asceticisms/templates", cfg.AsceticismHandler.ListTemplates)
	protected.POST("/asceticisms", cfg.AsceticismHandler.Create)
	protected.GET("/asceticisms/mine", cfg.AsceticismHandler.ListMine)
	protected.POST("/asceticisms/:id/join", cfg.AsceticismHandler.Join)
	protected.PATCH("/asceticisms/:id/status", cfg.AsceticismHandler.UpdateStatus)
	protected.PATCH("/asceticisms/:id/target", cfg.AsceticismHandler.UpdateTarget)
	protected.DELETE("/asceticisms/:id", cfg.AsceticismHandler.Delete)
	// Progress
	protected.POST("/asceticisms/:id/log", cfg.ProgressHandler.RecordDay)
	protected.GET("/asceticisms/progress", cfg.ProgressHandler.GetReport)
	// Daily readings
	protected.GET("/daily-readings/mass/:date", cfg.ReadingsHandler.GetMass)
	protected.POST("/daily-readings/notes", cfg.ReadingsHandler.UpsertNote)
	protected.GET("/daily-readings/notes", cfg.ReadingsHandler.ListNotes)
	protected.GET("/daily-readings/notes/:date", cfg.ReadingsHandler.GetNote)
	protected.DELETE("/daily-readings/notes/:id", cfg.ReadingsHandler.DeleteNote)
	// Catalog
	protected.GET("/packages", cfg.CatalogHandler.ListPackages)
	protected.GET("/programs", cfg.CatalogHandler.ListPrograms)
	protected.POST("/programs/:id/enroll", cfg.CatalogHandler.Enroll)
	protected.GET("/programs/enrollments", cfg.CatalogHandler.ListEnrollments)
	protected.POST("/groups/join", cfg.CatalogHandler.JoinGroup)

	// ===============
	// || Admin     ||
	// ===============
	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/users", cfg.AdminHandler.ListUsers)
	admin.PATCH("/users/:id/role", cfg.AdminHandler.UpdateRole)
	admin.PATCH("/users/:id/ban", cfg.AdminHandler.ToggleBan)

	return router
}
