package app

import (
	"log/slog"
	"net/http"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/handlers"
	"taskmanager/internal/repo"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, logger *slog.Logger, users repo.UserRepo, tasks repo.TaskRepo, sessions *auth.Store) {
	r.GET("/", rootHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")
	api.GET("/health", healthHandler())

	userSvc := service.NewUserService(users)
	authHandler := handlers.NewAuthHandler(sessions, userSvc, logger)
	api.POST("/login", authHandler.Login)

	protected := api.Group("", auth.RequireBearer(sessions))
	protected.POST("/logout", authHandler.Logout)

	taskSvc := service.NewTaskService(tasks)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger)
	registerTaskRoutes(protected, taskHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "TaskManager API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/api/health",
			"api":     "/api",
		})
	}
}

// healthHandler godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API TaskManager rodando"})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/tasks", h.List)
	api.POST("/tasks", h.Create)
	api.PUT("/tasks/:id", h.Update)
	api.POST("/tasks/:id/complete", h.Complete)
	api.DELETE("/tasks/:id", h.Delete)
}
