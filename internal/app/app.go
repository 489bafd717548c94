package app

import (
	"fmt"
	"log/slog"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// App owns the in-memory stores and the router built on top of them.
// Stores live exactly as long as the App.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	users    *repo.MemUserRepo
	tasks    *repo.MemTaskRepo
	sessions *auth.Store
	router   *gin.Engine
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	identities, err := cfg.Identity.Identities()
	if err != nil {
		return nil, fmt.Errorf("identities: %w", err)
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		users:    repo.NewMemUserRepo(identities),
		tasks:    repo.NewMemTaskRepo(),
		sessions: auth.NewStore(),
	}
	a.router = a.newRouter()
	logger.Info("stores ready", "users", len(identities))
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close logs the final session count. All state goes with the process.
func (a *App) Close() error {
	a.logger.Info("closing app", "live_sessions", a.sessions.Len())
	return nil
}

func (a *App) newRouter() *gin.Engine {
	if a.cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(requestID(), requestLogger(a.logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  a.cfg.CORS.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	if a.cfg.RateLimit.Enabled {
		r.Use(newRateLimiter(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst).Middleware())
	}

	Setup(r, a.cfg, a.logger, a.users, a.tasks, a.sessions)
	return r
}
