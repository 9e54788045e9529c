package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// RouterConfig holds the handlers the router wires up. Nil handlers
// leave their routes unregistered.
type RouterConfig struct {
	Logger *slog.Logger

	LogHandler        *LogHandler
	ProfileHandler    *ProfileHandler
	SuggestionHandler *SuggestionHandler
	HealthHandler     *HealthHandler
}

// NewRouter builds the gin engine with all v1 routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	if cfg.HealthHandler != nil {
		r.GET("/v1/health", cfg.HealthHandler.Check)
	}

	v1 := r.Group("/v1/users/:user_id")
	{
		if cfg.LogHandler != nil {
			v1.POST("/logs", cfg.LogHandler.Create)
			v1.GET("/logs", cfg.LogHandler.List)
		}

		if cfg.ProfileHandler != nil {
			v1.PUT("/profile", cfg.ProfileHandler.Upsert)
			v1.GET("/profile", cfg.ProfileHandler.Get)
		}

		if cfg.SuggestionHandler != nil {
			v1.POST("/suggestions", cfg.SuggestionHandler.Generate)
			v1.GET("/suggestions", cfg.SuggestionHandler.List)
		}
	}

	return r
}
