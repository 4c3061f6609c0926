package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-agent/internal/handlers"
	"github.com/justsurfingit/job-agent/internal/middleware"
)

// NewRouter builds the gin engine with middleware and the /api/v1 routes.
func NewRouter(allowOrigins []string, sessions *handlers.SessionHandler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		cors.New(corsConfig(allowOrigins)),
	)

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		sessions.RegisterRoutes(api)
	}
	return r
}

func corsConfig(allowOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-Id"}
	config.ExposeHeaders = []string{"X-Request-Id"}
	return config
}
