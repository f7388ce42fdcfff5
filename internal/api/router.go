package api

import (
	"bus-journey-service/internal/api/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(resolver handlers.JourneyResolver, logger *zap.Logger, corsOrigins []string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(recoveryMiddleware(logger), requestIDMiddleware(), loggingMiddleware(logger))

	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.MethodNotAllowed)
	r.GET("/health", handlers.Health)

	handlers.NewJourneyHandler(resolver, logger).RegisterRoutes(&r.RouterGroup)

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         600,
	})

	return c.Handler(r)
}
