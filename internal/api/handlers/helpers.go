package handlers

import (
	"bus-journey-service/internal/platform/obs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

func requestLogger(c *gin.Context, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("req_id", obs.RequestID(c.Request.Context())))
}

func MethodNotAllowed(c *gin.Context) {
	writeError(c, http.StatusMethodNotAllowed, "method not allowed")
}

func NotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, "not found")
}
