package middleware

import (
	"time"

	"media-gateway/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestLogger tags every request with an id and logs the outcome.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx.Set("request_id", requestID)
		ctx.Writer.Header().Set("X-Request-ID", requestID)

		ctx.Next()

		logger.GetLogger().WithFields(log.Fields{
			"requestId": requestID,
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
			"status":    ctx.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
		}).Info("Request completed")
	}
}
