// README: Request logging middleware.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/logging"
)

func Logging(log *slog.Logger) gin.HandlerFunc {
	log = logging.OrDefault(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"action", "http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"uid", CallerUID(c),
		)
	}
}
