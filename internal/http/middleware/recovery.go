// README: Recovery middleware.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/logging"
)

func Recovery(log *slog.Logger) gin.HandlerFunc {
	log = logging.OrDefault(log)
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error(log, "panic_recovered", "handler panicked", fmt.Errorf("%v", r), "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
