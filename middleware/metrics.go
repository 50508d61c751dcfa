package middleware

import (
	"strconv"
	"time"

	"rosa/utils"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and durations by route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		utils.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
