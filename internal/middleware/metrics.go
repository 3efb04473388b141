package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joeylife94/boram-safety/internal/metrics"
)

// Metrics records request counts and latency per route. The route
// template (not the raw URL) is used so path parameters don't explode
// label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
