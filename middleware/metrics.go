package middleware

import (
	"strconv"
	"time"

	"carsite-backend/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records a counter and latency histogram per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestsTotal.WithLabelValues(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
	}
}
