package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AshishRanjanPandey/ccrm/internal/service"
)

// Metrics returns middleware that records request count and latency per
// route template. The scrape and health endpoints themselves are not
// observed.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if path == "/metrics" || path == "/health" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
