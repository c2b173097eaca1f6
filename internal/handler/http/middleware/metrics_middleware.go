package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/metrics"
)

// Metrics records per-request counters and latency histograms. The route
// template is used as the path label so parameterized routes do not
// explode the cardinality.
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
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
