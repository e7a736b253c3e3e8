package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Logging logs one line per request and records the HTTP metric families.
// Metrics may be nil; logging still happens.
func Logging(log logging.Logger, metrics *prometheus.EngineMetrics) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		// FullPath keeps the route template so metric cardinality stays
		// bounded; raw URLs with IDs would explode the label space.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("elapsed", elapsed),
			logging.String("request_id", GetRequestID(c)),
		}
		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Debug("request served", fields...)
		}

		if metrics != nil {
			metrics.HTTPRequestsTotal.
				WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request.Method, path).Observe(elapsed.Seconds())
		}
	}
}
