package middlewares

import (
	"strconv"
	"time"

	. "todoweb/pkg/config"
	. "todoweb/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func MetricsMiddleware(metrics *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// SetupGinMiddlewareWithConfig installs the cross-cutting middleware in
// order: HTTPS redirect, tracing, request logging, rate limiting, metrics.
func SetupGinMiddlewareWithConfig(router *gin.Engine, serviceName string, metrics *AppMetrics, logger *LokiLogger, config *AppConfig, onRateLimited gin.HandlerFunc) {
	httpsEnforcer := NewHTTPSEnforcer(logger.Logger.Logger, config.EnforceHTTPS)

	if httpsEnforcer.IsEnabled() {
		router.Use(httpsEnforcer.HTTPSMiddleware())
	}

	router.Use(otelgin.Middleware(serviceName))

	router.Use(LoggingMiddleware(logger))

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Logger.Logger, metrics, config.RateLimitConfigs).OnRejected(onRateLimited)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.Use(MetricsMiddleware(metrics))
}
