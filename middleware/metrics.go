package middleware

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront/services"

	"github.com/gin-gonic/gin"
)

// Metrics creates a Gin middleware that tracks HTTP metrics
func Metrics(recorder services.MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if recorder == nil || !recorder.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// Route template, not the raw path.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		// Record metrics asynchronously to avoid blocking
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = recorder.RecordCount(ctx, services.MetricHTTPRequests, dimensions)
			_ = recorder.RecordLatency(ctx, services.MetricHTTPLatency, duration, dimensions)

			if statusCode >= 400 {
				_ = recorder.RecordCount(ctx, services.MetricHTTPErrors, dimensions)
				if statusCode < 500 {
					_ = recorder.RecordCount(ctx, services.MetricHTTP4xx, dimensions)
				} else {
					_ = recorder.RecordCount(ctx, services.MetricHTTP5xx, dimensions)
				}
			}
		}()
	}
}

// statusCodeToRange converts status code to a range string (2xx, 3xx, 4xx, 5xx)
func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
