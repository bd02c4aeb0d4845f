package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mbgplatform/mbg/internal/contexts"
	"github.com/mbgplatform/mbg/internal/tracing"
)

func traceHeaderName(config tracing.Config) string {
	if config.TraceHeader != "" {
		return config.TraceHeader
	}

	return "MBG-Trace-Id"
}

func requestHeaderName(config tracing.Config) string {
	if config.RequestHeader != "" {
		return config.RequestHeader
	}

	return "MBG-Request-Id"
}

// WithTracing attaches trace and request ids to every request. The inbound
// trace header is honored when present so callers can stitch their own
// traces; both ids are echoed on the response.
func WithTracing(config tracing.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeaderName(config))
		if traceID == "" {
			traceID = tracing.GenerateTraceID()
		}

		requestID := tracing.GenerateRequestID()

		ctx := tracing.WithTraceID(c.Request.Context(), traceID)
		ctx = tracing.WithRequestID(ctx, requestID)
		ctx = tracing.WithOperationName(ctx, c.Request.Method+" "+c.FullPath())
		ctx = contexts.WithClientInfo(ctx, c.ClientIP(), c.Request.UserAgent())

		c.Request = c.Request.WithContext(ctx)

		c.Header(traceHeaderName(config), traceID)
		c.Header(requestHeaderName(config), requestID)

		c.Next()
	}
}
