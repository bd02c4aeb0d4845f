package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mbgplatform/mbg/internal/tracing"
)

func TestWithTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(WithTracing(tracing.Config{}))
	router.GET("/ping", func(c *gin.Context) {
		traceID, _ := tracing.GetTraceID(c.Request.Context())
		c.String(http.StatusOK, traceID)
	})

	t.Run("generates a trace id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.True(t, strings.HasPrefix(w.Body.String(), "mbg-"))
		assert.Equal(t, w.Body.String(), w.Header().Get("MBG-Trace-Id"))
		assert.NotEmpty(t, w.Header().Get("MBG-Request-Id"))
	})

	t.Run("honors the inbound trace header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("MBG-Trace-Id", "caller-trace-id")
		router.ServeHTTP(w, req)

		assert.Equal(t, "caller-trace-id", w.Body.String())
	})

	t.Run("custom header names", func(t *testing.T) {
		custom := gin.New()
		custom.Use(WithTracing(tracing.Config{TraceHeader: "X-Custom-Trace"}))
		custom.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		custom.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, w.Header().Get("X-Custom-Trace"))
	})
}
