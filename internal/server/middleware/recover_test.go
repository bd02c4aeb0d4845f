package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Recovery())
	router.GET("/boom", func(*gin.Context) {
		panic("something broke")
	})
	router.GET("/fine", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("panic becomes the uniform envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"unexpected"`)
		assert.Contains(t, w.Body.String(), "internal server error")
		// Panic detail must not leak to the caller.
		assert.NotContains(t, w.Body.String(), "something broke")
	})

	t.Run("normal requests pass through", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fine", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
