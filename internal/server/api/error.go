package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/server/middleware"
)

// Error translates a service error into the uniform envelope. All handlers
// funnel failures through here so the taxonomy is applied exactly once.
func Error(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// BindError reports a malformed request body or query string. The binding
// detail goes to the access log, not the caller.
func BindError(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, errs.BadRequest("invalid request format"))
}
