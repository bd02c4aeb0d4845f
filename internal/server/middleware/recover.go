package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/log"
)

// Recovery converts panics into the uniform error envelope. The stack is
// logged with the trace id; the caller only sees the generic message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()

				log.Error(ctx, "panic recovered",
					log.Any("panic", r),
					log.String("path", c.Request.URL.Path),
					log.String("stack", string(debug.Stack())),
				)

				AbortWithError(c, errs.Unexpected(fmt.Errorf("panic: %v", r)))
			}
		}()

		c.Next()
	}
}
