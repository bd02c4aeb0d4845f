package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/tracing"
)

// AbortWithError aborts the request with the translated error envelope and
// adds the error to gin context for access logging.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := errs.KindOf(err)
	detail := objects.ErrorDetail{
		Type:    kind.String(),
		Message: err.Error(),
		Fields:  errs.FieldsOf(err),
	}

	// Unclassified faults keep their detail in the logs only.
	if kind == errs.KindUnexpected {
		detail.Message = "internal server error"
	}

	if traceID, ok := tracing.GetTraceID(c.Request.Context()); ok {
		detail.TraceID = traceID
	}

	c.AbortWithStatusJSON(kind.HTTPStatus(), objects.ErrorResponse{Error: detail})
}
