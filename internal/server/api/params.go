package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/store"
)

// pathID parses the uuid path parameter, aborting with a bad request when it
// is not a valid uuid.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		Error(c, errs.BadRequest("invalid "+name))
		return uuid.Nil, false
	}

	return id, true
}

// pageParams binds the common pagination query string.
func pageParams(c *gin.Context) (objects.PageParams, bool) {
	var params objects.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		BindError(c, err)
		return params, false
	}

	return params, true
}

func listParams(params objects.PageParams) store.ListParams {
	return store.ListParams{Offset: params.Offset(), Limit: params.Limit()}
}
