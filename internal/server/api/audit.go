package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type AuditHandlersParams struct {
	fx.In

	AuditService *biz.AuditService
}

func NewAuditHandlers(params AuditHandlersParams) *AuditHandlers {
	return &AuditHandlers{
		AuditService: params.AuditService,
	}
}

type AuditHandlers struct {
	AuditService *biz.AuditService
}

// List returns the audit trail, newest first, with optional actor, resource
// and time range filters.
func (h *AuditHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	filter := store.AuditFilter{
		ResourceType: c.Query("resource_type"),
	}

	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			Error(c, errs.BadRequest("invalid user_id"))
			return
		}

		filter.UserID = &id
	}

	from, ok := timeQuery(c, "from")
	if !ok {
		return
	}

	to, ok := timeQuery(c, "to")
	if !ok {
		return
	}

	filter.From = from
	filter.To = to

	logs, total, err := h.AuditService.List(c.Request.Context(), filter, listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.AuditLog](logs, total, params))
}

// Analytics returns the aggregated audit view for governance reporting.
func (h *AuditHandlers) Analytics(c *gin.Context) {
	analytics, err := h.AuditService.Analytics(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
