package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/server/biz"
)

type GovernanceHandlersParams struct {
	fx.In

	GovernanceService *biz.GovernanceService
}

func NewGovernanceHandlers(params GovernanceHandlersParams) *GovernanceHandlers {
	return &GovernanceHandlers{
		GovernanceService: params.GovernanceService,
	}
}

type GovernanceHandlers struct {
	GovernanceService *biz.GovernanceService
}

// Dashboard returns the platform-wide governance counters.
func (h *GovernanceHandlers) Dashboard(c *gin.Context) {
	dashboard, err := h.GovernanceService.GetDashboard(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
