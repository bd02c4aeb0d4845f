package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type FinanceHandlersParams struct {
	fx.In

	FinanceService *biz.FinanceService
}

func NewFinanceHandlers(params FinanceHandlersParams) *FinanceHandlers {
	return &FinanceHandlers{
		FinanceService: params.FinanceService,
	}
}

type FinanceHandlers struct {
	FinanceService *biz.FinanceService
}

func (h *FinanceHandlers) Create(c *gin.Context) {
	var req biz.CreateFinancialRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	record, err := h.FinanceService.Create(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *FinanceHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.FinanceService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *FinanceHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	from, ok := timeQuery(c, "from")
	if !ok {
		return
	}

	to, ok := timeQuery(c, "to")
	if !ok {
		return
	}

	records, total, err := h.FinanceService.List(c.Request.Context(), from, to, listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.FinancialRecord](records, total, params))
}

// timeQuery parses an optional RFC3339 or date-only query parameter.
func timeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}

	Error(c, errs.BadRequest("invalid "+name+" timestamp"))

	return nil, false
}
