package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type DocumentHandlersParams struct {
	fx.In

	DocumentService *biz.DocumentService
}

func NewDocumentHandlers(params DocumentHandlersParams) *DocumentHandlers {
	return &DocumentHandlers{
		DocumentService: params.DocumentService,
	}
}

type DocumentHandlers struct {
	DocumentService *biz.DocumentService
}

func (h *DocumentHandlers) Submit(c *gin.Context) {
	var req biz.SubmitDocumentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	doc, err := h.DocumentService.Submit(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.DocumentService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	docs, total, err := h.DocumentService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Document](docs, total, params))
}

type ReviewDocumentRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Review approves or rejects a pending document.
func (h *DocumentHandlers) Review(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	doc, err := h.DocumentService.Review(c.Request.Context(), id, req.Approve, req.Note)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}
