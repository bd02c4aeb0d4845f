package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/server/biz"
	"github.com/mbgplatform/mbg/internal/store"
)

type BranchHandlersParams struct {
	fx.In

	BranchService *biz.BranchService
}

func NewBranchHandlers(params BranchHandlersParams) *BranchHandlers {
	return &BranchHandlers{
		BranchService: params.BranchService,
	}
}

type BranchHandlers struct {
	BranchService *biz.BranchService
}

func (h *BranchHandlers) Create(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req biz.CreateBranchInput
	)

	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	branch, err := h.BranchService.Create(ctx, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	branch, err := h.BranchService.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandlers) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}

	branches, total, err := h.BranchService.List(c.Request.Context(), listParams(params))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewPage[*store.Branch](branches, total, params))
}

func (h *BranchHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req biz.UpdateBranchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	branch, err := h.BranchService.Update(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.BranchService.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "branch deleted"})
}
