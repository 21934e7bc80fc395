package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/modules/portfolio/dto"
	portfolioservice "asset-vault-server/internal/modules/portfolio/service"
	"asset-vault-server/internal/platform/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	portfolioService *portfolioservice.Service
	users            auth.CurrentUserProvider
}

func New(portfolioService *portfolioservice.Service, users auth.CurrentUserProvider) *Handler {
	return &Handler{portfolioService: portfolioService, users: users}
}

func (h *Handler) CreatePage(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	page, err := h.portfolioService.CreatePage(c.Request.Context(), user, req.Name)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建展示页失败")
		return
	}
	c.JSON(http.StatusCreated, page)
}

func (h *Handler) ListPages(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	list, err := h.portfolioService.ListPages(c.Request.Context(), user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取展示页失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *Handler) GetPage(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	page, err := h.portfolioService.GetPage(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取展示页失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) RenamePage(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.portfolioService.RenamePage(c.Request.Context(), user, id, req.Name); err != nil {
		httpx.WriteServiceError(c, err, "更新展示页失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

func (h *Handler) DeletePage(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.portfolioService.DeletePage(c.Request.Context(), user, id); err != nil {
		httpx.WriteServiceError(c, err, "删除展示页失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

func (h *Handler) AddModel(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.portfolioService.AddModel(c.Request.Context(), user, id, req.ModelID); err != nil {
		httpx.WriteServiceError(c, err, "添加模型失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "添加成功"})
}

func (h *Handler) RemoveModel(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	modelID, ok := httpx.ParseIDParam(c, "model_id")
	if !ok {
		return
	}
	if err := h.portfolioService.RemoveModel(c.Request.Context(), user, id, modelID); err != nil {
		httpx.WriteServiceError(c, err, "移除模型失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "移除成功"})
}
