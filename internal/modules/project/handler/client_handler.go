package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListClientProjects(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	projects, err := h.projectService.ClientProjects(c.Request.Context(), user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取项目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": projects})
}

// ListClientProjectModels 客户展开项目时调用，同一项目的结果会被缓存。
func (h *Handler) ListClientProjectModels(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	models, err := h.projectService.ClientProjectModels(c.Request.Context(), user, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取模型失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": models})
}
