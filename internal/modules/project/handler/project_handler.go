package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/modules/project/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProject(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	project, err := h.projectService.CreateProject(c.Request.Context(), user, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建项目失败")
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) ListCreatorProjects(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	projects, err := h.projectService.CreatorProjects(c.Request.Context(), user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取项目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": projects})
}

func (h *Handler) UpdateProject(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.projectService.UpdateProject(c.Request.Context(), user, id, req); err != nil {
		httpx.WriteServiceError(c, err, "更新项目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), user, id); err != nil {
		httpx.WriteServiceError(c, err, "删除项目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

func (h *Handler) ListProjectClients(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	clients, err := h.projectService.ListClients(c.Request.Context(), user, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取客户失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": clients})
}

func (h *Handler) AssignClient(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AssignClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.projectService.AssignClient(c.Request.Context(), user, id, req.UserID); err != nil {
		httpx.WriteServiceError(c, err, "分配客户失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分配成功"})
}

func (h *Handler) UnassignClient(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	clientID, ok := httpx.ParseIDParam(c, "user_id")
	if !ok {
		return
	}
	if err := h.projectService.UnassignClient(c.Request.Context(), user, id, clientID); err != nil {
		httpx.WriteServiceError(c, err, "取消分配失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已取消分配"})
}
