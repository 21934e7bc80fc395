package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/modules/user/dto"
	userservice "asset-vault-server/internal/modules/user/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "注册失败")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "注册成功，等待管理员审批", "user": userservice.ToResponse(user)})
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListClients 创作者分配项目时使用的客户列表。
func (h *Handler) ListClients(c *gin.Context) {
	users, err := h.userService.ListClients(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取客户列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": users})
}
