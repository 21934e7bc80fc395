package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPendingUsers(c *gin.Context) {
	users, err := h.userService.ListPending(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取待审批用户失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": users, "total": len(users)})
}

func (h *Handler) ApproveUser(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Approve(c.Request.Context(), id); err != nil {
		httpx.WriteServiceError(c, err, "审批失败")
		return
	}
	middleware.ClearApprovalCache(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "审批通过"})
}
