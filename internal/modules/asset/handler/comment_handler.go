package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/modules/asset/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListComments(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	list, err := h.assetService.ListComments(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取评论失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *Handler) CreateComment(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	comment, err := h.assetService.AddComment(c.Request.Context(), user, id, req.Text)
	if err != nil {
		httpx.WriteServiceError(c, err, "发表评论失败")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.assetService.DeleteComment(c.Request.Context(), user, id); err != nil {
		httpx.WriteServiceError(c, err, "删除评论失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
