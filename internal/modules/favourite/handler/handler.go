package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/modules/favourite/dto"
	favouriteservice "asset-vault-server/internal/modules/favourite/service"
	"asset-vault-server/internal/platform/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	favouriteService *favouriteservice.Service
	users            auth.CurrentUserProvider
}

func New(favouriteService *favouriteservice.Service, users auth.CurrentUserProvider) *Handler {
	return &Handler{favouriteService: favouriteService, users: users}
}

func (h *Handler) ListFavourites(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	resp, err := h.favouriteService.ListGrouped(c.Request.Context(), user)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取收藏失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ToggleFavourite(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	resp, err := h.favouriteService.Toggle(c.Request.Context(), user, req.VersionID)
	if err != nil {
		httpx.WriteServiceError(c, err, "收藏操作失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetFavouriteStatus(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "version_id")
	if !ok {
		return
	}
	favourited, err := h.favouriteService.IsFavourite(c.Request.Context(), user, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取收藏状态失败")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{VersionID: id, Favourited: favourited})
}
