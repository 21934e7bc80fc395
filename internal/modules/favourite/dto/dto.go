package dto

import "asset-vault-server/internal/favourites"

type ToggleRequest struct {
	VersionID uint `json:"version_id" binding:"required"`
}

// 切换收藏的结果
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

type ToggleResponse struct {
	Action     string `json:"action"`
	VersionID  uint   `json:"version_id"`
	Favourited bool   `json:"favourited"`
}

type StatusResponse struct {
	VersionID  uint `json:"version_id"`
	Favourited bool `json:"favourited"`
}

// ListResponse 按模型分组的收藏，Total 为版本条目总数。
type ListResponse struct {
	Groups []favourites.ModelGroup `json:"groups"`
	Total  int                     `json:"total"`
}
