package dto

import (
	"time"

	"asset-vault-server/internal/graph"
)

type PageRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddModelRequest struct {
	ModelID uint `json:"model_id" binding:"required"`
}

type PageResponse struct {
	ID        uint              `json:"id"`
	CreatorID uint              `json:"creator_id"`
	Name      string            `json:"name"`
	Models    []graph.ModelView `json:"models"`
	CreatedAt time.Time         `json:"created_at"`
}
