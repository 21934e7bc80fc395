package dto

import (
	"time"

	"asset-vault-server/internal/blob"
)

// CreateModelForm 新建模型及其第一个版本。
type CreateModelForm struct {
	ProjectID     uint
	Name          string
	CategoryID    *uint
	StatusID      *uint
	AllowDownload bool
	Images        []blob.File
	CoverIndex    int
	Asset         *blob.File
}

// NewVersionForm 为已有模型上传新版本；CategoryID 为空时沿用模型分类。
type NewVersionForm struct {
	CategoryID    *uint
	AllowDownload bool
	Images        []blob.File
	CoverIndex    int
	Asset         *blob.File
}

// EditVersionForm 编辑版本。封面二选一：CoverImageID 指向保留的已有图片，
// 或 CoverNewIndex 指向 NewImages 中的位置。
type EditVersionForm struct {
	Name           string
	CategoryID     *uint
	RemoveImageIDs []uint
	NewImages      []blob.File
	CoverImageID   *uint
	CoverNewIndex  *int
	Asset          *blob.File
}

type VersionResponse struct {
	ID            uint            `json:"id"`
	ModelID       uint            `json:"model_id"`
	Version       int             `json:"version"`
	Label         string          `json:"label"`
	FilePath      string          `json:"file_path"`
	AllowDownload bool            `json:"allow_download"`
	Thumbnail     string          `json:"thumbnail"`
	CoverImageID  *uint           `json:"cover_image_id"`
	Images        []ImageResponse `json:"images"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ImageResponse struct {
	ID   uint   `json:"id"`
	Path string `json:"path"`
}

type ModelDetailResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	ProjectID uint              `json:"project_id"`
	Category  string            `json:"category"`
	Status    string            `json:"status"`
	Latest    *VersionResponse  `json:"latest"`
	Versions  []VersionResponse `json:"versions"`
}

type UpdateStatusRequest struct {
	StatusID *uint `json:"status_id"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	VersionID uint      `json:"version_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
