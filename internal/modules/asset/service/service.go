package service

import (
	"context"

	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/asset/repo"
	"asset-vault-server/internal/platform/auth"
)

// ProjectAccess 由项目模块提供：校验项目归属并在写入后清除客户视图缓存。
type ProjectAccess interface {
	OwnedProject(ctx context.Context, user auth.CurrentUser, id uint) (*model.Project, error)
	InvalidateProject(ctx context.Context, projectID uint)
}

type Service struct {
	assetStore repo.AssetStore
	projects   ProjectAccess
	uploader   blob.Uploader
}

func New(assetStore repo.AssetStore, projects ProjectAccess, uploader blob.Uploader) *Service {
	return &Service{
		assetStore: assetStore,
		projects:   projects,
		uploader:   uploader,
	}
}
