package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"

	"gorm.io/gorm"
)

// ProjectStore 项目及客户分配的持久化。AssignedProjects 与 ProjectModels
// 同时满足客户视图的数据来源接口。
type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	ListByCreatorWithModels(ctx context.Context, creatorID uint) ([]model.Project, error)
	Update(ctx context.Context, id uint, values map[string]interface{}) error
	DeleteCascade(ctx context.Context, id uint) error

	AssignClient(ctx context.Context, projectID, userID uint) (bool, error)
	UnassignClient(ctx context.Context, projectID, userID uint) (int64, error)
	ListClients(ctx context.Context, projectID uint) ([]model.ProjectClient, error)
	IsAssigned(ctx context.Context, projectID, userID uint) (bool, error)

	AssignedProjects(ctx context.Context, userID uint) ([]model.Project, error)
	ProjectModels(ctx context.Context, projectID uint) ([]model.AssetModel, error)
}

func NewProjectRepository(db *gorm.DB) ProjectStore {
	return &ProjectRepository{store: store.New(db)}
}
