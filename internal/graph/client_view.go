package graph

import (
	"context"
	"strconv"
	"time"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/platform/auth"
	"asset-vault-server/internal/platform/cache"

	"github.com/redis/go-redis/v9"
)

// ClientSource 客户视图所需的数据来源。
type ClientSource interface {
	AssignedProjects(ctx context.Context, userID uint) ([]model.Project, error)
	ProjectModels(ctx context.Context, projectID uint) ([]model.AssetModel, error)
}

// ClientViewAssembler 客户视图：项目列表一次加载，项目下的模型在展开时按项目懒加载。
// 同一项目的重复或并发展开只会触发一次查询。
type ClientViewAssembler struct {
	source ClientSource
	models *cache.Loader[[]ModelView]
}

func NewClientViewAssembler(source ClientSource, ttl time.Duration, client *redis.Client) *ClientViewAssembler {
	return &ClientViewAssembler{
		source: source,
		models: cache.NewLoader[[]ModelView]("client_models", ttl, client),
	}
}

// Projects 返回分配给该客户的项目，不含模型。
func (a *ClientViewAssembler) Projects(ctx context.Context, user auth.CurrentUser) ([]ProjectView, error) {
	projects, err := a.source.AssignedProjects(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		row := RowFromProject(p)
		row.Models = nil
		views = append(views, assembleProject(row))
	}
	return views, nil
}

func (a *ClientViewAssembler) Models(ctx context.Context, projectID uint) ([]ModelView, error) {
	return a.models.GetOrLoad(ctx, projectKey(projectID), func(ctx context.Context) ([]ModelView, error) {
		models, err := a.source.ProjectModels(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return AssembleModels(models), nil
	})
}

func (a *ClientViewAssembler) Loaded(projectID uint) bool {
	return a.models.Loaded(projectKey(projectID))
}

// Invalidate 项目下模型或版本发生写入后调用。
func (a *ClientViewAssembler) Invalidate(ctx context.Context, projectID uint) {
	a.models.Invalidate(ctx, projectKey(projectID))
}

func projectKey(projectID uint) string {
	return strconv.FormatUint(uint64(projectID), 10)
}
