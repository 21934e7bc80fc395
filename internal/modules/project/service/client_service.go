package service

import (
	"context"

	"asset-vault-server/internal/graph"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
)

// ClientProjects 分配给客户的项目列表，不含模型。
func (s *Service) ClientProjects(ctx context.Context, user auth.CurrentUser) ([]graph.ProjectView, error) {
	views, err := s.clientView.Projects(ctx, user)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return views, nil
}

// ClientProjectModels 客户展开某个项目时懒加载其模型。
func (s *Service) ClientProjectModels(ctx context.Context, user auth.CurrentUser, projectID uint) ([]graph.ModelView, error) {
	assigned, err := s.projectStore.IsAssigned(ctx, projectID, user.ID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	if !assigned {
		return nil, platformservice.NewNotFoundError("项目不存在")
	}
	views, err := s.clientView.Models(ctx, projectID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return views, nil
}

// InvalidateProject 项目下的模型或版本有写入后清除客户视图缓存。
func (s *Service) InvalidateProject(ctx context.Context, projectID uint) {
	s.clientView.Invalidate(ctx, projectID)
}
