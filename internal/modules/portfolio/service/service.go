package service

import (
	"context"
	"strings"

	"asset-vault-server/internal/graph"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/portfolio/dto"
	"asset-vault-server/internal/modules/portfolio/repo"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"
)

// Service 创作者的作品展示页。展示页只引用模型，不复制数据。
type Service struct {
	portfolioStore repo.PortfolioStore
}

func New(portfolioStore repo.PortfolioStore) *Service {
	return &Service{portfolioStore: portfolioStore}
}

func toResponse(page *model.PortfolioPage) dto.PageResponse {
	return dto.PageResponse{
		ID:        page.ID,
		CreatorID: page.CreatorID,
		Name:      page.Name,
		Models:    graph.AssembleModels(page.Models),
		CreatedAt: page.CreatedAt,
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", platformservice.NewFieldError("name", "名称不能为空")
	}
	if len(name) > 255 {
		return "", platformservice.NewFieldError("name", "名称过长")
	}
	return name, nil
}

func (s *Service) ownedPage(ctx context.Context, user auth.CurrentUser, id uint) (*model.PortfolioPage, error) {
	page, err := s.portfolioStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("展示页不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	if page.CreatorID != user.ID {
		return nil, platformservice.NewForbiddenError("无权操作该展示页")
	}
	return page, nil
}

func (s *Service) CreatePage(ctx context.Context, user auth.CurrentUser, name string) (*dto.PageResponse, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	page := &model.PortfolioPage{CreatorID: user.ID, Name: name}
	if err := s.portfolioStore.Create(ctx, page); err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	resp := toResponse(page)
	return &resp, nil
}

func (s *Service) ListPages(ctx context.Context, user auth.CurrentUser) ([]dto.PageResponse, error) {
	list, err := s.portfolioStore.ListByCreator(ctx, user.ID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	out := make([]dto.PageResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out, nil
}

// GetPage 展示页对所有已登录用户可见。
func (s *Service) GetPage(ctx context.Context, id uint) (*dto.PageResponse, error) {
	page, err := s.portfolioStore.FindWithModels(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("展示页不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	resp := toResponse(page)
	return &resp, nil
}

func (s *Service) RenamePage(ctx context.Context, user auth.CurrentUser, id uint, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if _, err := s.ownedPage(ctx, user, id); err != nil {
		return err
	}
	if err := s.portfolioStore.Rename(ctx, id, name); err != nil {
		return platformservice.WrapInternal(err)
	}
	return nil
}

func (s *Service) DeletePage(ctx context.Context, user auth.CurrentUser, id uint) error {
	if _, err := s.ownedPage(ctx, user, id); err != nil {
		return err
	}
	if err := s.portfolioStore.Delete(ctx, id); err != nil {
		return platformservice.WrapInternal(err)
	}
	return nil
}

// AddModel 只能加入自己项目下的模型，重复加入视为成功。
func (s *Service) AddModel(ctx context.Context, user auth.CurrentUser, pageID, modelID uint) error {
	if _, err := s.ownedPage(ctx, user, pageID); err != nil {
		return err
	}
	m, err := s.portfolioStore.FindModel(ctx, modelID)
	if err != nil {
		if store.IsNotFound(err) {
			return platformservice.NewNotFoundError("模型不存在")
		}
		return platformservice.WrapInternal(err)
	}
	project, ok := store.One[model.Project](m.Project)
	if !ok || project.CreatorID != user.ID {
		return platformservice.NewForbiddenError("只能添加自己的模型")
	}
	if _, err := s.portfolioStore.AddModel(ctx, pageID, modelID); err != nil {
		return platformservice.WrapInternal(err)
	}
	return nil
}

func (s *Service) RemoveModel(ctx context.Context, user auth.CurrentUser, pageID, modelID uint) error {
	if _, err := s.ownedPage(ctx, user, pageID); err != nil {
		return err
	}
	n, err := s.portfolioStore.RemoveModel(ctx, pageID, modelID)
	if err != nil {
		return platformservice.WrapInternal(err)
	}
	if n == 0 {
		return platformservice.NewNotFoundError("展示页中没有该模型")
	}
	return nil
}
