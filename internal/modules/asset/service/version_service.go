package service

import (
	"context"

	"asset-vault-server/internal/graph"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/asset/dto"
	platformservice "asset-vault-server/internal/platform/service"
	"asset-vault-server/internal/store"
	"asset-vault-server/internal/versioning"
)

func toVersionResponse(v *model.ModelVersion) dto.VersionResponse {
	resp := dto.VersionResponse{
		ID:            v.ID,
		ModelID:       v.ModelID,
		Version:       v.Version,
		Label:         versioning.DisplayLabel(v.Version),
		FilePath:      v.FilePath,
		AllowDownload: v.AllowDownload,
		Thumbnail:     versioning.ResolveThumbnail(v),
		CoverImageID:  v.CoverImageID,
		Images:        make([]dto.ImageResponse, 0, len(v.Images)),
		CreatedAt:     v.CreatedAt,
	}
	for _, img := range v.Images {
		resp.Images = append(resp.Images, dto.ImageResponse{ID: img.ID, Path: img.Path})
	}
	return resp
}

func (s *Service) Version(ctx context.Context, id uint) (*dto.VersionResponse, error) {
	v, err := s.assetStore.FindVersion(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("版本不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	resp := toVersionResponse(v)
	return &resp, nil
}

// ModelDetail 模型详情与版本历史（按版本号降序），最新版本每次从版本列表重新计算。
func (s *Service) ModelDetail(ctx context.Context, id uint) (*dto.ModelDetailResponse, error) {
	m, err := s.assetStore.FindModel(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, platformservice.NewNotFoundError("模型不存在")
		}
		return nil, platformservice.WrapInternal(err)
	}
	view := graph.AssembleModel(m)
	resp := &dto.ModelDetailResponse{
		ID:        m.ID,
		Name:      m.Name,
		ProjectID: m.ProjectID,
		Category:  view.Category,
		Status:    view.Status,
	}
	history := versioning.History(m.Versions)
	resp.Versions = make([]dto.VersionResponse, 0, len(history))
	for i := range history {
		resp.Versions = append(resp.Versions, toVersionResponse(&history[i]))
	}
	if latest, ok := versioning.Latest(m.Versions); ok {
		r := toVersionResponse(latest)
		resp.Latest = &r
	}
	return resp, nil
}

func (s *Service) modelView(ctx context.Context, id uint) (*graph.ModelView, error) {
	m, err := s.assetStore.FindModel(ctx, id)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	view := graph.AssembleModel(m)
	return &view, nil
}
