package service

import (
	"context"

	"asset-vault-server/internal/favourites"
	"asset-vault-server/internal/modules/favourite/dto"
	"asset-vault-server/internal/modules/favourite/repo"
	"asset-vault-server/internal/platform/auth"
	platformservice "asset-vault-server/internal/platform/service"
)

type Service struct {
	favouriteStore repo.FavouriteStore
}

func New(favouriteStore repo.FavouriteStore) *Service {
	return &Service{favouriteStore: favouriteStore}
}

// Toggle 先查后改：已收藏则取消，否则收藏。
func (s *Service) Toggle(ctx context.Context, user auth.CurrentUser, versionID uint) (*dto.ToggleResponse, error) {
	ok, err := s.favouriteStore.VersionExists(ctx, versionID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	if !ok {
		return nil, platformservice.NewNotFoundError("版本不存在")
	}

	exists, err := s.favouriteStore.Exists(ctx, user.ID, versionID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	if exists {
		if _, err := s.favouriteStore.Remove(ctx, user.ID, versionID); err != nil {
			return nil, platformservice.WrapInternal(err)
		}
		return &dto.ToggleResponse{Action: dto.ActionRemoved, VersionID: versionID}, nil
	}
	if _, err := s.favouriteStore.Add(ctx, user.ID, versionID); err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	return &dto.ToggleResponse{Action: dto.ActionAdded, VersionID: versionID, Favourited: true}, nil
}

func (s *Service) IsFavourite(ctx context.Context, user auth.CurrentUser, versionID uint) (bool, error) {
	exists, err := s.favouriteStore.Exists(ctx, user.ID, versionID)
	if err != nil {
		return false, platformservice.WrapInternal(err)
	}
	return exists, nil
}

func (s *Service) ListGrouped(ctx context.Context, user auth.CurrentUser) (*dto.ListResponse, error) {
	favs, err := s.favouriteStore.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, platformservice.WrapInternal(err)
	}
	groups := favourites.GroupByModel(favs)
	return &dto.ListResponse{Groups: groups, Total: favourites.Count(groups)}, nil
}
