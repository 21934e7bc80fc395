package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"

	"gorm.io/gorm"
)

type FavouriteStore interface {
	VersionExists(ctx context.Context, versionID uint) (bool, error)
	Exists(ctx context.Context, userID, versionID uint) (bool, error)
	Add(ctx context.Context, userID, versionID uint) (bool, error)
	Remove(ctx context.Context, userID, versionID uint) (int64, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Favourite, error)
}

func NewFavouriteRepository(db *gorm.DB) FavouriteStore {
	return &FavouriteRepository{store: store.New(db)}
}
