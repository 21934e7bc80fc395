package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
)

type FavouriteRepository struct {
	store *store.Store
}

func (r *FavouriteRepository) favourites() *store.Collection[model.Favourite] {
	return store.For[model.Favourite](r.store, "favourites")
}

func (r *FavouriteRepository) VersionExists(ctx context.Context, versionID uint) (bool, error) {
	return store.For[model.ModelVersion](r.store, "model_versions").Exists(ctx, store.Eq("id", versionID))
}

func (r *FavouriteRepository) Exists(ctx context.Context, userID, versionID uint) (bool, error) {
	return r.favourites().Exists(ctx, store.Eq("user_id", userID), store.Eq("version_id", versionID))
}

// Add 已收藏时不报错，返回 false。
func (r *FavouriteRepository) Add(ctx context.Context, userID, versionID uint) (bool, error) {
	return r.favourites().InsertIgnoreConflict(ctx, &model.Favourite{UserID: userID, VersionID: versionID})
}

func (r *FavouriteRepository) Remove(ctx context.Context, userID, versionID uint) (int64, error) {
	return r.favourites().Delete(ctx, store.Eq("user_id", userID), store.Eq("version_id", versionID))
}

// ListForUser 最近收藏在前，带出版本所属模型与版本图片。
func (r *FavouriteRepository) ListForUser(ctx context.Context, userID uint) ([]model.Favourite, error) {
	return r.favourites().Find(ctx, store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		Includes: []store.Include{
			store.With("Version"),
			store.With("Version.Model"),
			store.WithOrdered("Version.Images", "position asc, id asc"),
		},
		Order: "created_at desc, id desc",
	})
}
