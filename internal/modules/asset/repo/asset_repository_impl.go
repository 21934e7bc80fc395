package repo

import (
	"context"

	"asset-vault-server/internal/model"
	projectrepo "asset-vault-server/internal/modules/project/repo"
	"asset-vault-server/internal/store"
)

type AssetRepository struct {
	store *store.Store
}

func models(s *store.Store) *store.Collection[model.AssetModel] {
	return store.For[model.AssetModel](s, "models")
}

func versions(s *store.Store) *store.Collection[model.ModelVersion] {
	return store.For[model.ModelVersion](s, "model_versions")
}

func images(s *store.Store) *store.Collection[model.ModelImage] {
	return store.For[model.ModelImage](s, "model_images")
}

func (r *AssetRepository) Categories(ctx context.Context) ([]model.Category, error) {
	return store.For[model.Category](r.store, "categories").Find(ctx, store.Query{Order: "name asc"})
}

func (r *AssetRepository) Statuses(ctx context.Context) ([]model.ModelStatus, error) {
	return store.For[model.ModelStatus](r.store, "model_statuses").Find(ctx, store.Query{Order: "id asc"})
}

func (r *AssetRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return store.For[model.Category](r.store, "categories").Exists(ctx, store.Eq("id", id))
}

func (r *AssetRepository) StatusExists(ctx context.Context, id uint) (bool, error) {
	return store.For[model.ModelStatus](r.store, "model_statuses").Exists(ctx, store.Eq("id", id))
}

// EnsureDefaults 补齐缺失的分类与状态，已存在的名称忽略。
func (r *AssetRepository) EnsureDefaults(ctx context.Context, categories, statuses []string) error {
	cats := store.For[model.Category](r.store, "categories")
	for _, name := range categories {
		if _, err := cats.InsertIgnoreConflict(ctx, &model.Category{Name: name}); err != nil {
			return err
		}
	}
	sts := store.For[model.ModelStatus](r.store, "model_statuses")
	for _, name := range statuses {
		if _, err := sts.InsertIgnoreConflict(ctx, &model.ModelStatus{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

func (r *AssetRepository) FindModel(ctx context.Context, id uint) (*model.AssetModel, error) {
	return models(r.store).First(ctx, store.Query{
		Filters: []store.Filter{store.Eq("id", id)},
		Includes: []store.Include{
			store.With("Project"),
			store.With("Category"),
			store.With("Status"),
			store.WithOrdered("Versions", "version desc"),
			store.WithOrdered("Versions.Images", "position asc, id asc"),
		},
	})
}

func (r *AssetRepository) FindVersion(ctx context.Context, id uint) (*model.ModelVersion, error) {
	return versions(r.store).First(ctx, store.Query{
		Filters: []store.Filter{store.Eq("id", id)},
		Includes: []store.Include{
			store.WithOrdered("Images", "position asc, id asc"),
			store.With("Model"),
			store.With("Model.Project"),
		},
	})
}

func (r *AssetRepository) CreateModelWithVersion(ctx context.Context, m *model.AssetModel, v *model.ModelVersion, imageURLs []string, coverURL string) error {
	return r.store.Transaction(ctx, func(tx *store.Store) error {
		if err := models(tx).Insert(ctx, m); err != nil {
			return err
		}
		v.ModelID = m.ID
		return insertVersion(ctx, tx, v, imageURLs, coverURL)
	})
}

func (r *AssetRepository) CreateVersion(ctx context.Context, v *model.ModelVersion, modelChanges map[string]interface{}, imageURLs []string, coverURL string) error {
	return r.store.Transaction(ctx, func(tx *store.Store) error {
		if len(modelChanges) > 0 {
			if _, err := models(tx).Update(ctx, modelChanges, store.Eq("id", v.ModelID)); err != nil {
				return err
			}
		}
		return insertVersion(ctx, tx, v, imageURLs, coverURL)
	})
}

func insertVersion(ctx context.Context, tx *store.Store, v *model.ModelVersion, imageURLs []string, coverURL string) error {
	if err := versions(tx).Insert(ctx, v); err != nil {
		return err
	}
	if err := appendImages(ctx, tx, v.ID, 0, imageURLs); err != nil {
		return err
	}
	return assignCover(ctx, tx, v.ID, coverURL)
}

func appendImages(ctx context.Context, tx *store.Store, versionID uint, start int, urls []string) error {
	records := make([]model.ModelImage, 0, len(urls))
	for i, url := range urls {
		records = append(records, model.ModelImage{VersionID: versionID, Path: url, Position: start + i})
	}
	return images(tx).InsertMany(ctx, records)
}

// assignCover 按地址找到封面图片并写入 cover_image_id；找不到时使用第一张，没有图片时清空。
func assignCover(ctx context.Context, tx *store.Store, versionID uint, coverURL string) error {
	list, err := images(tx).Find(ctx, store.Query{
		Filters: []store.Filter{store.Eq("version_id", versionID)},
		Order:   "position asc, id asc",
	})
	if err != nil {
		return err
	}
	var coverID interface{}
	if first, ok := store.FirstOrDefault(list); ok {
		coverID = first.ID
	}
	for _, img := range list {
		if coverURL != "" && img.Path == coverURL {
			coverID = img.ID
			break
		}
	}
	_, err = versions(tx).Update(ctx, map[string]interface{}{"cover_image_id": coverID}, store.Eq("id", versionID))
	return err
}

// ApplyVersionChanges 在一个事务内完成模型元数据、图片增删、封面与模型文件的更新。
func (r *AssetRepository) ApplyVersionChanges(ctx context.Context, changes VersionChanges) error {
	return r.store.Transaction(ctx, func(tx *store.Store) error {
		modelValues := map[string]interface{}{"name": changes.ModelName}
		if changes.CategoryID != nil {
			modelValues["category_id"] = *changes.CategoryID
		}
		if _, err := models(tx).Update(ctx, modelValues, store.Eq("id", changes.ModelID)); err != nil {
			return err
		}

		if len(changes.DeleteImageIDs) > 0 {
			if _, err := images(tx).Delete(ctx, store.In("id", changes.DeleteImageIDs), store.Eq("version_id", changes.VersionID)); err != nil {
				return err
			}
		}

		remaining, err := images(tx).Find(ctx, store.Query{
			Filters: []store.Filter{store.Eq("version_id", changes.VersionID)},
			Order:   "position desc",
			Limit:   1,
		})
		if err != nil {
			return err
		}
		start := 0
		if last, ok := store.FirstOrDefault(remaining); ok {
			start = last.Position + 1
		}
		if err := appendImages(ctx, tx, changes.VersionID, start, changes.NewImageURLs); err != nil {
			return err
		}

		if changes.FilePath != "" {
			if _, err := versions(tx).Update(ctx, map[string]interface{}{"file_path": changes.FilePath}, store.Eq("id", changes.VersionID)); err != nil {
				return err
			}
		}
		return assignCover(ctx, tx, changes.VersionID, changes.CoverURL)
	})
}

func (r *AssetRepository) UpdateModel(ctx context.Context, id uint, values map[string]interface{}) error {
	_, err := models(r.store).Update(ctx, values, store.Eq("id", id))
	return err
}

func (r *AssetRepository) DeleteModel(ctx context.Context, id uint) error {
	return r.store.Transaction(ctx, func(tx *store.Store) error {
		return projectrepo.DeleteModelsTx(ctx, tx, []uint{id})
	})
}

func (r *AssetRepository) ListComments(ctx context.Context, versionID uint) ([]model.Comment, error) {
	return store.For[model.Comment](r.store, "comments").Find(ctx, store.Query{
		Filters:  []store.Filter{store.Eq("version_id", versionID)},
		Includes: []store.Include{store.With("User")},
		Order:    "created_at asc, id asc",
	})
}

func (r *AssetRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return store.For[model.Comment](r.store, "comments").Insert(ctx, comment)
}

func (r *AssetRepository) FindComment(ctx context.Context, id uint) (*model.Comment, error) {
	return store.For[model.Comment](r.store, "comments").First(ctx, store.Query{Filters: []store.Filter{store.Eq("id", id)}})
}

func (r *AssetRepository) DeleteComment(ctx context.Context, id uint) error {
	_, err := store.For[model.Comment](r.store, "comments").Delete(ctx, store.Eq("id", id))
	return err
}
