package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
)

type ProjectRepository struct {
	store *store.Store
}

func (r *ProjectRepository) projects() *store.Collection[model.Project] {
	return store.For[model.Project](r.store, "projects")
}

func (r *ProjectRepository) clients() *store.Collection[model.ProjectClient] {
	return store.For[model.ProjectClient](r.store, "project_clients")
}

func (r *ProjectRepository) models() *store.Collection[model.AssetModel] {
	return store.For[model.AssetModel](r.store, "models")
}

// modelTree 模型展示所需的全部关联：分类、状态、版本（按版本号降序）及版本图片。
func modelTree(prefix string) []store.Include {
	return []store.Include{
		store.With(prefix + "Category"),
		store.With(prefix + "Status"),
		store.WithOrdered(prefix+"Versions", "version desc"),
		store.WithOrdered(prefix+"Versions.Images", "position asc, id asc"),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.projects().Insert(ctx, project)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	return r.projects().First(ctx, store.Query{Filters: []store.Filter{store.Eq("id", id)}})
}

func (r *ProjectRepository) ListByCreatorWithModels(ctx context.Context, creatorID uint) ([]model.Project, error) {
	includes := append([]store.Include{store.WithOrdered("Models", "created_at desc, id desc")}, modelTree("Models.")...)
	return r.projects().Find(ctx, store.Query{
		Filters:  []store.Filter{store.Eq("creator_id", creatorID)},
		Includes: includes,
		Order:    "created_at desc, id desc",
	})
}

func (r *ProjectRepository) Update(ctx context.Context, id uint, values map[string]interface{}) error {
	_, err := r.projects().Update(ctx, values, store.Eq("id", id))
	return err
}

// DeleteCascade 删除项目及其下的模型、版本、图片、评论、收藏与分配记录。
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.store.Transaction(ctx, func(tx *store.Store) error {
		models, err := store.For[model.AssetModel](tx, "models").Find(ctx, store.Query{
			Filters: []store.Filter{store.Eq("project_id", id)},
		})
		if err != nil {
			return err
		}
		modelIDs := make([]uint, 0, len(models))
		for _, m := range models {
			modelIDs = append(modelIDs, m.ID)
		}
		if err := DeleteModelsTx(ctx, tx, modelIDs); err != nil {
			return err
		}
		if _, err := store.For[model.ProjectClient](tx, "project_clients").Delete(ctx, store.Eq("project_id", id)); err != nil {
			return err
		}
		_, err = store.For[model.Project](tx, "projects").Delete(ctx, store.Eq("id", id))
		return err
	})
}

// DeleteModelsTx 在事务内删除模型及其全部从属记录。
func DeleteModelsTx(ctx context.Context, tx *store.Store, modelIDs []uint) error {
	if len(modelIDs) == 0 {
		return nil
	}
	versions, err := store.For[model.ModelVersion](tx, "model_versions").Find(ctx, store.Query{
		Filters: []store.Filter{store.In("model_id", modelIDs)},
	})
	if err != nil {
		return err
	}
	if len(versions) > 0 {
		versionIDs := make([]uint, 0, len(versions))
		for _, v := range versions {
			versionIDs = append(versionIDs, v.ID)
		}
		if _, err := store.For[model.ModelImage](tx, "model_images").Delete(ctx, store.In("version_id", versionIDs)); err != nil {
			return err
		}
		if _, err := store.For[model.Comment](tx, "comments").Delete(ctx, store.In("version_id", versionIDs)); err != nil {
			return err
		}
		if _, err := store.For[model.Favourite](tx, "favourites").Delete(ctx, store.In("version_id", versionIDs)); err != nil {
			return err
		}
		if _, err := store.For[model.ModelVersion](tx, "model_versions").Delete(ctx, store.In("id", versionIDs)); err != nil {
			return err
		}
	}
	if _, err := store.For[model.PortfolioPageModel](tx, "portfolio_page_models").Delete(ctx, store.In("model_id", modelIDs)); err != nil {
		return err
	}
	_, err = store.For[model.AssetModel](tx, "models").Delete(ctx, store.In("id", modelIDs))
	return err
}

func (r *ProjectRepository) AssignClient(ctx context.Context, projectID, userID uint) (bool, error) {
	return r.clients().InsertIgnoreConflict(ctx, &model.ProjectClient{ProjectID: projectID, UserID: userID})
}

func (r *ProjectRepository) UnassignClient(ctx context.Context, projectID, userID uint) (int64, error) {
	return r.clients().Delete(ctx, store.Eq("project_id", projectID), store.Eq("user_id", userID))
}

func (r *ProjectRepository) ListClients(ctx context.Context, projectID uint) ([]model.ProjectClient, error) {
	return r.clients().Find(ctx, store.Query{
		Filters:  []store.Filter{store.Eq("project_id", projectID)},
		Includes: []store.Include{store.With("User")},
		Order:    "id asc",
	})
}

func (r *ProjectRepository) IsAssigned(ctx context.Context, projectID, userID uint) (bool, error) {
	return r.clients().Exists(ctx, store.Eq("project_id", projectID), store.Eq("user_id", userID))
}

// AssignedProjects 先查分配关系再按 ID 取项目，两次单表查询。
func (r *ProjectRepository) AssignedProjects(ctx context.Context, userID uint) ([]model.Project, error) {
	rows, err := r.clients().Find(ctx, store.Query{Filters: []store.Filter{store.Eq("user_id", userID)}})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Project{}, nil
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProjectID)
	}
	return r.projects().Find(ctx, store.Query{
		Filters: []store.Filter{store.In("id", ids)},
		Order:   "created_at desc, id desc",
	})
}

func (r *ProjectRepository) ProjectModels(ctx context.Context, projectID uint) ([]model.AssetModel, error) {
	return r.models().Find(ctx, store.Query{
		Filters:  []store.Filter{store.Eq("project_id", projectID)},
		Includes: modelTree(""),
		Order:    "created_at desc, id desc",
	})
}
