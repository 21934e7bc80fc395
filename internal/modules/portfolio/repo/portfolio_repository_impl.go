package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"
)

type PortfolioRepository struct {
	store *store.Store
}

func pages(s *store.Store) *store.Collection[model.PortfolioPage] {
	return store.For[model.PortfolioPage](s, "portfolio_pages")
}

func links(s *store.Store) *store.Collection[model.PortfolioPageModel] {
	return store.For[model.PortfolioPageModel](s, "portfolio_page_models")
}

func (r *PortfolioRepository) Create(ctx context.Context, page *model.PortfolioPage) error {
	return pages(r.store).Insert(ctx, page)
}

func (r *PortfolioRepository) FindByID(ctx context.Context, id uint) (*model.PortfolioPage, error) {
	return pages(r.store).First(ctx, store.Query{Filters: []store.Filter{store.Eq("id", id)}})
}

func (r *PortfolioRepository) FindWithModels(ctx context.Context, id uint) (*model.PortfolioPage, error) {
	return pages(r.store).First(ctx, store.Query{
		Filters: []store.Filter{store.Eq("id", id)},
		Includes: []store.Include{
			store.WithOrdered("Models", "models.id asc"),
			store.With("Models.Category"),
			store.With("Models.Status"),
			store.WithOrdered("Models.Versions", "version desc"),
			store.WithOrdered("Models.Versions.Images", "position asc, id asc"),
		},
	})
}

func (r *PortfolioRepository) ListByCreator(ctx context.Context, creatorID uint) ([]model.PortfolioPage, error) {
	return pages(r.store).Find(ctx, store.Query{
		Filters: []store.Filter{store.Eq("creator_id", creatorID)},
		Includes: []store.Include{
			store.With("Models"),
			store.WithOrdered("Models.Versions", "version desc"),
			store.WithOrdered("Models.Versions.Images", "position asc, id asc"),
		},
		Order: "created_at desc, id desc",
	})
}

func (r *PortfolioRepository) Rename(ctx context.Context, id uint, name string) error {
	_, err := pages(r.store).Update(ctx, map[string]interface{}{"name": name}, store.Eq("id", id))
	return err
}

func (r *PortfolioRepository) Delete(ctx context.Context, id uint) error {
	return r.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := links(tx).Delete(ctx, store.Eq("portfolio_page_id", id)); err != nil {
			return err
		}
		_, err := pages(tx).Delete(ctx, store.Eq("id", id))
		return err
	})
}

func (r *PortfolioRepository) FindModel(ctx context.Context, modelID uint) (*model.AssetModel, error) {
	return store.For[model.AssetModel](r.store, "models").First(ctx, store.Query{
		Filters:  []store.Filter{store.Eq("id", modelID)},
		Includes: []store.Include{store.With("Project")},
	})
}

func (r *PortfolioRepository) AddModel(ctx context.Context, pageID, modelID uint) (bool, error) {
	return links(r.store).InsertIgnoreConflict(ctx, &model.PortfolioPageModel{PortfolioPageID: pageID, ModelID: modelID})
}

func (r *PortfolioRepository) RemoveModel(ctx context.Context, pageID, modelID uint) (int64, error) {
	return links(r.store).Delete(ctx, store.Eq("portfolio_page_id", pageID), store.Eq("model_id", modelID))
}
