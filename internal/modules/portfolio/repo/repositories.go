package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"

	"gorm.io/gorm"
)

type PortfolioStore interface {
	Create(ctx context.Context, page *model.PortfolioPage) error
	FindByID(ctx context.Context, id uint) (*model.PortfolioPage, error)
	FindWithModels(ctx context.Context, id uint) (*model.PortfolioPage, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]model.PortfolioPage, error)
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error

	FindModel(ctx context.Context, modelID uint) (*model.AssetModel, error)
	AddModel(ctx context.Context, pageID, modelID uint) (bool, error)
	RemoveModel(ctx context.Context, pageID, modelID uint) (int64, error)
}

func NewPortfolioRepository(db *gorm.DB) PortfolioStore {
	return &PortfolioRepository{store: store.New(db)}
}
