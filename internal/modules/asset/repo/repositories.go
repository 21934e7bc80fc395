package repo

import (
	"context"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/store"

	"gorm.io/gorm"
)

// VersionChanges 一次版本保存需要落库的内容。
type VersionChanges struct {
	VersionID      uint
	ModelID        uint
	ModelName      string
	CategoryID     *uint
	CoverURL       string
	DeleteImageIDs []uint
	NewImageURLs   []string
	FilePath       string
}

type AssetStore interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Statuses(ctx context.Context) ([]model.ModelStatus, error)
	CategoryExists(ctx context.Context, id uint) (bool, error)
	StatusExists(ctx context.Context, id uint) (bool, error)
	EnsureDefaults(ctx context.Context, categories, statuses []string) error

	FindModel(ctx context.Context, id uint) (*model.AssetModel, error)
	FindVersion(ctx context.Context, id uint) (*model.ModelVersion, error)
	CreateModelWithVersion(ctx context.Context, m *model.AssetModel, v *model.ModelVersion, imageURLs []string, coverURL string) error
	CreateVersion(ctx context.Context, v *model.ModelVersion, modelChanges map[string]interface{}, imageURLs []string, coverURL string) error
	ApplyVersionChanges(ctx context.Context, changes VersionChanges) error
	UpdateModel(ctx context.Context, id uint, values map[string]interface{}) error
	DeleteModel(ctx context.Context, id uint) error

	ListComments(ctx context.Context, versionID uint) ([]model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	FindComment(ctx context.Context, id uint) (*model.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

func NewAssetRepository(db *gorm.DB) AssetStore {
	return &AssetRepository{store: store.New(db)}
}
