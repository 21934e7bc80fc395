package repo

import (
	"context"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/report"
	"asset-vault-server/internal/store"

	"gorm.io/gorm"
)

// ReportRepository 为报表引擎提供扁平查询，日期范围在数据库侧过滤。
type ReportRepository struct {
	store *store.Store
}

func NewReportRepository(db *gorm.DB) report.Source {
	return &ReportRepository{store: store.New(db)}
}

func (r *ReportRepository) Projects(ctx context.Context, dr report.DateRange) ([]model.Project, error) {
	return store.For[model.Project](r.store, "projects").Find(ctx, store.Query{
		Filters:  dr.Filters("created_at"),
		Includes: []store.Include{store.With("Creator")},
		Order:    "id asc",
	})
}

func (r *ReportRepository) Models(ctx context.Context) ([]model.AssetModel, error) {
	return store.For[model.AssetModel](r.store, "models").Find(ctx, store.Query{Order: "id asc"})
}

func (r *ReportRepository) Favourites(ctx context.Context, dr report.DateRange) ([]model.Favourite, error) {
	return store.For[model.Favourite](r.store, "favourites").Find(ctx, store.Query{
		Filters: dr.Filters("created_at"),
		Includes: []store.Include{
			store.With("Version"),
			store.With("Version.Model"),
			store.With("Version.Model.Project"),
			store.With("Version.Model.Project.Creator"),
		},
		Order: "id asc",
	})
}

func (r *ReportRepository) Clients(ctx context.Context, dr report.DateRange) ([]model.User, error) {
	filters := append([]store.Filter{
		store.Eq("role", consts.RoleClient),
		store.Eq("approved", true),
	}, dr.Filters("created_at")...)
	return store.For[model.User](r.store, "users").Find(ctx, store.Query{Filters: filters, Order: "id asc"})
}

func (r *ReportRepository) ProjectClients(ctx context.Context) ([]model.ProjectClient, error) {
	return store.For[model.ProjectClient](r.store, "project_clients").Find(ctx, store.Query{})
}
