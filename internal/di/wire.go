//go:build wireinject
// +build wireinject

package di

import (
	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/modules"
	assetrepo "asset-vault-server/internal/modules/asset/repo"
	favouriterepo "asset-vault-server/internal/modules/favourite/repo"
	portfoliorepo "asset-vault-server/internal/modules/portfolio/repo"
	projectrepo "asset-vault-server/internal/modules/project/repo"
	reportrepo "asset-vault-server/internal/modules/report/repo"
	userrepo "asset-vault-server/internal/modules/user/repo"
	"asset-vault-server/internal/platform/auth"
	"asset-vault-server/internal/router"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, uploader blob.Uploader) (*Application, error) {
	wire.Build(
		auth.NewGinProvider,
		userrepo.NewUserRepository,
		projectrepo.NewProjectRepository,
		assetrepo.NewAssetRepository,
		favouriterepo.NewFavouriteRepository,
		portfoliorepo.NewPortfolioRepository,
		reportrepo.NewReportRepository,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
