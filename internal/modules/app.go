package modules

import (
	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/modules/asset"
	assetrepo "asset-vault-server/internal/modules/asset/repo"
	"asset-vault-server/internal/modules/favourite"
	favouriterepo "asset-vault-server/internal/modules/favourite/repo"
	"asset-vault-server/internal/modules/portfolio"
	portfoliorepo "asset-vault-server/internal/modules/portfolio/repo"
	"asset-vault-server/internal/modules/project"
	projectrepo "asset-vault-server/internal/modules/project/repo"
	"asset-vault-server/internal/modules/report"
	"asset-vault-server/internal/modules/user"
	userrepo "asset-vault-server/internal/modules/user/repo"
	"asset-vault-server/internal/platform/auth"
	reportengine "asset-vault-server/internal/report"
)

type AppModules struct {
	Users     auth.CurrentUserProvider
	User      *user.Module
	Project   *project.Module
	Asset     *asset.Module
	Favourite *favourite.Module
	Portfolio *portfolio.Module
	Report    *report.Module
}

func New(
	users auth.CurrentUserProvider,
	userStore userrepo.UserStore,
	projectStore projectrepo.ProjectStore,
	assetStore assetrepo.AssetStore,
	favouriteStore favouriterepo.FavouriteStore,
	portfolioStore portfoliorepo.PortfolioStore,
	reportSource reportengine.Source,
	uploader blob.Uploader,
) *AppModules {
	userModule := user.New(userStore)
	projectModule := project.New(projectStore, userModule.Service, users)

	return &AppModules{
		Users:     users,
		User:      userModule,
		Project:   projectModule,
		Asset:     asset.New(assetStore, projectModule.Service, uploader, users),
		Favourite: favourite.New(favouriteStore, users),
		Portfolio: portfolio.New(portfolioStore, users),
		Report:    report.New(reportSource),
	}
}
