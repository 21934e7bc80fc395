package favourite

import (
	"asset-vault-server/internal/modules/favourite/handler"
	"asset-vault-server/internal/modules/favourite/repo"
	"asset-vault-server/internal/modules/favourite/service"
	"asset-vault-server/internal/platform/auth"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(favouriteStore repo.FavouriteStore, users auth.CurrentUserProvider) *Module {
	moduleService := service.New(favouriteStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService, users),
	}
}
