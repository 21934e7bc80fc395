package asset

import (
	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/modules/asset/handler"
	"asset-vault-server/internal/modules/asset/repo"
	"asset-vault-server/internal/modules/asset/service"
	"asset-vault-server/internal/platform/auth"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(assetStore repo.AssetStore, projects service.ProjectAccess, uploader blob.Uploader, users auth.CurrentUserProvider) *Module {
	moduleService := service.New(assetStore, projects, uploader)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService, users),
	}
}
