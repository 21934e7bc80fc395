package project

import (
	"asset-vault-server/internal/modules/project/handler"
	"asset-vault-server/internal/modules/project/repo"
	"asset-vault-server/internal/modules/project/service"
	"asset-vault-server/internal/platform/auth"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(projectStore repo.ProjectStore, clients service.ClientLookup, users auth.CurrentUserProvider) *Module {
	moduleService := service.New(projectStore, clients)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService, users),
	}
}
