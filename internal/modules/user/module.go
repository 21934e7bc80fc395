package user

import (
	"asset-vault-server/internal/modules/user/handler"
	"asset-vault-server/internal/modules/user/repo"
	"asset-vault-server/internal/modules/user/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(userStore repo.UserStore) *Module {
	moduleService := service.New(userStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
