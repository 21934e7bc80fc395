package portfolio

import (
	"asset-vault-server/internal/modules/portfolio/handler"
	"asset-vault-server/internal/modules/portfolio/repo"
	"asset-vault-server/internal/modules/portfolio/service"
	"asset-vault-server/internal/platform/auth"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(portfolioStore repo.PortfolioStore, users auth.CurrentUserProvider) *Module {
	moduleService := service.New(portfolioStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService, users),
	}
}
