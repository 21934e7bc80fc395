package report

import (
	"asset-vault-server/internal/modules/report/handler"
	"asset-vault-server/internal/modules/report/service"
	"asset-vault-server/internal/report"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(source report.Source) *Module {
	moduleService := service.New(source)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
