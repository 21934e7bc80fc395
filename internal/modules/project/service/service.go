package service

import (
	"context"
	"time"

	"asset-vault-server/internal/config"
	"asset-vault-server/internal/graph"
	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/project/repo"
	"asset-vault-server/internal/platform/cache"
)

// ClientLookup 分配客户时校验对方账号。
type ClientLookup interface {
	FindClient(ctx context.Context, id uint) (*model.User, error)
}

type Service struct {
	projectStore repo.ProjectStore
	clients      ClientLookup
	clientView   *graph.ClientViewAssembler
}

func New(projectStore repo.ProjectStore, clients ClientLookup) *Service {
	ttl := time.Duration(config.Get().Cache.TTLSeconds) * time.Second
	return &Service{
		projectStore: projectStore,
		clients:      clients,
		clientView:   graph.NewClientViewAssembler(projectStore, ttl, cache.GetRedisClient()),
	}
}
