package handler

import (
	projectservice "asset-vault-server/internal/modules/project/service"
	"asset-vault-server/internal/platform/auth"
)

type Handler struct {
	projectService *projectservice.Service
	users          auth.CurrentUserProvider
}

func New(projectService *projectservice.Service, users auth.CurrentUserProvider) *Handler {
	return &Handler{projectService: projectService, users: users}
}
