package handler

import (
	assetservice "asset-vault-server/internal/modules/asset/service"
	"asset-vault-server/internal/platform/auth"
)

type Handler struct {
	assetService *assetservice.Service
	users        auth.CurrentUserProvider
}

func New(assetService *assetservice.Service, users auth.CurrentUserProvider) *Handler {
	return &Handler{assetService: assetService, users: users}
}
