package router

import (
	"asset-vault-server/internal/middleware"
	"asset-vault-server/internal/modules"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
}

func NewRouter(appModules *modules.AppModules) *Router {
	return &Router{modules: appModules}
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/api")
	api.Use(middleware.BodyLimit())

	registerPublicRoutes(api, rt.modules)

	// 以下接口需要登录且账号已审批
	authed := api.Group("")
	authed.Use(middleware.JWTAuth())
	authed.Use(middleware.ApprovalCheck(rt.modules.User.Service, rt.modules.Users))

	registerSharedRoutes(authed, rt.modules)
	registerCreatorRoutes(authed, rt.modules)
	registerClientRoutes(authed, rt.modules)
	registerAdminRoutes(authed, rt.modules)
}
