package router

import (
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/middleware"
	"asset-vault-server/internal/modules"

	"github.com/gin-gonic/gin"
)

func registerClientRoutes(api *gin.RouterGroup, m *modules.AppModules) {
	clientGroup := api.Group("/client")
	clientGroup.Use(middleware.RequireRole(m.Users, consts.RoleClient))

	// 项目列表不含模型，展开项目时再按需加载
	clientGroup.GET("/projects", m.Project.Handler.ListClientProjects)
	clientGroup.GET("/projects/:id/models", m.Project.Handler.ListClientProjectModels)
}
