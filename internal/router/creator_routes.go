package router

import (
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/middleware"
	"asset-vault-server/internal/modules"

	"github.com/gin-gonic/gin"
)

func registerCreatorRoutes(api *gin.RouterGroup, m *modules.AppModules) {
	creatorGroup := api.Group("/creator")
	creatorGroup.Use(middleware.RequireRole(m.Users, consts.RoleCreator))

	uploadLimiter := middleware.UploadRateLimit()
	uploadBodyLimit := middleware.UploadBodyLimit()

	projects := m.Project.Handler
	creatorGroup.GET("/projects", projects.ListCreatorProjects)
	creatorGroup.POST("/projects", projects.CreateProject)
	creatorGroup.PATCH("/projects/:id", projects.UpdateProject)
	creatorGroup.DELETE("/projects/:id", projects.DeleteProject)
	creatorGroup.GET("/projects/:id/clients", projects.ListProjectClients)
	creatorGroup.POST("/projects/:id/clients", projects.AssignClient)
	creatorGroup.DELETE("/projects/:id/clients/:user_id", projects.UnassignClient)
	creatorGroup.GET("/clients", m.User.Handler.ListClients)

	assets := m.Asset.Handler
	creatorGroup.POST("/models", uploadBodyLimit, uploadLimiter, assets.CreateModel)
	creatorGroup.POST("/models/:id/versions", uploadBodyLimit, uploadLimiter, assets.UploadVersion)
	creatorGroup.PATCH("/models/:id/status", assets.UpdateModelStatus)
	creatorGroup.DELETE("/models/:id", assets.DeleteModel)
	creatorGroup.PUT("/versions/:id", uploadBodyLimit, uploadLimiter, assets.EditVersion)

	pages := m.Portfolio.Handler
	creatorGroup.GET("/portfolio-pages", pages.ListPages)
	creatorGroup.POST("/portfolio-pages", pages.CreatePage)
	creatorGroup.PATCH("/portfolio-pages/:id", pages.RenamePage)
	creatorGroup.DELETE("/portfolio-pages/:id", pages.DeletePage)
	creatorGroup.POST("/portfolio-pages/:id/models", pages.AddModel)
	creatorGroup.DELETE("/portfolio-pages/:id/models/:model_id", pages.RemoveModel)
}
