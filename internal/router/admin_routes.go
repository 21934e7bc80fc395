package router

import (
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/middleware"
	"asset-vault-server/internal/modules"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup, m *modules.AppModules) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireRole(m.Users, consts.RoleAdmin))

	adminGroup.GET("/users/pending", m.User.Handler.ListPendingUsers)
	adminGroup.POST("/users/:id/approve", m.User.Handler.ApproveUser)

	adminGroup.GET("/reports", m.Report.Handler.ExportReport)
	adminGroup.GET("/reports/preview", m.Report.Handler.PreviewReport)
}
