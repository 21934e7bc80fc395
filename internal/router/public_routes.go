package router

import (
	"asset-vault-server/internal/modules"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup, m *modules.AppModules) {
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	authGroup := api.Group("/auth")
	authGroup.POST("/register", m.User.Handler.Register)
	authGroup.POST("/login", m.User.Handler.Login)
}
