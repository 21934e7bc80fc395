package router

import (
	"asset-vault-server/internal/modules"

	"github.com/gin-gonic/gin"
)

// registerSharedRoutes 创作者与客户共用的只读接口、评论与收藏。
func registerSharedRoutes(api *gin.RouterGroup, m *modules.AppModules) {
	assets := m.Asset.Handler

	api.GET("/categories", assets.ListCategories)
	api.GET("/statuses", assets.ListStatuses)
	api.GET("/models/:id", assets.GetModel)
	api.GET("/versions/:id", assets.GetVersion)

	api.GET("/versions/:id/comments", assets.ListComments)
	api.POST("/versions/:id/comments", assets.CreateComment)
	api.DELETE("/comments/:id", assets.DeleteComment)

	favourites := m.Favourite.Handler
	api.GET("/favourites", favourites.ListFavourites)
	api.POST("/favourites/toggle", favourites.ToggleFavourite)
	api.GET("/favourites/:version_id", favourites.GetFavouriteStatus)

	api.GET("/portfolio-pages/:id", m.Portfolio.Handler.GetPage)
}
