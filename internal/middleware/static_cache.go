package middleware

import (
	"asset-vault-server/internal/config"

	"github.com/gin-gonic/gin"
)

// StaticCache 本地存储的图片与模型文件按 storage.cache_control 设置缓存头。
func StaticCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := config.Get().Storage.CacheControl; cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
