package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"asset-vault-server/internal/config"

	"github.com/gin-gonic/gin"
)

// BodyLimit 限制普通 JSON 请求体大小，multipart 上传由 UploadBodyLimit 处理。
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			c.Next()
			return
		}
		maxMB := config.Get().Server.MaxBodyMB
		if maxMB <= 0 {
			maxMB = 2
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(maxMB)*1024*1024)
		c.Next()
	}
}

// UploadBodyLimit 模型文件与预览图一起提交，上限取 storage.max_upload_mb。
func UploadBodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxMB := config.Get().Storage.MaxUploadMB
		if maxMB <= 0 {
			maxMB = 200
		}
		maxBytes := int64(maxMB) * 1024 * 1024

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("上传内容不能超过 %dMB", maxMB)})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
