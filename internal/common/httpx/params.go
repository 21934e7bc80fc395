package httpx

import (
	"net/http"
	"strconv"

	"asset-vault-server/internal/platform/auth"

	"github.com/gin-gonic/gin"
)

// ParseIDParam 解析路径中的正整数 ID，失败时直接写入 400 响应。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " 参数错误"})
		return 0, false
	}
	return uint(id), true
}

// CurrentUser 从请求中解析当前用户，失败时直接写入 401 响应。
func CurrentUser(c *gin.Context, provider auth.CurrentUserProvider) (auth.CurrentUser, bool) {
	user, err := provider.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return auth.CurrentUser{}, false
	}
	return user, true
}
