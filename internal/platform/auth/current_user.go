package auth

import (
	"asset-vault-server/internal/consts"
	"errors"

	"github.com/gin-gonic/gin"
)

// CurrentUser 发起请求的用户。业务层所有按用户划分的查询都显式接收它，
// 不从任何全局状态读取。
type CurrentUser struct {
	ID       uint
	Username string
	Role     string
}

func (u CurrentUser) IsCreator() bool { return u.Role == consts.RoleCreator }
func (u CurrentUser) IsClient() bool  { return u.Role == consts.RoleClient }
func (u CurrentUser) IsAdmin() bool   { return u.Role == consts.RoleAdmin }

var ErrNoCurrentUser = errors.New("未获取到用户信息")

// CurrentUserProvider 在应用边缘解析当前用户。
type CurrentUserProvider interface {
	CurrentUser(c *gin.Context) (CurrentUser, error)
}

const contextKey = "current_user"

// GinProvider 从 JWT 中间件写入 gin.Context 的值中读取当前用户。
type GinProvider struct{}

func NewGinProvider() CurrentUserProvider {
	return GinProvider{}
}

func (GinProvider) CurrentUser(c *gin.Context) (CurrentUser, error) {
	value, exists := c.Get(contextKey)
	if !exists {
		return CurrentUser{}, ErrNoCurrentUser
	}
	user, ok := value.(CurrentUser)
	if !ok || user.ID == 0 {
		return CurrentUser{}, ErrNoCurrentUser
	}
	return user, nil
}

// Attach 将当前用户写入请求上下文。
func Attach(c *gin.Context, user CurrentUser) {
	c.Set(contextKey, user)
}
