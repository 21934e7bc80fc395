package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"asset-vault-server/internal/platform/auth"
	"asset-vault-server/internal/platform/cache"

	"github.com/gin-gonic/gin"
)

const approvalCacheTTL = 1 * time.Minute

// ApprovalChecker 查询账号是否已通过管理员审批。
type ApprovalChecker interface {
	IsApproved(ctx context.Context, userID uint) (bool, error)
}

var (
	// approvalCache 缓存审批状态，减少数据库查询；启用 Redis 时多实例共享
	approvalCache *cache.Loader[bool]
	approvalOnce  sync.Once
)

func approvals() *cache.Loader[bool] {
	approvalOnce.Do(func() {
		approvalCache = cache.NewLoader[bool]("auth:approved", approvalCacheTTL, cache.GetRedisClient())
	})
	return approvalCache
}

// ClearApprovalCache 审批通过后立即生效。
func ClearApprovalCache(ctx context.Context, userID uint) {
	approvals().Invalidate(ctx, strconv.FormatUint(uint64(userID), 10))
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
			c.Abort()
			return
		}

		// Bearer <token>
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误"})
			c.Abort()
			return
		}

		claims, err := auth.ParseLoginToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		auth.Attach(c, claims.User())
		c.Next()
	}
}

// ApprovalCheck 未审批的账号不能访问业务接口。必须在 JWTAuth 之后使用。
func ApprovalCheck(checker ApprovalChecker, users auth.CurrentUserProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		// 管理员账号由启动时创建，总是已审批
		if user.IsAdmin() {
			c.Next()
			return
		}

		key := strconv.FormatUint(uint64(user.ID), 10)
		approved, err := approvals().GetOrLoad(c.Request.Context(), key, func(ctx context.Context) (bool, error) {
			return checker.IsApproved(ctx, user.ID)
		})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
			c.Abort()
			return
		}
		if !approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "账号尚未通过审核"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole 仅允许指定角色访问。
func RequireRole(users auth.CurrentUserProvider, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "当前角色无权访问"})
		c.Abort()
	}
}
