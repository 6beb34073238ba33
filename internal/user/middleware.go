package user

import (
	"net/http"
	"strings"

	"github.com/SlpAus/netnuggets-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// gin上下文中存放当前用户身份的键。
// website等不依赖本包的模块通过相同的字符串字面量读取。
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// bearerToken 从Authorization头中提取Bearer令牌，没有则返回空串
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// resolveToken 校验令牌并确认对应的用户仍然存在。
// 令牌有效但用户已被管理员删除时同样视为未认证。
func resolveToken(c *gin.Context) (*User, bool) {
	t := bearerToken(c)
	if t == "" {
		return nil, false
	}
	claims, err := token.ParseToken(t)
	if err != nil {
		return nil, false
	}
	u, err := GetByUUID(claims.UserID)
	if err != nil {
		return nil, false
	}
	return u, true
}

// RequireAuth 要求请求携带有效的Bearer令牌，否则返回401。
// 认证通过后将用户UUID和角色写入gin上下文。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := resolveToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		c.Set(UserIDKey, u.UUID)
		c.Set(UserRoleKey, u.Role)
		c.Next()
	}
}

// RequireAdmin 在RequireAuth之后使用，要求当前用户是管理员
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// OptionalAuth 尝试解析令牌但从不拒绝请求。
// 公开列表接口用它来支持“收藏优先”排序。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := resolveToken(c); ok {
			c.Set(UserIDKey, u.UUID)
			c.Set(UserRoleKey, u.Role)
		}
		c.Next()
	}
}
