package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	// UserContextKey 当前用户上下文键
	UserContextKey = "current_user"
)

// UserContext 认证后的用户信息
type UserContext struct {
	UserID string
	Role   string
}

// IsAdmin 是否管理员
func (u *UserContext) IsAdmin() bool {
	return u.Role == "ADMIN"
}

// Middleware JWT 认证中间件
func Middleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
			c.Abort()
			return
		}

		token := ExtractTokenFromBearer(authHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的令牌格式"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "令牌验证失败: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(UserContextKey, &UserContext{
			UserID: claims.UserID,
			Role:   claims.Role,
		})

		c.Next()
	}
}

// CurrentUser 从上下文取出认证用户，未认证时返回 nil
func CurrentUser(c *gin.Context) *UserContext {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*UserContext)
	if !ok {
		return nil
	}
	return user
}
