package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Daniyal-Wajid/ClassTrack/internal/api/middleware"
	"github.com/Daniyal-Wajid/ClassTrack/internal/identity"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/jwt"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/response"
)

// MustGetIdentity 从 Gin 上下文中安全提取请求身份。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetIdentity(c *gin.Context) (identity.Identity, bool) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return identity.Identity{}, false
	}
	ident, ok := v.(identity.Identity)
	if !ok || ident.ID == "" {
		response.Unauthorized(c, 10002, "未认证")
		return identity.Identity{}, false
	}
	return ident, true
}

// MustGetClaims 从 Gin 上下文中安全提取 JWT 声明。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}
