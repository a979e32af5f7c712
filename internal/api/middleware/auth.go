package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/heart-badge/pkg/response"
)

const userIDKey = "auth.userID"

// Auth 校验 Bearer token 并把用户身份放进上下文。
// 不带 token 的请求照常通过（匿名身份）；带了但校验失败的请求拒绝。
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Unauthorized(c, "token has no subject")
			c.Abort()
			return
		}
		c.Set(userIDKey, sub)
		c.Next()
	}
}

// RequireUser 在需要登录身份的路由上使用。
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 返回已认证用户 id；匿名请求返回 nil。
func CurrentUser(c *gin.Context) *string {
	v, ok := c.Get(userIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}
