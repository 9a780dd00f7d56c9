package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/core/auth"
	resp "taskboard/internal/transport/http/response"
)

const (
	KeyClaims  = "claims"
	KeyRole    = "role"
	KeySubject = "subject"
)

// AuthJWT 校验 Bearer token；requireRole 为空时只要求登录
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, http.StatusUnauthorized, resp.MsgUnauthorized)
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			_ = c.Error(err)
			resp.Abort(c, http.StatusUnauthorized, resp.MsgUnauthorized)
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, http.StatusForbidden, resp.MsgForbidden)
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyRole, claims.Role)
		c.Set(KeySubject, claims.Subject)
		c.Next()
	}
}
