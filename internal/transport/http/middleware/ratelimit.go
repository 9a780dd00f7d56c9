package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/core/ratelimit"
	resp "taskboard/internal/transport/http/response"
)

// RateLimit 按客户端 IP 限速；后端出错时放行
func RateLimit(lim ratelimit.Limiter, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := lim.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			l.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			resp.Abort(c, http.StatusTooManyRequests, resp.MsgTooManyRequests)
			return
		}
		c.Next()
	}
}
