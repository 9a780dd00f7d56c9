package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "taskboard/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；先按 Content-Length 拒绝，其余交给 MaxBytesReader
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, http.StatusRequestEntityTooLarge, resp.MsgBodyTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// IsBodyTooLarge 判断绑定错误是否因超出 MaxBodyBytes
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
