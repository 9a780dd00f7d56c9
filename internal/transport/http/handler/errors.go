package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/service"
	mdw "taskboard/internal/transport/http/middleware"
	resp "taskboard/internal/transport/http/response"
)

// fail 业务错误按类型映射状态码，其他一律 500 并记录日志
func fail(c *gin.Context, log *zap.Logger, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case service.KindNotFound:
			resp.Error(c, http.StatusNotFound, se.Message)
		default:
			resp.Error(c, http.StatusBadRequest, se.Message)
		}
		return
	}
	_ = c.Error(err)
	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	resp.Error(c, http.StatusInternalServerError, resp.MsgInternal)
}

// bindBody 空 body 视为空请求
func bindBody(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return true
	case mdw.IsBodyTooLarge(err):
		resp.Error(c, http.StatusRequestEntityTooLarge, resp.MsgBodyTooLarge)
	default:
		resp.Error(c, http.StatusBadRequest, resp.MsgInvalidBody)
	}
	return false
}

// pathID 非正整数返回 false
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// queryInt 缺省取 def；无法解析按 0 处理，交由分页校验报错
func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// MethodNotAllowed 用户资源不支持修改与删除
func MethodNotAllowed(c *gin.Context) {
	resp.Error(c, http.StatusMethodNotAllowed, resp.MsgMethodNotAllowed)
}
