package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskboard/internal/core/logger"
	resp "taskboard/internal/transport/http/response"
)

type Options struct {
	Env  string
	CORS bool
}

// Mode app.env → gin 运行模式
func Mode(env string) string {
	switch env {
	case "prod", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	}
	return gin.DebugMode
}

// NewRouter 基础引擎：panic 恢复、405/404 统一 JSON、可选 CORS
func NewRouter(l *zap.Logger, opt Options) *gin.Engine {
	gin.SetMode(Mode(opt.Env))
	gin.DefaultWriter = logger.ToWriter(l.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(l.Named("gin"), zapcore.ErrorLevel)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(ginzap.CustomRecoveryWithZap(l.Named("recovery"), true, func(c *gin.Context, _ any) {
		resp.Abort(c, http.StatusInternalServerError, resp.MsgInternal)
	}))
	if opt.CORS {
		r.Use(cors.Default())
	}
	r.NoMethod(func(c *gin.Context) { resp.Error(c, http.StatusMethodNotAllowed, resp.MsgMethodNotAllowed) })
	r.NoRoute(func(c *gin.Context) { resp.Error(c, http.StatusNotFound, resp.MsgNotFound) })
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration, l *zap.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20, // 1MB
		ErrorLog:          logger.ToStdLogger(l.Named("http.server"), zapcore.WarnLevel),
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
