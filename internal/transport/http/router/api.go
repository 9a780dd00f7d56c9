package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"taskboard/internal/core/config"
	"taskboard/internal/core/ratelimit"
	"taskboard/internal/core/server"
	mdw "taskboard/internal/transport/http/middleware"
	resp "taskboard/internal/transport/http/response"
)

const healthTimeout = 2 * time.Second

// Deps 两个引擎共用的依赖
type Deps struct {
	Log      *zap.Logger
	Env      string
	HTTP     config.HTTP
	Limiter  ratelimit.Limiter // nil 不限速
	Ping     func(ctx context.Context) error
	Registry *Registry
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{Env: d.Env, CORS: true})
	use(r, d)

	r.GET("/health", health(d.Ping, d.Log))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	d.Registry.MountAPI(api)

	return r
}

// use 中间件顺序：先标记请求，再做准入，最后是观测
func use(r *gin.Engine, d Deps) {
	chain := []gin.HandlerFunc{mdw.RequestID(), mdw.AccessLog(d.Log), mdw.Metrics()}
	if d.Limiter != nil {
		chain = append(chain, mdw.RateLimit(d.Limiter, d.Log.Named("ratelimit")))
	}
	if d.HTTP.MaxInFlight > 0 {
		chain = append(chain, mdw.ConcurrencyLimit(d.HTTP.MaxInFlight))
	}
	if d.HTTP.MaxBodyBytes > 0 {
		chain = append(chain, mdw.MaxBodyBytes(d.HTTP.MaxBodyBytes))
	}
	chain = append(chain, mdw.Timeout(time.Duration(d.HTTP.RequestTimeoutSec)*time.Second))
	r.Use(chain...)
}

// health 并发探测合并为一次 ping
func health(ping func(ctx context.Context) error, l *zap.Logger) gin.HandlerFunc {
	var sf singleflight.Group
	return func(c *gin.Context) {
		if ping != nil {
			_, err, _ := sf.Do("ping", func() (any, error) {
				ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), healthTimeout)
				defer cancel()
				return nil, ping(ctx)
			})
			if err != nil {
				l.Warn("health check failed", zap.Error(err))
				resp.Error(c, http.StatusServiceUnavailable, resp.MsgUnavailable)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
