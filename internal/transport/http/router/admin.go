package router

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/core/auth"
	"taskboard/internal/core/server"
	mdw "taskboard/internal/transport/http/middleware"
)

// LoginMounter 挂在未鉴权分组上的登录接口
type LoginMounter interface{ MountAuth(*gin.RouterGroup) }

func NewAdminEngine(d Deps, login LoginMounter, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{Env: d.Env})
	use(r, d)

	r.GET("/health", health(d.Ping, d.Log))

	v1 := r.Group("/admin/v1")
	login.MountAuth(v1)

	// 其余接口统一要求 admin 角色
	protected := v1.Group("")
	protected.Use(mdw.AuthJWT(jwter, auth.RoleAdmin))
	d.Registry.MountAdmin(protected)

	return r
}
