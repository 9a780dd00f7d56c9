package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/core/auth"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/transport/http/ez"
	resp "taskboard/internal/transport/http/response"
	"taskboard/pkg/utils"
)

const (
	msgUserDeleted        = "User deleted successfully"
	msgInvalidCredentials = "Invalid credentials"
)

type AdminService interface {
	SearchUsers(ctx context.Context, q string, page, limit int) (service.Page[domain.User], error)
	DeleteUser(ctx context.Context, id int64) error
}

// AdminHandler 管理端：登录、用户检索、删除用户
type AdminHandler struct {
	svc          AdminService
	jwter        *auth.JWTer
	passwordHash string
	log          *zap.Logger
}

func NewAdminHandler(svc AdminService, jwter *auth.JWTer, passwordHash string, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{svc: svc, jwter: jwter, passwordHash: passwordHash, log: log.Named("admin")}
}

type loginIn struct {
	Password string `json:"password"`
}

type loginOut struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type searchIn struct {
	Q     string `form:"q"`
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

// MountAuth 登录接口，挂在未鉴权分组
func (h *AdminHandler) MountAuth(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[loginIn, loginOut]{
		Method:  http.MethodPost,
		Path:    "/auth/login",
		Binder:  ez.BindJSON,
		OnError: h.logError,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			if !utils.CheckPassword(in.Password, h.passwordHash) {
				h.log.Warn("admin login rejected", zap.String("client_ip", c.ClientIP()))
				return loginOut{}, ez.Unauthorized(msgInvalidCredentials)
			}
			tok, exp, err := h.jwter.Issue(auth.RoleAdmin, auth.RoleAdmin)
			if err != nil {
				return loginOut{}, ez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok, ExpiresAt: exp}, nil
		},
	})
}

// MountAdmin 需 admin 角色的接口
func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[searchIn, resp.ListBody[domain.User, service.Pagination]]{
		Method:  http.MethodGet,
		Path:    "/users",
		Binder:  ez.BindQuery,
		Roles:   []string{auth.RoleAdmin},
		OnError: h.logError,
		Handler: func(c *gin.Context, in *searchIn) (resp.ListBody[domain.User, service.Pagination], error) {
			page, err := h.svc.SearchUsers(c.Request.Context(), in.Q,
				queryInt(c, "page", service.DefaultPage),
				queryInt(c, "limit", service.DefaultLimit))
			if err != nil {
				return resp.ListBody[domain.User, service.Pagination]{}, asActionErr(err)
			}
			return resp.ListBody[domain.User, service.Pagination]{Data: page.Items, Pagination: page.Pagination}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, resp.MessageBody]{
		Method:  http.MethodDelete,
		Path:    "/users/:id",
		Binder:  ez.BindNone,
		Roles:   []string{auth.RoleAdmin},
		OnError: h.logError,
		Handler: func(c *gin.Context, _ *struct{}) (resp.MessageBody, error) {
			id, ok := pathID(c)
			if !ok {
				return resp.MessageBody{}, ez.BadRequest(msgInvalidUserID)
			}
			if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
				return resp.MessageBody{}, asActionErr(err)
			}
			return resp.MessageBody{Message: msgUserDeleted}, nil
		},
	})
}

func (h *AdminHandler) logError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.Error("admin action failed", zap.String("route", c.FullPath()), zap.Error(err))
}

// asActionErr 业务错误转 ez.AErr，其余原样交给 OnError
func asActionErr(err error) error {
	switch {
	case service.IsNotFound(err):
		return ez.NotFound(err.Error())
	case service.IsValidation(err):
		return ez.BadRequest(err.Error())
	}
	return err
}
