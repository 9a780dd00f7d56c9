package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/domain"
	"taskboard/internal/service"
	resp "taskboard/internal/transport/http/response"
)

const (
	msgUserCreated   = "User created successfully"
	msgInvalidUserID = "Invalid user ID"
)

type UserService interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context, page, limit int) (service.Page[domain.User], error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}

type UserHandler struct {
	svc UserService
	log *zap.Logger
}

func NewUserHandler(svc UserService, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{svc: svc, log: log}
}

// List GET /users?page&limit
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(),
		queryInt(c, "page", service.DefaultPage),
		queryInt(c, "limit", service.DefaultLimit))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.List(c, page.Items, page.Pagination)
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.CreateUserRequest
	if !bindBody(c, &req) {
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Created(c, msgUserCreated, u)
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		resp.Error(c, http.StatusBadRequest, msgInvalidUserID)
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if u == nil {
		resp.Error(c, http.StatusNotFound, service.MsgUserNotFound)
		return
	}
	resp.OK(c, u)
}

// MountAPI 用户资源只读 + 创建，修改与删除返回 405
func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	users := g.Group("/users")
	users.GET("", h.List)
	users.POST("", h.Create)
	users.GET("/:id", h.Get)
	users.PUT("/:id", MethodNotAllowed)
	users.PATCH("/:id", MethodNotAllowed)
	users.DELETE("/:id", MethodNotAllowed)
}

func (h *UserHandler) Priority() int { return 10 }
