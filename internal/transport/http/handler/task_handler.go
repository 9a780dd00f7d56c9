package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/domain"
	"taskboard/internal/service"
	resp "taskboard/internal/transport/http/response"
)

const (
	msgTaskCreated   = "Task created successfully"
	msgTaskUpdated   = "Task updated successfully"
	msgTaskDeleted   = "Task deleted successfully"
	msgInvalidTaskID = "Invalid task ID"
)

type TaskService interface {
	Create(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, page, limit int, userID *int64) (service.Page[domain.Task], error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, id int64, req domain.UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskHandler struct {
	svc TaskService
	log *zap.Logger
}

func NewTaskHandler(svc TaskService, log *zap.Logger) *TaskHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHandler{svc: svc, log: log}
}

// List GET /tasks?page&limit&userId
func (h *TaskHandler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(),
		queryInt(c, "page", service.DefaultPage),
		queryInt(c, "limit", service.DefaultLimit),
		ownerFilter(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.List(c, page.Items, page.Pagination)
}

// ownerFilter 空值或 "0" 不过滤；非数字按 0 处理（必然找不到用户）
func ownerFilter(c *gin.Context) *int64 {
	raw := c.Query("userId")
	if raw == "" || raw == "0" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		id = 0
	}
	return &id
}

// Create POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req domain.CreateTaskRequest
	if !bindBody(c, &req) {
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Created(c, msgTaskCreated, t)
}

// Get GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		resp.Error(c, http.StatusBadRequest, msgInvalidTaskID)
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if t == nil {
		resp.Error(c, http.StatusNotFound, service.MsgTaskNotFound)
		return
	}
	resp.OK(c, t)
}

// Update PUT|PATCH /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		resp.Error(c, http.StatusBadRequest, msgInvalidTaskID)
		return
	}
	var req domain.UpdateTaskRequest
	if !bindBody(c, &req) {
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Message(c, msgTaskUpdated, t)
}

// Delete DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		resp.Error(c, http.StatusBadRequest, msgInvalidTaskID)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	resp.Message(c, msgTaskDeleted, nil)
}

// MountAPI PATCH 与 PUT 同义
func (h *TaskHandler) MountAPI(g *gin.RouterGroup) {
	tasks := g.Group("/tasks")
	tasks.GET("", h.List)
	tasks.POST("", h.Create)
	tasks.GET("/:id", h.Get)
	tasks.PUT("/:id", h.Update)
	tasks.PATCH("/:id", h.Update)
	tasks.DELETE("/:id", h.Delete)
}

func (h *TaskHandler) Priority() int { return 20 }
