package domain

import (
	"context"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses 合法状态，顺序即错误提示中的顺序
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	UserID      *int64  `json:"user_id"`
}

// UpdateTaskRequest 部分更新；nil 字段保持不变
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil
}

// TaskPatch 交给存储层合并的字段
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

type TaskFilter struct {
	UserID *int64
}

type TaskStore interface {
	Create(ctx context.Context, t *Task) error
	// FindByID 找不到时返回 (nil, nil)
	FindByID(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context, f TaskFilter, offset, limit int) ([]Task, int64, error)
	// Update 合并 patch 并返回最新记录；记录不存在返回 (nil, nil)
	Update(ctx context.Context, id int64, p TaskPatch) (*Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
