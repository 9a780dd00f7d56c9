package domain

import (
	"context"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  *string   `json:"username"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest 创建用户入参；username / email 至少提供一个
type CreateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UserFilter 列表筛选；Query 为空表示不过滤（公共接口始终为空）
type UserFilter struct {
	Query string
}

type UserStore interface {
	Create(ctx context.Context, u *User) error
	// FindByID 找不到时返回 (nil, nil)
	FindByID(ctx context.Context, id int64) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, f UserFilter, offset, limit int) ([]User, int64, error)
	// Delete 仅供管理端使用；连带删除该用户的任务
	Delete(ctx context.Context, id int64) (bool, error)
}
