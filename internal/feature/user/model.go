package user

import (
	"time"

	"taskboard/internal/domain"
)

// UserModel username / email 可空，非空时唯一（NULL 不参与唯一约束）
type UserModel struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Username *string `gorm:"uniqueIndex:uniq_users_username;size:64"`
	Email    *string `gorm:"uniqueIndex:uniq_users_email;size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (m UserModel) ToDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDomain(u *domain.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
