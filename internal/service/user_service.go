package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskboard/internal/domain"
)

type UserService struct {
	store domain.UserStore
	log   *zap.Logger
}

func NewUserService(store domain.UserStore, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{store: store, log: log.Named("user")}
}

// Create 顺序：身份字段 -> username 唯一 -> email 唯一
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	username := present(req.Username)
	email := present(req.Email)
	if username == nil && email == nil {
		return nil, Validation(MsgIdentityRequired)
	}

	if username != nil {
		taken, err := s.store.UsernameExists(ctx, *username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Validation(MsgUsernameTaken)
		}
	}
	if email != nil {
		taken, err := s.store.EmailExists(ctx, *email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Validation(MsgEmailTaken)
		}
	}

	u := &domain.User{Username: username, Email: email}
	if err := s.store.Create(ctx, u); err != nil {
		// 并发写入时由唯一约束兜底
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			return nil, duplicateMessage(dup.Field)
		}
		return nil, err
	}
	s.log.Debug("user created", zap.Int64("id", u.ID))
	return u, nil
}

func (s *UserService) List(ctx context.Context, page, limit int) (Page[domain.User], error) {
	return s.search(ctx, domain.UserFilter{}, page, limit)
}

// Get 不存在返回 (nil, nil)
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *UserService) search(ctx context.Context, f domain.UserFilter, page, limit int) (Page[domain.User], error) {
	if err := ValidatePage(page, limit); err != nil {
		return Page[domain.User]{}, err
	}
	items, total, err := s.store.List(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return newPage(items, page, limit, total), nil
}

func duplicateMessage(field string) *Error {
	if field == "email" {
		return Validation(MsgEmailTaken)
	}
	return Validation(MsgUsernameTaken)
}

// present 空串视为未提供
func present(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
