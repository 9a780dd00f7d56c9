package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"taskboard/internal/domain"
)

// AdminService 管理端：用户检索与删除（公共接口不提供删除）
type AdminService struct {
	users *UserService
	store domain.UserStore
	log   *zap.Logger
}

func NewAdminService(store domain.UserStore, log *zap.Logger) *AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminService{
		users: NewUserService(store, log),
		store: store,
		log:   log.Named("admin"),
	}
}

func (s *AdminService) SearchUsers(ctx context.Context, q string, page, limit int) (Page[domain.User], error) {
	return s.users.search(ctx, domain.UserFilter{Query: strings.TrimSpace(q)}, page, limit)
}

// DeleteUser 连带删除该用户的任务
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound(MsgUserNotFound)
	}
	s.log.Info("user deleted", zap.Int64("id", id))
	return nil
}
