package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskboard/internal/domain"
)

type TaskService struct {
	tasks domain.TaskStore
	users domain.UserStore
	log   *zap.Logger
}

func NewTaskService(tasks domain.TaskStore, users domain.UserStore, log *zap.Logger) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{tasks: tasks, users: users, log: log.Named("task")}
}

// Create 顺序：title -> user_id -> 用户存在 -> status
func (s *TaskService) Create(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, Validation(MsgTitleRequired)
	}
	if req.UserID == nil || *req.UserID == 0 {
		return nil, Validation(MsgUserIDRequired)
	}
	if err := s.ensureUser(ctx, *req.UserID); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
		if !status.Valid() {
			return nil, Validation(MsgInvalidStatus)
		}
	}

	t := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		UserID:      *req.UserID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		// 校验与写入之间用户被删
		if errors.Is(err, domain.ErrOwnerMissing) {
			return nil, Validation(MsgUserNotFound)
		}
		return nil, err
	}
	s.log.Debug("task created", zap.Int64("id", t.ID), zap.Int64("user_id", t.UserID))
	return t, nil
}

// List userID 为 nil 时不按用户过滤
func (s *TaskService) List(ctx context.Context, page, limit int, userID *int64) (Page[domain.Task], error) {
	if err := ValidatePage(page, limit); err != nil {
		return Page[domain.Task]{}, err
	}
	if userID != nil {
		if err := s.ensureUser(ctx, *userID); err != nil {
			return Page[domain.Task]{}, err
		}
	}
	items, total, err := s.tasks.List(ctx, domain.TaskFilter{UserID: userID}, offsetOf(page, limit), limit)
	if err != nil {
		return Page[domain.Task]{}, err
	}
	return newPage(items, page, limit, total), nil
}

// Get 不存在返回 (nil, nil)
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// Update 顺序：任务存在 -> 非空负载 -> title 非空 -> status 合法
func (s *TaskService) Update(ctx context.Context, id int64, req domain.UpdateTaskRequest) (*domain.Task, error) {
	cur, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, NotFound(MsgTaskNotFound)
	}
	if req.Empty() {
		return nil, Validation(MsgNoFieldsToUpdate)
	}
	if req.Title != nil && *req.Title == "" {
		return nil, Validation(MsgTitleRequired)
	}

	patch := domain.TaskPatch{Title: req.Title, Description: req.Description}
	if req.Status != nil && *req.Status != "" {
		st := domain.TaskStatus(*req.Status)
		if !st.Valid() {
			return nil, Validation(MsgInvalidStatus)
		}
		patch.Status = &st
	}

	t, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NotFound(MsgTaskNotFound)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	cur, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return NotFound(MsgTaskNotFound)
	}
	ok, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound(MsgTaskNotFound)
	}
	s.log.Debug("task deleted", zap.Int64("id", id))
	return nil
}

func (s *TaskService) ensureUser(ctx context.Context, id int64) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return Validation(MsgUserNotFound)
	}
	return nil
}
