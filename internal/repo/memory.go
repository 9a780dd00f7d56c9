package repo

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"taskboard/internal/domain"
)

// Memory 进程内存储；用户与任务共用一把锁以保证级联删除原子
type Memory struct {
	mu sync.RWMutex

	users   map[int64]domain.User
	userIDs []int64
	nextUID int64

	tasks   map[int64]domain.Task
	taskIDs []int64
	nextTID int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[int64]domain.User),
		tasks: make(map[int64]domain.Task),
		now:   time.Now,
	}
}

func (m *Memory) Users() *MemoryUsers { return &MemoryUsers{m} }
func (m *Memory) Tasks() *MemoryTasks { return &MemoryTasks{m} }

type MemoryUsers struct{ m *Memory }

func (s *MemoryUsers) Create(_ context.Context, u *domain.User) error {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.userIDs {
		cur := m.users[id]
		if u.Username != nil && cur.Username != nil && *cur.Username == *u.Username {
			return &domain.DuplicateError{Field: "username"}
		}
		if u.Email != nil && cur.Email != nil && *cur.Email == *u.Email {
			return &domain.DuplicateError{Field: "email"}
		}
	}

	m.nextUID++
	now := m.now()
	u.ID, u.CreatedAt, u.UpdatedAt = m.nextUID, now, now
	m.users[u.ID] = *u
	m.userIDs = append(m.userIDs, u.ID)
	return nil
}

func (s *MemoryUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	return s.any(func(u domain.User) bool { return u.Username != nil && *u.Username == username }), nil
}

func (s *MemoryUsers) EmailExists(_ context.Context, email string) (bool, error) {
	return s.any(func(u domain.User) bool { return u.Email != nil && *u.Email == email }), nil
}

func (s *MemoryUsers) any(match func(domain.User) bool) bool {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if match(u) {
			return true
		}
	}
	return false
}

func (s *MemoryUsers) List(_ context.Context, f domain.UserFilter, offset, limit int) ([]domain.User, int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	q := strings.ToLower(f.Query)
	matched := make([]domain.User, 0, len(s.m.userIDs))
	for _, id := range s.m.userIDs {
		u := s.m.users[id]
		if q == "" || containsFold(u.Username, q) || containsFold(u.Email, q) {
			matched = append(matched, u)
		}
	}
	return window(matched, offset, limit), int64(len(matched)), nil
}

func (s *MemoryUsers) Delete(_ context.Context, id int64) (bool, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	m.userIDs = slices.DeleteFunc(m.userIDs, func(v int64) bool { return v == id })

	for tid, t := range m.tasks {
		if t.UserID == id {
			delete(m.tasks, tid)
		}
	}
	m.taskIDs = slices.DeleteFunc(m.taskIDs, func(v int64) bool {
		_, ok := m.tasks[v]
		return !ok
	})
	return true, nil
}

type MemoryTasks struct{ m *Memory }

func (s *MemoryTasks) Create(_ context.Context, t *domain.Task) error {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[t.UserID]; !ok {
		return domain.ErrOwnerMissing
	}
	m.nextTID++
	now := m.now()
	t.ID, t.CreatedAt, t.UpdatedAt = m.nextTID, now, now
	m.tasks[t.ID] = *t
	m.taskIDs = append(m.taskIDs, t.ID)
	return nil
}

func (s *MemoryTasks) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	t, ok := s.m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryTasks) List(_ context.Context, f domain.TaskFilter, offset, limit int) ([]domain.Task, int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	matched := make([]domain.Task, 0, len(s.m.taskIDs))
	for _, id := range s.m.taskIDs {
		t := s.m.tasks[id]
		if f.UserID == nil || t.UserID == *f.UserID {
			matched = append(matched, t)
		}
	}
	return window(matched, offset, limit), int64(len(matched)), nil
}

func (s *MemoryTasks) Update(_ context.Context, id int64, p domain.TaskPatch) (*domain.Task, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	t.UpdatedAt = m.now()
	m.tasks[id] = t
	return &t, nil
}

func (s *MemoryTasks) Delete(_ context.Context, id int64) (bool, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}
	delete(m.tasks, id)
	m.taskIDs = slices.DeleteFunc(m.taskIDs, func(v int64) bool { return v == id })
	return true, nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func containsFold(s *string, lowerQ string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), lowerQ)
}
