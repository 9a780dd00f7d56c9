package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/domain"
	"taskboard/internal/feature/task"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	m := task.FromDomain(t)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translate(err)
	}
	*t = m.ToDomain()
	return nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	return findTask(r.db.WithContext(ctx), id)
}

func findTask(db *gorm.DB, id int64) (*domain.Task, error) {
	var m task.TaskModel
	err := db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	t := m.ToDomain()
	return &t, nil
}

func (r *TaskRepo) List(ctx context.Context, f domain.TaskFilter, offset, limit int) ([]domain.Task, int64, error) {
	tx := r.db.WithContext(ctx).Model(&task.TaskModel{})
	if f.UserID != nil {
		tx = tx.Where("user_id = ?", *f.UserID)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ms []task.TaskModel
	if err := tx.Offset(offset).Limit(limit).Order("id asc").Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Task, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, total, nil
}

// Update 只写入 patch 中非 nil 的列
func (r *TaskRepo) Update(ctx context.Context, id int64, p domain.TaskPatch) (*domain.Task, error) {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}

	var out *domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cols) > 0 {
			res := tx.Model(&task.TaskModel{}).Where("id = ?", id).Updates(cols)
			if res.Error != nil {
				return res.Error
			}
		}
		var err error
		out, err = findTask(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&task.TaskModel{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
