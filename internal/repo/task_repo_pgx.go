package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskboard/internal/domain"
)

const taskColumns = `id, title, description, status, user_id, created_at, updated_at`

type PgxTaskRepo struct {
	pool PgxPool
	log  *zap.Logger
}

func NewPgxTaskRepo(pool PgxPool, log *zap.Logger) *PgxTaskRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &PgxTaskRepo{pool: pool, log: log.With(zap.String("repository", "task"))}
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	t.Status = domain.TaskStatus(status)
	return t, err
}

func (r *PgxTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, status, user_id) VALUES ($1, $2, $3, $4) RETURNING `+taskColumns,
		t.Title, t.Description, string(t.Status), t.UserID)
	created, err := scanTask(row)
	if err != nil {
		if tr := translate(err); tr != err {
			return tr
		}
		r.log.Error("insert task", zap.Error(err))
		return fmt.Errorf("insert task: %w", err)
	}
	*t = created
	return nil
}

func (r *PgxTaskRepo) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query task %d: %w", id, err)
	}
	return &t, nil
}

func (r *PgxTaskRepo) List(ctx context.Context, f domain.TaskFilter, offset, limit int) ([]domain.Task, int64, error) {
	where, args := "", []any{}
	if f.UserID != nil {
		where = ` WHERE user_id = $1`
		args = append(args, *f.UserID)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM tasks%s ORDER BY id LIMIT $%d OFFSET $%d`, taskColumns, where, n+1, n+2)
	rows, err := r.pool.Query(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, total, nil
}

// Update NULL 参数表示保留原值
func (r *PgxTaskRepo) Update(ctx context.Context, id int64, p domain.TaskPatch) (*domain.Task, error) {
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			status      = COALESCE($4, status),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, p.Title, p.Description, status)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	return &t, nil
}

func (r *PgxTaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
