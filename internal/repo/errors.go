package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"taskboard/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate 把唯一约束 / 外键约束失败转换为领域错误，其余原样返回
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &domain.DuplicateError{Field: dupField(pgErr.ConstraintName + " " + pgErr.Detail), Err: err}
		case pgForeignKeyViolation:
			return domain.ErrOwnerMissing
		}
		return err
	}
	// mysql / 其他驱动只能按文本判断
	if isDupKey(err) {
		return &domain.DuplicateError{Field: dupField(err.Error()), Err: err}
	}
	if isFKViolation(err) {
		return domain.ErrOwnerMissing
	}
	return err
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func isFKViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}

func dupField(hint string) string {
	if strings.Contains(strings.ToLower(hint), "email") {
		return "email"
	}
	return "username"
}
