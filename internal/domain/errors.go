package domain

import (
	"errors"
	"fmt"
)

// ErrOwnerMissing 外键约束失败：任务引用的用户不存在
var ErrOwnerMissing = errors.New("referenced user does not exist")

// DuplicateError 唯一约束冲突，Field 为 "username" 或 "email"
type DuplicateError struct {
	Field string
	Err   error
}

func (e *DuplicateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("duplicate %s: %v", e.Field, e.Err)
	}
	return "duplicate " + e.Field
}

func (e *DuplicateError) Unwrap() error { return e.Err }
