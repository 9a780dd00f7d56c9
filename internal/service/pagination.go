package service

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Page 列表结果：当前页数据 + 分页元信息
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ValidatePage 先校验 page 再校验 limit
func ValidatePage(page, limit int) error {
	if page < 1 {
		return Validation(MsgPageInvalid)
	}
	if limit < 1 || limit > MaxLimit {
		return Validation(MsgLimitInvalid)
	}
	return nil
}

// DescribePage total 为 0 时 totalPages 为 0；超出末页不报错
func DescribePage(page, limit int, total int64) Pagination {
	var pages int64
	if total > 0 && limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// offsetOf 溢出时取 math.MaxInt，存储层按超出末页处理
func offsetOf(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func newPage[T any](items []T, page, limit int, total int64) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{Items: items, Pagination: DescribePage(page, limit, total)}
}
