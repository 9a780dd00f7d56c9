package service

import "errors"

type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
)

// 对外可见的错误信息，HTTP 层原样返回
const (
	MsgPageInvalid      = "Page must be >= 1"
	MsgLimitInvalid     = "Limit must be between 1 and 100"
	MsgIdentityRequired = "Either username or email must be provided"
	MsgUsernameTaken    = "Username already exists"
	MsgEmailTaken       = "Email already exists"
	MsgTitleRequired    = "Title is required"
	MsgUserIDRequired   = "User ID is required"
	MsgUserNotFound     = "User not found"
	MsgInvalidStatus    = "Invalid status. Must be one of: pending, in-progress, completed"
	MsgTaskNotFound     = "Task not found"
	MsgNoFieldsToUpdate = "At least one field must be provided"
)

// Error 业务错误：校验失败或目标不存在
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }

func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
