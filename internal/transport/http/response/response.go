package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ListBody data 始终为数组
type ListBody[T any, P any] struct {
	Data       []T `json:"data"`
	Pagination P   `json:"pagination"`
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Error: msg})
}

// Abort 中间件中使用，终止后续处理
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, MessageBody{Message: msg, Data: data})
}

func Message(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, MessageBody{Message: msg, Data: data})
}

func List[T any, P any](c *gin.Context, items []T, p P) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, ListBody[T, P]{Data: items, Pagination: p})
}
