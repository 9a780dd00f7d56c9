package ez

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	resp "taskboard/internal/transport/http/response"
)

// EZ 在路由组上一行注册动作接口
type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // 自行从 c.Param 取
)

// AErr 动作错误：Code 即 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int      // 成功状态码，默认 200
	Roles   []string // 非空时要求 c.GetString("role") 命中其一
	Handler func(c *gin.Context, in *I) (O, error)
	// OnError 非 AErr 错误的回调（记录日志），响应固定为 500
	OnError func(c *gin.Context, err error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if len(a.Roles) > 0 && !slices.Contains(a.Roles, c.GetString("role")) {
			resp.Error(c, http.StatusForbidden, resp.MsgForbidden)
			return
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
				bindErr = err
			}
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			resp.Error(c, http.StatusBadRequest, resp.MsgInvalidBody)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) && ae.Code < http.StatusInternalServerError {
				resp.Error(c, ae.Code, ae.Error())
				return
			}
			if a.OnError != nil {
				a.OnError(c, err)
			}
			resp.Error(c, http.StatusInternalServerError, resp.MsgInternal)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
