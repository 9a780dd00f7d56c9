package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"taskboard/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func ctxFor(target string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c, w
}

func TestPathID(t *testing.T) {
	cases := map[string]bool{"1": true, "42": true, "0": false, "-1": false, "x": false, "1e3": false, " 7": false}
	for raw, ok := range cases {
		c, _ := ctxFor("/", gin.Param{Key: "id", Value: raw})
		_, got := pathID(c)
		assert.Equal(t, ok, got, raw)
	}
}

func TestQueryInt(t *testing.T) {
	c, _ := ctxFor("/?page=3&limit=abc")
	assert.Equal(t, 3, queryInt(c, "page", 1))
	assert.Equal(t, 0, queryInt(c, "limit", 10))
	assert.Equal(t, 7, queryInt(c, "missing", 7))
}

func TestOwnerFilter(t *testing.T) {
	for _, q := range []string{"/", "/?userId=", "/?userId=0"} {
		c, _ := ctxFor(q)
		assert.Nil(t, ownerFilter(c), q)
	}
	c, _ := ctxFor("/?userId=5")
	assert.Equal(t, int64(5), *ownerFilter(c))
	c, _ = ctxFor("/?userId=five")
	assert.Equal(t, int64(0), *ownerFilter(c))
}

func TestFail(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	c, w := ctxFor("/")
	fail(c, log, service.Validation(service.MsgTitleRequired))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Title is required"}`, w.Body.String())

	c, w = ctxFor("/")
	fail(c, log, service.NotFound(service.MsgTaskNotFound))
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = ctxFor("/")
	fail(c, log, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	assert.Equal(t, 1, logs.Len())
}
