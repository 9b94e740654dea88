package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luckyspin-lab/backend/config"
	"github.com/luckyspin-lab/backend/pkg/errorx"
	"github.com/luckyspin-lab/backend/pkg/logger"
	"github.com/luckyspin-lab/backend/pkg/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestRouter(t *testing.T) *router.Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	return router.New(db, config.Configs{}, logger.NewLogger(logger.ERROR))
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "fail" {
		return nil, errorx.New(errorx.BadRequest, "Not allow the name fail")
	}

	return &echoResponse{Name: req.Name, Count: req.Count}, nil
}

func Test_Router_GetBindsQuery(t *testing.T) {
	r := newTestRouter(t)
	router.GET(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo?name=alice&count=3", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"code":0,"data":{"name":"alice","count":3}}`, w.Body.String())
}

func Test_Router_PostBindsBody(t *testing.T) {
	r := newTestRouter(t)
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader(`{"name":"bob","count":7}`))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"code":0,"data":{"name":"bob","count":7}}`, w.Body.String())
}

func Test_Router_ErrorEnvelope(t *testing.T) {
	r := newTestRouter(t)
	router.GET(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo?name=fail", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.JSONEq(t, `{"code":100001,"error":"Not allow the name fail"}`, w.Body.String())
}

func Test_Router_MethodGuard(t *testing.T) {
	r := newTestRouter(t)
	router.POST(r, "/echo", echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func Test_Router_BranchMiddlewareIsolation(t *testing.T) {
	r := newTestRouter(t)

	var branchHits int
	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		branchHits++
		return ctx, nil
	})

	router.GET(branch, "/guarded", echo)
	router.GET(r, "/open", echo)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded?name=x", nil))
	require.Equal(t, 1, branchHits)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open?name=x", nil))
	require.Equal(t, 1, branchHits)
}
