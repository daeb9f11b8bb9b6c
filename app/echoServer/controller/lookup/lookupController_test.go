package lookup_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webbooks/app/echoServer/controller/lookup"
	"webbooks/app/echoServer/validation"
	"webbooks/model"
	"webbooks/util/apperr"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type svcMock struct {
	rows map[int64]string
	next int64
}

func (m *svcMock) List(ctx context.Context) ([]model.Named, error) {
	out := []model.Named{}
	for id, name := range m.rows {
		out = append(out, model.Named{ID: id, Name: name})
	}
	return out, nil
}

func (m *svcMock) Get(ctx context.Context, id int64) (*model.Named, error) {
	name, ok := m.rows[id]
	if !ok {
		return nil, apperr.New(apperr.ErrNotFound, "genre not found")
	}
	return &model.Named{ID: id, Name: name}, nil
}

func (m *svcMock) Create(ctx context.Context, name string) (*model.Named, error) {
	m.next++
	m.rows[m.next] = name
	return &model.Named{ID: m.next, Name: name}, nil
}

func (m *svcMock) Update(ctx context.Context, id int64, name string) (*model.Named, error) {
	if _, ok := m.rows[id]; !ok {
		return nil, apperr.New(apperr.ErrNotFound, "genre not found")
	}
	m.rows[id] = name
	return &model.Named{ID: id, Name: name}, nil
}

func (m *svcMock) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.New(apperr.ErrNotFound, "genre not found")
	}
	delete(m.rows, id)
	return nil
}

func newServer() *echo.Echo {
	e := echo.New()
	h := &lookup.Controller{
		Svc:  &svcMock{rows: map[int64]string{}},
		V:    validation.Engine(),
		Log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		What: "genre",
	}
	h.Mount(e.Group("/admin/genres"))
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCRUD(t *testing.T) {
	e := newServer()

	rec := serve(e, http.MethodPost, "/admin/genres", `{"name":"Fantasy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id":1,"name":"Fantasy"}`, rec.Body.String())

	rec = serve(e, http.MethodPut, "/admin/genres/1", `{"name":"High fantasy"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/admin/genres/1", "")
	require.JSONEq(t, `{"id":1,"name":"High fantasy"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/admin/genres", "")
	require.JSONEq(t, `{"data":[{"id":1,"name":"High fantasy"}]}`, rec.Body.String())

	rec = serve(e, http.MethodDelete, "/admin/genres/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/admin/genres/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate_Invalid(t *testing.T) {
	e := newServer()
	rec := serve(e, http.MethodPost, "/admin/genres", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"validation error","errors":{"name":"required"}}`, rec.Body.String())

	rec = serve(e, http.MethodPost, "/admin/genres", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
