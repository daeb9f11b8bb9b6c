package author_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webbooks/app/echoServer/controller/author"
	"webbooks/app/echoServer/validation"
	"webbooks/model"
	"webbooks/util/apperr"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type svcMock struct {
	listFn   func(ctx context.Context, page model.PageReq) (model.Page[model.Author], error)
	allFn    func(ctx context.Context) ([]model.Author, error)
	getFn    func(ctx context.Context, id int64) (*model.Author, error)
	createFn func(ctx context.Context, a *model.Author) error
	updateFn func(ctx context.Context, a *model.Author) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *svcMock) List(ctx context.Context, page model.PageReq) (model.Page[model.Author], error) {
	return m.listFn(ctx, page)
}
func (m *svcMock) All(ctx context.Context) ([]model.Author, error) { return m.allFn(ctx) }
func (m *svcMock) Get(ctx context.Context, id int64) (*model.Author, error) {
	return m.getFn(ctx, id)
}
func (m *svcMock) Create(ctx context.Context, a *model.Author) error { return m.createFn(ctx, a) }
func (m *svcMock) Update(ctx context.Context, a *model.Author) error { return m.updateFn(ctx, a) }
func (m *svcMock) Delete(ctx context.Context, id int64) error        { return m.deleteFn(ctx, id) }

func newController(m *svcMock) *author.Controller {
	return &author.Controller{
		Svc:      m,
		V:        validation.Engine(),
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		PageSize: 10,
		Now:      func() time.Time { return time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func do(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestAddForm_DefaultsToToday(t *testing.T) {
	h := newController(&svcMock{
		allFn: func(ctx context.Context) ([]model.Author, error) {
			return []model.Author{{ID: 1, FirstName: "Stanislaw", LastName: "Lem"}}, nil
		},
	})
	rec := do(t, h.AddForm, http.MethodGet, "/authors_add", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"date_of_birth":"2025-06-10"`)
	require.Contains(t, rec.Body.String(), `"date_of_death":"2025-06-10"`)
	require.Contains(t, rec.Body.String(), `"last_name":"Lem"`)
}

func TestCreate(t *testing.T) {
	var got *model.Author
	h := newController(&svcMock{
		createFn: func(ctx context.Context, a *model.Author) error {
			got = a
			a.ID = 5
			return nil
		},
	})
	body := `{"first_name":"Ray","last_name":"Bradbury","date_of_birth":"1920-08-22","date_of_death":"2012-06-05"}`
	rec := do(t, h.Create, http.MethodPost, "/create", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id":5,"redirect":"/authors_add"}`, rec.Body.String())
	require.Equal(t, "1920-08-22", got.DateOfBirth.String())
}

func TestCreate_FieldErrors(t *testing.T) {
	h := newController(&svcMock{})
	body := `{"first_name":"","last_name":"` + strings.Repeat("x", 101) + `","date_of_birth":"22.08.1920"}`
	rec := do(t, h.Create, http.MethodPost, "/create", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"validation error","errors":{
		"first_name":"required","last_name":"max=100","date_of_birth":"isodate","date_of_death":"required"}}`,
		rec.Body.String())
}

func TestEditForm_NotFound(t *testing.T) {
	h := newController(&svcMock{
		getFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return nil, apperr.New(apperr.ErrNotFound, "author not found")
		},
	})
	rec := do(t, h.EditForm, http.MethodGet, "/edit1/9", "", "id", "9")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdate_DeathBeforeBirth(t *testing.T) {
	h := newController(&svcMock{
		updateFn: func(ctx context.Context, a *model.Author) error {
			require.EqualValues(t, 3, a.ID)
			return apperr.New(apperr.ErrInvalid, "date_of_death precedes date_of_birth")
		},
	})
	body := `{"first_name":"A","last_name":"B","date_of_birth":"2000-01-01","date_of_death":"1999-01-01"}`
	rec := do(t, h.Update, http.MethodPost, "/edit1/3", body, "id", "3")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "date_of_death precedes date_of_birth")
}

func TestDelete(t *testing.T) {
	h := newController(&svcMock{
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	})
	rec := do(t, h.Delete, http.MethodDelete, "/delete/3", "", "id", "3")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Delete, http.MethodDelete, "/delete/x", "", "id", "x")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_BadPage(t *testing.T) {
	h := newController(&svcMock{})
	rec := do(t, h.List, http.MethodGet, "/authors?page=zero", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
