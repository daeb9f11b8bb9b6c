package httpx_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"webbooks/util/apperr"
	"webbooks/util/httpx"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestStatus(t *testing.T) {
	require.Equal(t, http.StatusNotFound, httpx.Status(apperr.ErrNotFound))
	require.Equal(t, http.StatusBadRequest, httpx.Status(apperr.ErrInvalid))
	require.Equal(t, http.StatusConflict, httpx.Status(apperr.ErrConflict))
	require.Equal(t, http.StatusConflict, httpx.Status(apperr.ErrNotAvailable))
	require.Equal(t, http.StatusUnauthorized, httpx.Status(apperr.ErrInvalidCreds))
	require.Equal(t, http.StatusInternalServerError, httpx.Status(""))
}

func TestFail(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, rec := newCtx("/")
	require.NoError(t, httpx.Fail(c, log, "book detail", apperr.New(apperr.ErrNotFound, "book not found")))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"not found","detail":"book not found"}`, rec.Body.String())

	c, rec = newCtx("/")
	require.NoError(t, httpx.Fail(c, log, "lend", apperr.New(apperr.ErrNotAvailable, "already on loan")))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"message":"already on loan","code":"NOT_AVAILABLE"}`, rec.Body.String())

	c, rec = newCtx("/")
	require.NoError(t, httpx.Fail(c, log, "list", errors.New("db down")))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "db down")
}

func TestPage(t *testing.T) {
	c, _ := newCtx("/books")
	p, err := httpx.Page(c, 10)
	require.NoError(t, err)
	require.Equal(t, 1, p.Number)
	require.Equal(t, 10, p.Size)

	c, _ = newCtx("/books?page=3")
	p, err = httpx.Page(c, 10)
	require.NoError(t, err)
	require.Equal(t, 3, p.Number)

	for _, bad := range []string{"0", "-1", "two"} {
		c, _ = newCtx("/books?page=" + bad)
		_, err = httpx.Page(c, 10)
		require.Error(t, err, bad)
	}
}

func TestIDs(t *testing.T) {
	c, _ := newCtx("/edit1/5")
	c.SetParamNames("id")
	c.SetParamValues("5")
	id, err := httpx.ID(c, "id")
	require.NoError(t, err)
	require.EqualValues(t, 5, id)

	c.SetParamValues("abc")
	_, err = httpx.ID(c, "id")
	require.Error(t, err)

	c, _ = newCtx("/admin/instances?status=2")
	got, err := httpx.OptionalID(c, "status")
	require.NoError(t, err)
	require.EqualValues(t, 2, *got)

	got, err = httpx.OptionalID(c, "borrower")
	require.NoError(t, err)
	require.Nil(t, got)
}
