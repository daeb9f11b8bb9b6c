package echoServer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type titleForm struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

func newCtx(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJSONSerializer_RoundTrip(t *testing.T) {
	c, rec := newCtx(`{"title":"Dune","pages":412}`)
	var f titleForm
	require.NoError(t, JSONSerializer{}.Deserialize(c, &f))
	require.Equal(t, titleForm{Title: "Dune", Pages: 412}, f)

	require.NoError(t, JSONSerializer{}.Serialize(c, f, ""))
	require.JSONEq(t, `{"title":"Dune","pages":412}`, rec.Body.String())
}

func TestJSONSerializer_BadInput(t *testing.T) {
	for _, body := range []string{`{"title" "Dune"}`, `{"pages":"many"}`} {
		c, _ := newCtx(body)
		var f titleForm
		err := JSONSerializer{}.Deserialize(c, &f)
		var he *echo.HTTPError
		require.True(t, errors.As(err, &he), body)
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
}
