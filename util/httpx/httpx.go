// Package httpx holds the JSON response and request-parsing helpers the
// echo controllers share.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"webbooks/model"
	"webbooks/util/apperr"

	"github.com/labstack/echo/v4"
)

var errBadID = errors.New("invalid id")

// Status maps a service error code to an HTTP status.
func Status(code apperr.ErrCode) int {
	switch code {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInvalid:
		return http.StatusBadRequest
	case apperr.ErrConflict, apperr.ErrNotAvailable:
		return http.StatusConflict
	case apperr.ErrInvalidCreds:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Fail answers err. Coded errors carry a client-safe message; anything
// else is logged with the request id and answered with 500.
func Fail(c echo.Context, log *slog.Logger, op string, err error) error {
	code := apperr.Code(err)
	if code == "" {
		if log != nil {
			log.Error(op+" failed",
				"err", err,
				"req_id", RequestID(c),
				"path", c.Path(),
				"method", c.Request().Method,
			)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if code == apperr.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found", "detail": apperr.Message(err)})
	}
	msg := apperr.Message(err)
	if msg == "" {
		msg = string(code)
	}
	return c.JSON(Status(code), echo.Map{"message": msg, "code": code})
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}

// Invalid answers a form that failed validation.
func Invalid(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": fields})
}

func RequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// ID parses a positive integer path parameter.
func ID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// OptionalID parses a positive integer query parameter, nil when absent.
func OptionalID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.New("invalid " + name)
	}
	return &id, nil
}

// Page reads the 1-based ?page parameter. A missing page is the first.
func Page(c echo.Context, size int) (model.PageReq, error) {
	req := model.PageReq{Number: 1, Size: size}
	raw := c.QueryParam("page")
	if raw == "" {
		return req, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return req, errors.New("invalid page")
	}
	req.Number = n
	return req, nil
}
