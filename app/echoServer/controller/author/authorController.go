package author

import (
	"log/slog"
	"net/http"
	"time"

	"webbooks/app/echoServer/validation"
	"webbooks/model"
	authorsvc "webbooks/service/author"
	"webbooks/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc      authorsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
	PageSize int
	Now      func() time.Time
}

func (h *Controller) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// GET /authors
func (h *Controller) List(c echo.Context) error {
	page, err := httpx.Page(c, h.PageSize)
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	out, err := h.Svc.List(c.Request().Context(), page)
	if err != nil {
		return httpx.Fail(c, h.Log, "author list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /authors_add: every author plus an empty form whose dates default
// to today.
func (h *Controller) AddForm(c echo.Context) error {
	authors, err := h.Svc.All(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, h.Log, "authors add", err)
	}
	today := model.DateOf(h.now()).String()
	return c.JSON(http.StatusOK, echo.Map{
		"authors": authors,
		"form":    AuthorForm{DateOfBirth: today, DateOfDeath: today},
	})
}

// POST /create
func (h *Controller) Create(c echo.Context) error {
	var req AuthorForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	a := req.toModel(0)
	if err := h.Svc.Create(c.Request().Context(), a); err != nil {
		return httpx.Fail(c, h.Log, "author create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": a.ID, "redirect": "/authors_add"})
}

// GET /edit1/:id
func (h *Controller) EditForm(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	a, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "author edit", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "form": formOf(a)})
}

// POST /edit1/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var req AuthorForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	a := req.toModel(id)
	if err := h.Svc.Update(c.Request().Context(), a); err != nil {
		return httpx.Fail(c, h.Log, "author update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": a, "redirect": "/authors_add"})
}

// POST|DELETE /delete/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpx.Fail(c, h.Log, "author delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted", "redirect": "/authors_add"})
}
