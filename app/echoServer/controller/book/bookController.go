package book

import (
	"log/slog"
	"net/http"

	"webbooks/app/echoServer/validation"
	"webbooks/model"
	booksvc "webbooks/service/book"
	"webbooks/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc      booksvc.Service
	V        *validator.Validate
	Log      *slog.Logger
	PageSize int
}

// Index
// @Summary      Catalog home
// @Description  Counts of books, copies, available copies and authors
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  model.CatalogCounts
// @Failure      500  {object}  map[string]any
// @Router       / [get]
func (h *Controller) Index(c echo.Context) error {
	counts, err := h.Svc.Index(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, h.Log, "index", err)
	}
	return c.JSON(http.StatusOK, counts)
}

// List
// @Summary      Book list
// @Tags         catalog
// @Produce      json
// @Param        page  query  int  false  "1-based page number"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /books [get]
func (h *Controller) List(c echo.Context) error {
	page, err := httpx.Page(c, h.PageSize)
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	out, err := h.Svc.List(c.Request().Context(), page)
	if err != nil {
		return httpx.Fail(c, h.Log, "book list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// Detail
// @Summary      Book detail
// @Tags         catalog
// @Produce      json
// @Param        pk  path  int  true  "Book id"
// @Success      200  {object}  model.BookDetail
// @Failure      404  {object}  map[string]any
// @Router       /book/{pk} [get]
func (h *Controller) Detail(c echo.Context) error {
	id, err := httpx.ID(c, "pk")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "book detail", err)
	}
	return c.JSON(http.StatusOK, row)
}

// POST /book/create  (librarian)
func (h *Controller) Create(c echo.Context) error {
	var req BookForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	b := req.toModel(0)
	if err := h.Svc.Create(c.Request().Context(), b); err != nil {
		return httpx.Fail(c, h.Log, "book create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": b.ID, "redirect": model.BookURL(b.ID)})
}

// GET /book/update/:pk  (librarian)
func (h *Controller) EditForm(c echo.Context) error {
	id, err := httpx.ID(c, "pk")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	b, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "book edit", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "form": formOf(b)})
}

// POST|PUT /book/update/:pk  (librarian)
func (h *Controller) Update(c echo.Context) error {
	id, err := httpx.ID(c, "pk")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var req BookForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	b := req.toModel(id)
	if err := h.Svc.Update(c.Request().Context(), b); err != nil {
		return httpx.Fail(c, h.Log, "book update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b, "redirect": model.BookURL(b.ID)})
}

// POST|DELETE /book/delete/:pk  (librarian)
func (h *Controller) Delete(c echo.Context) error {
	id, err := httpx.ID(c, "pk")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpx.Fail(c, h.Log, "book delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted", "redirect": "/books"})
}
