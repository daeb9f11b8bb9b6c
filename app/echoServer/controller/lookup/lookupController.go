package lookup

import (
	"log/slog"
	"net/http"

	"webbooks/app/echoServer/validation"
	lookupsvc "webbooks/service/lookup"
	"webbooks/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NameForm is the genre, language and status form.
type NameForm struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Controller serves admin CRUD for one lookup table.
type Controller struct {
	Svc lookupsvc.Service
	V   *validator.Validate
	Log *slog.Logger
	// What names the rows in log lines.
	What string
}

func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, h.Log, h.What+" list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func (h *Controller) Get(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, h.What+" get", err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *Controller) Create(c echo.Context) error {
	var req NameForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	row, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return httpx.Fail(c, h.Log, h.What+" create", err)
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *Controller) Update(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var req NameForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	row, err := h.Svc.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return httpx.Fail(c, h.Log, h.What+" update", err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *Controller) Delete(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpx.Fail(c, h.Log, h.What+" delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// Mount registers the CRUD routes under g.
func (h *Controller) Mount(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.POST("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
