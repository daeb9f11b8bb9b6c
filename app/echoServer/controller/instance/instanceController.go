package instance

import (
	"log/slog"
	"net/http"
	"strconv"

	"webbooks/app/echoServer/jwtx"
	"webbooks/app/echoServer/validation"
	"webbooks/model"
	instancesvc "webbooks/service/instance"
	"webbooks/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc      instancesvc.Service
	V        *validator.Validate
	Log      *slog.Logger
	PageSize int
}

// GET /admin/instances?status=&overdue=&borrower=&book=  (librarian)
func (h *Controller) List(c echo.Context) error {
	page, err := httpx.Page(c, h.PageSize)
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	var q instancesvc.Query
	if q.StatusID, err = httpx.OptionalID(c, "status"); err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	if q.BorrowerID, err = httpx.OptionalID(c, "borrower"); err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	if q.BookID, err = httpx.OptionalID(c, "book"); err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	if raw := c.QueryParam("overdue"); raw != "" {
		if q.Overdue, err = strconv.ParseBool(raw); err != nil {
			return httpx.BadRequest(c, "invalid overdue")
		}
	}
	out, err := h.Svc.List(c.Request().Context(), q, page)
	if err != nil {
		return httpx.Fail(c, h.Log, "instance list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) Get(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	bi, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "instance get", err)
	}
	return c.JSON(http.StatusOK, bi)
}

func (h *Controller) Create(c echo.Context) error {
	var req InstanceForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	bi := req.toModel(0)
	if err := h.Svc.Create(c.Request().Context(), bi); err != nil {
		return httpx.Fail(c, h.Log, "instance create", err)
	}
	return c.JSON(http.StatusCreated, bi)
}

func (h *Controller) Update(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var req InstanceForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	bi := req.toModel(id)
	if err := h.Svc.Update(c.Request().Context(), bi); err != nil {
		return httpx.Fail(c, h.Log, "instance update", err)
	}
	return c.JSON(http.StatusOK, bi)
}

func (h *Controller) Delete(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpx.Fail(c, h.Log, "instance delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// POST /admin/instances/:id/lend  (librarian)
func (h *Controller) Lend(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var req LendForm
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}
	due, _ := model.ParseDate(req.DueBack)
	bi, err := h.Svc.Lend(c.Request().Context(), id, req.BorrowerID, due)
	if err != nil {
		return httpx.Fail(c, h.Log, "instance lend", err)
	}
	h.Log.Info("book lent", "instance_id", id, "borrower_id", req.BorrowerID, "due_back", due.String())
	return c.JSON(http.StatusOK, bi)
}

// POST /admin/instances/:id/return  (librarian)
func (h *Controller) Return(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	bi, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, h.Log, "instance return", err)
	}
	h.Log.Info("book returned", "instance_id", id)
	return c.JSON(http.StatusOK, bi)
}

// MyBooks
// @Summary      Copies on loan to the caller
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /mybooks [get]
func (h *Controller) MyBooks(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.MyBooks(c.Request().Context(), uid)
	if err != nil {
		return httpx.Fail(c, h.Log, "mybooks", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Mount registers the admin copy routes under g.
func (h *Controller) Mount(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.POST("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/lend", h.Lend)
	g.POST("/:id/return", h.Return)
}
