package admin

import (
	"log/slog"
	"net/http"

	"webbooks/app/echoServer/jwtx"
	adminsvc "webbooks/service/admin"
	"webbooks/util/httpx"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc adminsvc.Service
	Log *slog.Logger
	// Roles expands the caller's role with the roles it inherits.
	Roles func(role string) []string
}

// Index
// @Summary      Admin index
// @Description  Registered models with their row counts
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /admin [get]
func (h *Controller) Index(c echo.Context) error {
	models, err := h.Svc.Index(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, h.Log, "admin index", err)
	}
	role, _ := jwtx.RoleFromContext(c)
	roles := []string{role}
	if h.Roles != nil {
		roles = h.Roles(role)
	}
	return c.JSON(http.StatusOK, echo.Map{"role": role, "roles": roles, "models": models})
}
