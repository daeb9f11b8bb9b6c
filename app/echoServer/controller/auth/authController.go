package auth

import (
	"log/slog"
	"net/http"

	"webbooks/app/echoServer/jwtx"
	"webbooks/app/echoServer/validation"
	"webbooks/model"
	authsvc "webbooks/service/auth"
	"webbooks/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register a reader account with email/username uniqueness and validation
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email/username already taken"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /accounts/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return httpx.BadRequest(c, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return httpx.Fail(c, ct.Log, "register", err)
	}

	ct.Log.Info("user registered", "user_id", u.ID, "role", u.Role)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"user":    u,
		"token":   token,
	})
}

// Login
// @Summary      Login
// @Description  Login with username + password, returns JWT
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /accounts/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return httpx.BadRequest(c, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		return httpx.Fail(c, ct.Log, "login", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
		"role":    u.Role,
	})
}

// Logout
// @Summary      Logout
// @Description  Tokens are stateless; the client discards its token
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /accounts/logout [post]
func (ct *Controller) Logout(c echo.Context) error {
	if name, err := jwtx.UsernameFromContext(c); err == nil {
		ct.Log.Info("user logged out", "username", name)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out", "redirect": "/"})
}

// ChangePassword
// @Summary      Change password
// @Description  Replace the caller's password after checking the current one
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.PasswordChangeReq  true  "Password change payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /accounts/password_change [post]
func (ct *Controller) ChangePassword(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req model.PasswordChangeReq
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return httpx.Invalid(c, validation.Fields(err))
	}

	if err := ct.Svc.ChangePassword(c.Request().Context(), uid, req); err != nil {
		return httpx.Fail(c, ct.Log, "password change", err)
	}
	ct.Log.Info("password changed", "user_id", uid)
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// GET /admin/users  (librarian)
func (ct *Controller) Users(c echo.Context) error {
	users, err := ct.Svc.Users(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, ct.Log, "user list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}
