package echoServer

import (
	"context"
	"log/slog"
	"net/http"

	"webbooks/app/authz"
	"webbooks/app/echoServer/controller/admin"
	"webbooks/app/echoServer/controller/auth"
	"webbooks/app/echoServer/controller/author"
	"webbooks/app/echoServer/controller/book"
	"webbooks/app/echoServer/controller/instance"
	"webbooks/app/echoServer/controller/lookup"
	"webbooks/app/echoServer/jwtx"
	jwtutil "webbooks/util/jwt"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Author    *author.Controller
	Instance  *instance.Controller
	Admin     *admin.Controller
	Genres    *lookup.Controller
	Languages *lookup.Controller
	Statuses  *lookup.Controller

	JWTSecret string
	Enforcer  *authz.Enforcer
	Log       *slog.Logger
	// Ping backs /health. Nil reports healthy.
	Ping func(ctx context.Context) error
}

// jwtConfig verifies tokens with the same rules they were issued under:
// HS256 only and exp required.
func jwtConfig(secret string) echojwt.Config {
	return echojwt.Config{
		ContextKey:  jwtx.ContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := jwtutil.Parse(auth, secret)
			if err != nil {
				return nil, err
			}
			return &jwt.Token{Claims: claims, Method: jwt.SigningMethodHS256, Valid: true}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		},
	}
}

func Register(e *echo.Echo, c C) {
	if c.Log == nil {
		c.Log = slog.Default()
	}

	// Operations
	e.GET("/health", func(ctx echo.Context) error {
		if c.Ping != nil {
			if err := c.Ping(ctx.Request().Context()); err != nil {
				c.Log.Error("health check failed", "err", err)
				return ctx.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
			}
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public catalog
	e.GET("/", c.Book.Index)
	e.GET("/books", c.Book.List)
	e.GET("/book/:pk", c.Book.Detail)
	e.GET("/authors", c.Author.List)

	// Accounts. Logout reads the token when one is sent but never requires it.
	optional := jwtConfig(c.JWTSecret)
	optional.ContinueOnIgnoredError = true
	optional.ErrorHandler = func(ctx echo.Context, err error) error { return nil }
	e.POST("/accounts/register", c.Auth.Register)
	e.POST("/accounts/login", c.Auth.Login)
	e.POST("/accounts/logout", c.Auth.Logout, echojwt.WithConfig(optional))

	// Authenticated; the policy decides per role.
	guard := []echo.MiddlewareFunc{
		echojwt.WithConfig(jwtConfig(c.JWTSecret)),
		Authorize(c.Enforcer, c.Log),
	}

	e.GET("/mybooks", c.Instance.MyBooks, guard...)
	e.POST("/accounts/password_change", c.Auth.ChangePassword, guard...)

	// Authors
	e.GET("/authors_add", c.Author.AddForm, guard...)
	e.POST("/create", c.Author.Create, guard...)
	e.GET("/edit1/:id", c.Author.EditForm, guard...)
	e.POST("/edit1/:id", c.Author.Update, guard...)
	e.POST("/delete/:id", c.Author.Delete, guard...)
	e.DELETE("/delete/:id", c.Author.Delete, guard...)

	// Books
	e.POST("/book/create", c.Book.Create, guard...)
	e.GET("/book/update/:pk", c.Book.EditForm, guard...)
	e.POST("/book/update/:pk", c.Book.Update, guard...)
	e.PUT("/book/update/:pk", c.Book.Update, guard...)
	e.POST("/book/delete/:pk", c.Book.Delete, guard...)
	e.DELETE("/book/delete/:pk", c.Book.Delete, guard...)

	// Admin
	e.GET("/admin", c.Admin.Index, guard...)
	adm := e.Group("/admin", guard...)
	c.Genres.Mount(adm.Group("/genres"))
	c.Languages.Mount(adm.Group("/languages"))
	c.Statuses.Mount(adm.Group("/statuses"))
	c.Instance.Mount(adm.Group("/instances"))
	adm.GET("/users", c.Auth.Users)
}
