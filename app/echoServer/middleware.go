// app/echoServer/middleware.go
package echoServer

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"webbooks/app/authz"
	"webbooks/app/echoServer/jwtx"
	"webbooks/util/httpx"
	"webbooks/util/metrics"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type MiddlewareOptions struct {
	Log               *slog.Logger
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSOrigins       []string
}

func RegisterMiddlewares(e *echo.Echo, o MiddlewareOptions) {
	if o.Log == nil {
		o.Log = slog.Default()
	}

	// "/books/" and "/books" are the same route.
	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(o.Log))
	e.Use(Metrics())

	e.Use(echo.WrapMiddleware(cors.Handler(cors.Options{
		AllowedOrigins: o.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", echo.HeaderXRequestID},
		ExposedHeaders: []string{echo.HeaderXRequestID},
		MaxAge:         300,
	})))

	if o.RateLimitRequests > 0 && o.RateLimitWindow > 0 {
		e.Use(echo.WrapMiddleware(httprate.LimitByIP(o.RateLimitRequests, o.RateLimitWindow)))
	}
}

// statusOf is the status the client will see once echo handles err.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func Slog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", statusOf(c, err),
				"latency_ms", lat,
				"req_id", httpx.RequestID(c),
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// Metrics records request counts and latency by route pattern.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordAPIRequest(c.Request().Method, route, statusOf(c, err), time.Since(start))
			return err
		}
	}
}

// Authorize lets the request through when the caller's role may use the
// path and method. It must run after the JWT middleware.
func Authorize(en *authz.Enforcer, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := jwtx.RoleFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			req := c.Request()
			ok, err := en.Allow(role, req.URL.Path, req.Method)
			if err != nil {
				log.Error("authorize failed", "err", err, "req_id", httpx.RequestID(c), "path", req.URL.Path)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			if !ok {
				log.Warn("forbidden", "role", role, "method", req.Method, "path", req.URL.Path, "req_id", httpx.RequestID(c))
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
