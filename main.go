// Package main WebBooks library catalog API.
//
// @title           WebBooks API
// @version         1.0
// @description     Library catalog: books, authors, copies and loans.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webbooks/app/authz"
	"webbooks/app/echoServer"
	adminctrl "webbooks/app/echoServer/controller/admin"
	authctrl "webbooks/app/echoServer/controller/auth"
	authorctrl "webbooks/app/echoServer/controller/author"
	bookctrl "webbooks/app/echoServer/controller/book"
	instancectrl "webbooks/app/echoServer/controller/instance"
	lookupctrl "webbooks/app/echoServer/controller/lookup"
	"webbooks/app/echoServer/validation"
	"webbooks/app/supervisor"
	"webbooks/config"
	authrepo "webbooks/repository/auth"
	authorrepo "webbooks/repository/author"
	bookrepo "webbooks/repository/book"
	instancerepo "webbooks/repository/instance"
	lookuprepo "webbooks/repository/lookup"
	adminsvc "webbooks/service/admin"
	authsvc "webbooks/service/auth"
	authorsvc "webbooks/service/author"
	booksvc "webbooks/service/book"
	instancesvc "webbooks/service/instance"
	lookupsvc "webbooks/service/lookup"
	"webbooks/util/database"
	"webbooks/util/logging"

	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database.URL, database.Options{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		Tracer:          &database.Tracer{Log: log},
	})
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		applied, err := db.Migrate(ctx)
		if err != nil {
			log.Error("migrate failed", "err", err)
			os.Exit(1)
		}
		log.Info("migrations applied", "versions", applied)
	}

	en, err := authz.New(authz.Config{ModelPath: cfg.Authz.ModelPath, PolicyPath: cfg.Authz.PolicyPath})
	if err != nil {
		log.Error("authz load failed", "err", err)
		os.Exit(1)
	}

	// repos
	gr := lookuprepo.New(db, lookuprepo.Genres)
	lr := lookuprepo.New(db, lookuprepo.Languages)
	sr := lookuprepo.New(db, lookuprepo.Statuses)
	ar := authorrepo.New(db)
	br := bookrepo.New(db)
	ir := instancerepo.New(db)
	ur := authrepo.New(db)

	// services
	gs := lookupsvc.New(gr, "genre", 200)
	ls := lookupsvc.New(lr, "language", 20)
	ss := lookupsvc.New(sr, "status", 20)
	aus := authorsvc.New(ar)
	bs := booksvc.New(br, ir, ar, time.Now)
	is := instancesvc.New(ir, time.Now)
	as := authsvc.New(ur, authsvc.Options{
		Secret:        cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		AdminUsername: cfg.Auth.AdminUsername,
	})
	ads := adminsvc.New(
		adminsvc.Entry{Name: "Genres", URL: "/admin/genres", Counter: gr},
		adminsvc.Entry{Name: "Languages", URL: "/admin/languages", Counter: lr},
		adminsvc.Entry{Name: "Statuses", URL: "/admin/statuses", Counter: sr},
		adminsvc.Entry{Name: "Authors", URL: "/authors", Counter: ar},
		adminsvc.Entry{Name: "Books", URL: "/books", Counter: br},
		adminsvc.Entry{Name: "Book instances", URL: "/admin/instances", Counter: ir},
		adminsvc.Entry{Name: "Users", URL: "/admin/users", Counter: ur},
	)

	// controllers
	v := validation.Engine()
	pageSize := cfg.Catalog.PageSize

	// echo
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = echoServer.JSONSerializer{}
	e.Validator = validation.New()
	echoServer.RegisterMiddlewares(e, echoServer.MiddlewareOptions{
		Log:               log,
		RateLimitRequests: cfg.Security.RateLimitRequests,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		CORSOrigins:       cfg.Security.CORSOrigins,
	})

	echoServer.Register(e, echoServer.C{
		Auth:      &authctrl.Controller{Svc: as, V: v, Log: log},
		Book:      &bookctrl.Controller{Svc: bs, V: v, Log: log, PageSize: pageSize},
		Author:    &authorctrl.Controller{Svc: aus, V: v, Log: log, PageSize: pageSize},
		Instance:  &instancectrl.Controller{Svc: is, V: v, Log: log, PageSize: pageSize},
		Admin:     &adminctrl.Controller{Svc: ads, Log: log, Roles: en.RolesFor},
		Genres:    &lookupctrl.Controller{Svc: gs, V: v, Log: log, What: "genre"},
		Languages: &lookupctrl.Controller{Svc: ls, V: v, Log: log, What: "language"},
		Statuses:  &lookupctrl.Controller{Svc: ss, V: v, Log: log, What: "status"},

		JWTSecret: cfg.Auth.JWTSecret,
		Enforcer:  en,
		Log:       log,
		Ping:      db.Pool.Ping,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.New(log, supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout})
	tree.AddAPIService(supervisor.NewHTTPService(srv, cfg.Server.ShutdownTimeout))
	tree.AddJob(supervisor.NewOverdueMonitor(is, cfg.Jobs.OverdueInterval, log))

	log.Info("starting server", "port", cfg.Server.Port, "env", cfg.Env)
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		log.Error("supervisor stopped", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
