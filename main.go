// Package main library borrowing API.
//
// @title           Library Borrowing API
// @version         1.0
// @description     Library catalog and borrowing-request management (books, categories, requests, users).
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
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer"
	activityctrl "github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/activity"
	authctrl "github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/auth"
	bookctrl "github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/book"
	borrowctrl "github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/borrow"
	categoryctrl "github.com/vanchien2973/MidAssignment-sub000/app/echoServer/controller/category"
	"github.com/vanchien2973/MidAssignment-sub000/app/echoServer/validation"
	"github.com/vanchien2973/MidAssignment-sub000/config"
	activityrepo "github.com/vanchien2973/MidAssignment-sub000/repository/activity"
	bookrepo "github.com/vanchien2973/MidAssignment-sub000/repository/book"
	categoryrepo "github.com/vanchien2973/MidAssignment-sub000/repository/category"
	notifierrepo "github.com/vanchien2973/MidAssignment-sub000/repository/notifier"
	requestrepo "github.com/vanchien2973/MidAssignment-sub000/repository/request"
	userrepo "github.com/vanchien2973/MidAssignment-sub000/repository/user"
	activitysvc "github.com/vanchien2973/MidAssignment-sub000/service/activity"
	authsvc "github.com/vanchien2973/MidAssignment-sub000/service/auth"
	booksvc "github.com/vanchien2973/MidAssignment-sub000/service/book"
	borrowsvc "github.com/vanchien2973/MidAssignment-sub000/service/borrow"
	categorysvc "github.com/vanchien2973/MidAssignment-sub000/service/category"
	"github.com/vanchien2973/MidAssignment-sub000/service/policy"
	"github.com/vanchien2973/MidAssignment-sub000/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB over pgx
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	cr := categoryrepo.New(db)
	rr := requestrepo.New(db)
	ar := activityrepo.New(db)

	var nf notifierrepo.Repo
	if cfg.WebhookURL != "" {
		nf = notifierrepo.NewHTTP(cfg.WebhookURL)
	} else {
		nf = notifierrepo.NewNoop()
	}

	// services
	pol := policy.New(policy.Limits{
		MonthlyRequestCap:  cfg.MonthlyRequestCap,
		MaxBooksPerRequest: cfg.MaxBooksPerRequest,
	})
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	cs := categorysvc.New(cr)
	acts := activitysvc.New(ar)
	bors := borrowsvc.New(db, rr, br, ar, nf, pol, borrowsvc.Config{
		DueDays:         cfg.DueDays,
		MaxExtension:    time.Duration(cfg.MaxExtensionDays) * 24 * time.Hour,
		StrictInventory: cfg.StrictInventory,
	})

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	categoryC := &categoryctrl.Controller{Svc: cs, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: bors, V: v, Log: log}
	activityC := &activityctrl.Controller{Svc: acts, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Book:     bookC,
		Category: categoryC,
		Borrow:   borrowC,
		Activity: activityC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
