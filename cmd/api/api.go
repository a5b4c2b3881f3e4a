package main

import (
	"net/http"
	"time"

	"github.com/farxc/brake_validator/internal/logger"
	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type application struct {
	config     config
	logger     *logger.Logger
	reconciler *reconcile.Reconciler
}

type config struct {
	Addr        string `validate:"required"`
	MaxUploadMB int64  `validate:"min=1,max=100"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Version     string `validate:"required"`
}

func (c config) validate() error {
	return validator.New().Struct(c)
}

func (c config) maxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/validations", func(r chi.Router) {
			r.Post("/", app.handleCreateValidation)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	const component = "Server"

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info(component, "Server started: addr=%s version=%s", app.config.Addr, app.config.Version)
	return srv.ListenAndServe()
}
