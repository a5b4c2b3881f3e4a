package main

import (
	"os"

	"github.com/farxc/brake_validator/internal/env"
	"github.com/farxc/brake_validator/internal/logger"
	"github.com/farxc/brake_validator/internal/reconcile"
)

const version = "0.1.0"

func main() {
	const component = "Main"
	envErr := env.Load()

	cfg := config{
		Addr:        env.GetString("ADDR", ":8080"),
		MaxUploadMB: env.GetInt64("MAX_UPLOAD_MB", 20),
		LogLevel:    env.GetString("LOG_LEVEL", "info"),
		LogFormat:   env.GetString("LOG_FORMAT", "text"),
		Version:     version,
	}

	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel), os.Stdout, logger.Format(cfg.LogFormat))
	if envErr != nil {
		appLogger.Warn(component, "Failed to load .env file: error=%v", envErr)
	}

	if err := cfg.validate(); err != nil {
		appLogger.Fatal(component, "Invalid configuration: error=%v", err)
		return
	}

	app := &application{
		config:     cfg,
		logger:     appLogger,
		reconciler: reconcile.NewReconciler(appLogger),
	}

	mux := app.mount()

	if err := app.run(mux); err != nil {
		appLogger.Fatal(component, "Server stopped: error=%v", err)
	}
}
