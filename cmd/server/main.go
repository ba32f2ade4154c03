package main

import (
	"flag"
	"log/slog"
	"net/http"

	"github.com/monohq/mono/internal/app"
	"github.com/monohq/mono/internal/config"
	"github.com/monohq/mono/internal/db"
	"github.com/monohq/mono/internal/logger"
	"github.com/monohq/mono/internal/routes"
)

var rollback = flag.Bool("rollback", false, "roll back the most recent migration and exit")

func main() {
	flag.Parse()

	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	if *rollback {
		if err := rollbackMigration(cfg); err != nil {
			slog.Error("rollback failed", "error", err)
			panic(err)
		}
		return
	}

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}

func rollbackMigration(cfg *config.Config) error {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer database.Close()

	return db.MigrateDown(database.DB, cfg.DBDriver)
}
