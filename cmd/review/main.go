package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/database"
	"github.com/vfg2006/budget-pacing-api/internal/bootstrap"
	"github.com/vfg2006/budget-pacing-api/internal/commands"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/pkg/log"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log.Configure(cfg.App.LogLevel)
	return cfg, nil
}

func main() {
	load := func(ctx context.Context) (reviewing.ReviewService, func() error, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}

		app, err := bootstrap.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return app.Reviews, app.Close, nil
	}

	migrate := func(ctx context.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conn, err := database.NewConnection(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()

		return database.Migrate(ctx, conn)
	}

	if err := commands.NewRootCommand(load, migrate).ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("Comando falhou")
		os.Exit(1)
	}
}
