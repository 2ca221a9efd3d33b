package main

import (
	"context"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/internal/api"
	"github.com/vfg2006/budget-pacing-api/internal/bootstrap"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/scheduler"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-pacing-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar dependências")
	}
	defer app.Close()

	authenticator := authenticating.NewService(cfg)

	budgetReviewSyncService := scheduler.NewBudgetReviewSyncService(app.Reviews, app.Locker, cfg)
	if err := budgetReviewSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de revisão de orçamento")
	} else {
		logrus.Info("Agendador de revisão de orçamento iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		app.Reviews,
		budgetReviewSyncService,
		authenticator,
		app.DB,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
