package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/database"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/google"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-pacing-api/infrastructure/lock"
	"github.com/vfg2006/budget-pacing-api/infrastructure/repository"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/credentialing"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
)

// App reúne as dependências compartilhadas pela API e pela CLI
type App struct {
	Config  *config.Config
	DB      *database.Connection
	Reviews *reviewing.Service
	Locker  lock.Locker

	closers []func() error
}

// New conecta ao banco, aplica migrações se configurado e monta o serviço de revisão
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco (%s): %w", cfg.Database.Driver, err)
	}
	logrus.WithField("driver", conn.Driver).Info("Conexão com o banco estabelecida com sucesso")

	app := &App{
		Config:  cfg,
		DB:      conn,
		closers: []func() error{conn.Close},
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, conn); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("erro ao aplicar migrações: %w", err)
		}
		logrus.Info("Migrações aplicadas")
	}

	clientRepo := repository.NewClientRepository(conn)
	snapshotRepo := repository.NewReviewSnapshotRepository(conn)
	overrideRepo := repository.NewBudgetOverrideRepository(conn)
	credentialRepo := repository.NewCredentialRepository(conn)

	resolver := budgeting.NewResolver(overrideRepo, cfg.App.Location())
	credentials := credentialing.NewProvider(credentialRepo, cfg)

	metaIntegrator := meta.New(cfg, metaclient.NewClient(cfg))
	googleIntegrator := google.New(cfg, googleclient.NewClient(cfg))

	app.Reviews = reviewing.NewService(cfg, clientRepo, snapshotRepo, resolver, credentials, metaIntegrator, googleIntegrator)

	if cfg.BudgetReviewSync.DistributedLock {
		redisLocker, err := lock.NewRedisLocker(ctx, cfg.Redis)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.Locker = redisLocker
		app.closers = append(app.closers, redisLocker.Close)
	}

	return app, nil
}

// Close libera as conexões na ordem inversa de abertura
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
