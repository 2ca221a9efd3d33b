package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/lock"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
)

const (
	SourceScheduler = "scheduler"
	batchLockKey    = "budget-review-batch"
)

// BudgetReviewSyncConfig representa a configuração do agendador de revisão de orçamento
type BudgetReviewSyncConfig struct {
	Interval    time.Duration
	LockTTL     time.Duration
	SyncEnabled bool
}

// BudgetReviewSyncService dispara a revisão de todos os clientes ativos em intervalo fixo.
// É o único responsável por ignorar disparos enquanto um lote está em andamento.
type BudgetReviewSyncService struct {
	scheduler *gocron.Scheduler
	config    BudgetReviewSyncConfig
	reviewer  reviewing.Reviewer
	locker    lock.Locker
	ctx       context.Context

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncSource      string
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.BatchResult
	lastError           string
}

// NewBudgetReviewSyncService cria o agendador; locker nil desativa a trava distribuída
func NewBudgetReviewSyncService(reviewer reviewing.Reviewer, locker lock.Locker, appConfig *config.Config) *BudgetReviewSyncService {
	syncConfig := BudgetReviewSyncConfig{
		Interval:    appConfig.BudgetReviewSync.Interval,
		LockTTL:     appConfig.BudgetReviewSync.LockTTL,
		SyncEnabled: appConfig.BudgetReviewSync.Enabled,
	}
	if syncConfig.Interval <= 0 {
		syncConfig.Interval = 5 * time.Minute
	}
	if syncConfig.LockTTL <= 0 {
		syncConfig.LockTTL = 30 * time.Minute
	}

	logrus.WithFields(logrus.Fields{
		"interval":         syncConfig.Interval.String(),
		"lock_ttl":         syncConfig.LockTTL.String(),
		"sync_enabled":     syncConfig.SyncEnabled,
		"distributed_lock": locker != nil,
	}).Info("Configuração do agendador de revisão de orçamento carregada")

	return &BudgetReviewSyncService{
		scheduler: gocron.NewScheduler(appConfig.App.Location()),
		config:    syncConfig,
		reviewer:  reviewer,
		locker:    locker,
		ctx:       context.Background(),
	}
}

// Start inicia o agendador
func (s *BudgetReviewSyncService) Start(ctx context.Context) error {
	s.ctx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Revisão de orçamento agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando agendador de revisão de orçamento")

	_, err := s.scheduler.Every(s.config.Interval).WaitForSchedule().Do(func() {
		if !s.tryStart(SourceScheduler) {
			logrus.Info("Revisão de orçamento já em andamento, ignorando disparo agendado")
			return
		}
		s.run(SourceScheduler)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar revisão de orçamento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de revisão de orçamento")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *BudgetReviewSyncService) tryStart(source string) bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncSource = source
	s.lastSyncStartedAt = time.Now()
	return true
}

// run executa o lote; tryStart deve ter retornado true antes
func (s *BudgetReviewSyncService) run(source string) {
	var (
		result *domain.BatchResult
		err    error
	)

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		if result != nil {
			s.lastResult = result
		}
		s.lastError = ""
		if err != nil {
			s.lastError = err.Error()
		}
		s.syncMutex.Unlock()
	}()

	logger := logrus.WithField("source", source)

	if s.locker != nil {
		release, obtained, lockErr := s.locker.Obtain(s.ctx, batchLockKey, s.config.LockTTL)
		if lockErr != nil {
			err = lockErr
			logger.WithError(lockErr).Error("Erro ao obter trava distribuída da revisão de orçamento")
			return
		}
		if !obtained {
			logger.Info("Outra instância está executando a revisão de orçamento, ignorando")
			return
		}
		defer func() {
			if releaseErr := release(context.Background()); releaseErr != nil {
				logger.WithError(releaseErr).Warn("Falha ao liberar trava distribuída")
			}
		}()
	}

	startTime := time.Now()
	logger.Info("Iniciando revisão de orçamento para todos os clientes ativos")

	result, err = s.reviewer.ReviewAllActive(s.ctx, source)
	if err != nil {
		logger.WithError(err).Error("Erro na revisão de orçamento em lote")
		return
	}

	logger.WithFields(logrus.Fields{
		"run_id":    result.RunID,
		"duration":  time.Since(startTime).String(),
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
		"skipped":   len(result.Skipped),
	}).Info("Revisão de orçamento em lote concluída")
}

// TriggerManualSync inicia um lote em background; retorna false se já houver um em andamento
func (s *BudgetReviewSyncService) TriggerManualSync(source string) bool {
	if source == "" {
		source = "manual"
	}

	if !s.tryStart(source) {
		logrus.WithField("source", source).Info("Revisão de orçamento já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.WithField("source", source).Info("Iniciando revisão de orçamento manual")
	go s.run(source)
	return true
}

// IsRunning indica se há lote em andamento nesta instância
func (s *BudgetReviewSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *BudgetReviewSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_interval":          s.config.Interval.String(),
		"distributed_lock":       s.locker != nil,
		"running":                s.syncRunning,
		"last_sync_source":       s.lastSyncSource,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"progress":               s.reviewer.Progress(),
	}

	if s.lastResult != nil {
		status["last_run_id"] = s.lastResult.RunID
		status["last_succeeded"] = len(s.lastResult.Succeeded)
		status["last_failed"] = len(s.lastResult.Failed)
		status["last_skipped"] = len(s.lastResult.Skipped)
	}

	return status
}
