// Package reviewing orquestra a revisão de ritmo de gasto: orçamento vigente,
// gasto na plataforma, cálculo do orçamento ideal e gravação do snapshot do dia.
package reviewing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/repository"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/credentialing"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
	"github.com/vfg2006/budget-pacing-api/pkg/utils"
	"golang.org/x/time/rate"
)

type Service struct {
	clients     repository.ClientRepository
	snapshots   repository.ReviewSnapshotRepository
	resolver    budgeting.Resolver
	credentials credentialing.Provider
	adapters    map[domain.Platform]SpendAdapter
	limiter     *rate.Limiter
	location    *time.Location

	inflight *inflightSet
	progress *progressTracker
	now      func() time.Time
}

func NewService(
	cfg *config.Config,
	clients repository.ClientRepository,
	snapshots repository.ReviewSnapshotRepository,
	resolver budgeting.Resolver,
	credentials credentialing.Provider,
	adapters ...SpendAdapter,
) *Service {
	registered := make(map[domain.Platform]SpendAdapter, len(adapters))
	for _, adapter := range adapters {
		registered[adapter.Platform()] = adapter
	}

	limit := rate.Inf
	if cfg.Platforms.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Platforms.RequestsPerSecond)
	}

	return &Service{
		clients:     clients,
		snapshots:   snapshots,
		resolver:    resolver,
		credentials: credentials,
		adapters:    registered,
		limiter:     rate.NewLimiter(limit, 1),
		location:    cfg.App.Location(),
		inflight:    newInflightSet(),
		progress:    newProgressTracker(),
		now:         time.Now,
	}
}

type target struct {
	client    *domain.Client
	platform  domain.Platform
	accountID string
}

// ReviewOne revisa um cliente; sem plataforma, revisa todas em que ele tem conta.
// Falhas por alvo voltam nos outcomes; o erro retornado é só para cliente inexistente
// ou requisição inválida.
func (s *Service) ReviewOne(ctx context.Context, request domain.ReviewRequest) ([]*domain.ReviewOutcome, error) {
	client, err := s.clients.GetByID(ctx, request.ClientID)
	if err != nil {
		return nil, NewTargetError(err, request.ClientID, request.Platform)
	}
	if client == nil {
		return nil, NewTargetError(domain.ErrClientNotFound, request.ClientID, request.Platform)
	}

	targets, err := s.targetsFor(client, request.Platform, request.AccountID)
	if err != nil {
		return nil, err
	}

	outcomes := make([]*domain.ReviewOutcome, 0, len(targets))
	for _, t := range targets {
		outcomes = append(outcomes, s.review(ctx, t, nil, request.DryRun))
	}

	return outcomes, nil
}

func (s *Service) targetsFor(client *domain.Client, platform domain.Platform, accountID string) ([]target, error) {
	if platform == "" {
		platforms := client.ConfiguredPlatforms()
		if len(platforms) == 0 {
			return nil, NewTargetError(
				fmt.Errorf("%w: %s", ErrPlatformNotConfigured, "nenhuma plataforma vinculada"), client.ID, "")
		}

		targets := make([]target, 0, len(platforms))
		for _, p := range platforms {
			targets = append(targets, target{client: client, platform: p, accountID: client.AccountID(p)})
		}
		return targets, nil
	}

	if accountID == "" {
		accountID = client.AccountID(platform)
	}
	if accountID == "" {
		return nil, NewTargetError(ErrPlatformNotConfigured, client.ID, platform)
	}

	return []target{{client: client, platform: platform, accountID: accountID}}, nil
}

// review executa o pipeline completo para um alvo. credential nil é buscada no provider.
func (s *Service) review(ctx context.Context, t target, credential *domain.Credential, dryRun bool) *domain.ReviewOutcome {
	outcome := &domain.ReviewOutcome{
		ClientID:  t.client.ID,
		Platform:  t.platform,
		AccountID: t.accountID,
	}

	key := inflightKey(t.client.ID, t.accountID)
	if !s.inflight.tryAcquire(key) {
		logrus.WithFields(logrus.Fields{
			"client_id":  t.client.ID,
			"platform":   t.platform,
			"account_id": t.accountID,
		}).Info("Revisão já em andamento para o alvo, ignorando")
		outcome.Skipped = true
		return outcome
	}
	defer s.inflight.release(key)

	snapshot, err := s.buildSnapshot(ctx, t, credential)
	if err == nil && !dryRun {
		err = s.snapshots.Upsert(ctx, snapshot)
	}

	logger := logrus.WithFields(logrus.Fields{
		"client_id":  t.client.ID,
		"platform":   t.platform,
		"account_id": t.accountID,
		"dry_run":    dryRun,
	})

	if err != nil {
		reviewErr := NewTargetError(err, t.client.ID, t.platform)
		logger.WithError(err).WithField("code", reviewErr.Code).Error("Falha na revisão de orçamento")
		outcome.Err = reviewErr
		outcome.Error = err.Error()
		return outcome
	}

	logger.WithFields(logrus.Fields{
		"ideal_daily_budget": snapshot.IdealDailyBudget.StringFixed(2),
		"recommendation":     snapshot.RecommendationAction,
	}).Info("Revisão de orçamento concluída")

	outcome.Success = true
	outcome.Snapshot = snapshot
	return outcome
}

func (s *Service) buildSnapshot(ctx context.Context, t target, credential *domain.Credential) (*domain.ReviewSnapshot, error) {
	adapter, ok := s.adapters[t.platform]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrConfiguration, ErrAdapterNotRegistered, t.platform)
	}

	if credential == nil {
		var err error
		credential, err = s.credentials.Credential(ctx, t.platform)
		if err != nil {
			return nil, err
		}
	}

	today := utils.Today(s.now(), s.location)

	budget, err := s.resolver.Resolve(ctx, t.client, t.platform, t.accountID, today)
	if err != nil {
		return nil, err
	}
	if budget.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: orçamento mensal negativo (%s)", domain.ErrCalculation, budget.Amount.StringFixed(2))
	}

	summary, err := adapter.FetchSpend(ctx, t.accountID, credential, pacing.MonthToDate(today))
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: integrador %s não retornou resumo de gasto", domain.ErrCalculation, t.platform)
	}

	remainingDays := pacing.RemainingDays(today)
	result := pacing.Calculate(pacing.Input{
		MonthlyBudget:      budget.Amount,
		TotalSpent:         summary.TotalSpent,
		CurrentDailyBudget: summary.CurrentDailyBudget,
		RemainingDays:      remainingDays,
	})

	return &domain.ReviewSnapshot{
		ClientID:             t.client.ID,
		Platform:             t.platform,
		AccountID:            t.accountID,
		ReviewDate:           today,
		TotalSpent:           summary.TotalSpent.Round(2),
		CurrentDailyBudget:   summary.CurrentDailyBudget.Round(2),
		IdealDailyBudget:     result.IdealDailyBudget,
		UsingCustomBudget:    budget.IsCustom,
		BudgetAmount:         budget.Amount.Round(2),
		CustomBudgetID:       budget.SourceOverrideID,
		CustomBudgetEndDate:  budget.OverrideEndDate,
		RemainingDays:        remainingDays,
		Recommendation:       result.Recommendation.Message,
		RecommendationAction: result.Recommendation.Action,
		RecommendationAmount: result.Recommendation.Amount,
		Campaigns:            summary.Campaigns,
	}, nil
}

// ReviewMany revisa os clientes em sequência, respeitando o limite de requisições.
// Uma falha de alvo nunca interrompe o lote.
func (s *Service) ReviewMany(ctx context.Context, clients []*domain.Client, source string) (*domain.BatchResult, error) {
	var (
		targets  = make([]target, 0, len(clients)*len(domain.Platforms))
		unlinked []*domain.Client
		eligible int
	)
	for _, client := range clients {
		if client == nil {
			continue
		}
		eligible++

		platforms := client.ConfiguredPlatforms()
		if len(platforms) == 0 {
			unlinked = append(unlinked, client)
			continue
		}
		for _, p := range platforms {
			targets = append(targets, target{client: client, platform: p, accountID: client.AccountID(p)})
		}
	}

	if eligible == 0 {
		return nil, NewReviewError(ErrNoClientsFound, apiErrors.ErrNoClientsFound, "nenhum cliente ativo")
	}

	credentials, err := s.preflightCredentials(ctx, targets)
	if err != nil {
		return nil, err
	}

	total := len(targets) + len(unlinked)

	runID := uuid.NewString()
	startedAt := s.now()
	if !s.progress.start(runID, source, total, startedAt) {
		return nil, NewReviewError(ErrBatchInProgress, apiErrors.ErrBatchInProgress, "")
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id": runID,
		"source": source,
	})
	logger.WithField("targets", total).Info("Iniciando revisão de orçamento em lote")

	result := &domain.BatchResult{
		RunID:     runID,
		Source:    source,
		Total:     total,
		Succeeded: make([]*domain.ReviewOutcome, 0, len(targets)),
		Failed:    make([]*domain.ReviewOutcome, 0, len(unlinked)),
		Skipped:   make([]*domain.ReviewOutcome, 0),
		StartedAt: startedAt,
	}

	// cliente sem conta vinculada falha sozinho, sem interromper o lote
	for _, client := range unlinked {
		err := NewTargetError(
			fmt.Errorf("%w: %w: nenhuma plataforma vinculada", domain.ErrConfiguration, ErrPlatformNotConfigured), client.ID, "")
		outcome := &domain.ReviewOutcome{
			ClientID: client.ID,
			Err:      err,
			Error:    err.Error(),
		}
		logger.WithField("client_id", client.ID).Warn("Cliente sem conta de anúncio vinculada")
		result.Failed = append(result.Failed, outcome)
		s.progress.record(outcome)
	}

	for _, t := range targets {
		var outcome *domain.ReviewOutcome
		if err := s.limiter.Wait(ctx); err != nil {
			outcome = &domain.ReviewOutcome{
				ClientID:  t.client.ID,
				Platform:  t.platform,
				AccountID: t.accountID,
				Err:       NewTargetError(fmt.Errorf("%w: %w", domain.ErrPlatformAPI, err), t.client.ID, t.platform),
				Error:     err.Error(),
			}
		} else {
			outcome = s.review(ctx, t, credentials[t.platform], false)
		}

		switch {
		case outcome.Skipped:
			result.Skipped = append(result.Skipped, outcome)
		case outcome.Success:
			result.Succeeded = append(result.Succeeded, outcome)
		default:
			result.Failed = append(result.Failed, outcome)
		}
		s.progress.record(outcome)
	}

	result.CompletedAt = s.now()
	s.progress.finish(result.CompletedAt)

	logger.WithFields(logrus.Fields{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
		"skipped":   len(result.Skipped),
		"duration":  result.CompletedAt.Sub(startedAt).String(),
	}).Info("Revisão de orçamento em lote concluída")

	return result, nil
}

// preflightCredentials busca uma vez a credencial de cada plataforma do lote.
// Plataforma sem credencial inviabiliza o lote inteiro.
func (s *Service) preflightCredentials(ctx context.Context, targets []target) (map[domain.Platform]*domain.Credential, error) {
	credentials := make(map[domain.Platform]*domain.Credential)
	for _, t := range targets {
		if _, ok := credentials[t.platform]; ok {
			continue
		}

		credential, err := s.credentials.Credential(ctx, t.platform)
		if err != nil {
			if errors.Is(err, domain.ErrConfiguration) {
				return nil, &ReviewError{
					Err:      fmt.Errorf("%w: %w", ErrPlatformCredentialMissing, err),
					Code:     apiErrors.ErrPlatformConfiguration,
					Platform: t.platform,
				}
			}
			return nil, NewTargetError(err, "", t.platform)
		}
		credentials[t.platform] = credential
	}

	return credentials, nil
}

func (s *Service) ReviewAllActive(ctx context.Context, source string) (*domain.BatchResult, error) {
	clients, err := s.clients.ListActive(ctx)
	if err != nil {
		return nil, NewReviewError(err, apiErrors.ErrDatabaseOperation, "falha ao listar clientes ativos")
	}

	return s.ReviewMany(ctx, clients, source)
}

func (s *Service) Progress() domain.BatchProgress {
	return s.progress.snapshot()
}

func (s *Service) Latest(ctx context.Context, clientID string, platform domain.Platform) (*domain.ReviewSnapshot, error) {
	snapshot, err := s.snapshots.Latest(ctx, clientID, platform)
	if err != nil {
		return nil, NewTargetError(err, clientID, platform)
	}
	return snapshot, nil
}

func (s *Service) History(ctx context.Context, clientID string, platform domain.Platform, limit int) ([]*domain.ReviewSnapshot, error) {
	snapshots, err := s.snapshots.History(ctx, clientID, platform, limit)
	if err != nil {
		return nil, NewTargetError(err, clientID, platform)
	}
	return snapshots, nil
}

// ResolveBudget expõe o orçamento vigente sem consultar a plataforma
func (s *Service) ResolveBudget(ctx context.Context, clientID string, platform domain.Platform, accountID string, date time.Time) (*domain.ResolvedBudget, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, NewTargetError(err, clientID, platform)
	}
	if client == nil {
		return nil, NewTargetError(domain.ErrClientNotFound, clientID, platform)
	}

	if accountID == "" {
		accountID = client.AccountID(platform)
	}

	budget, err := s.resolver.Resolve(ctx, client, platform, accountID, date)
	if err != nil {
		return nil, NewTargetError(err, clientID, platform)
	}
	return budget, nil
}
