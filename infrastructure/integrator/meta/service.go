package meta

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/spend"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

// FetchSpend busca campanhas, conjuntos e gasto do período e aplica a regra de agregação
func (s *MetaIntegrator) FetchSpend(ctx context.Context, accountID string, credential *domain.Credential, period domain.Period) (*domain.SpendSummary, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: cliente sem conta Meta vinculada", domain.ErrConfiguration)
	}
	if credential == nil || credential.AccessToken == "" {
		return nil, fmt.Errorf("%w: credencial Meta ausente", domain.ErrConfiguration)
	}

	token := credential.AccessToken
	logger := logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"platform":   domain.PlatformMeta,
	})

	account, err := s.Client.GetAdAccount(ctx, accountID, token)
	if err != nil {
		logger.WithError(err).Error("meta: falha ao buscar conta de anúncios")
		return nil, err
	}

	loc := spend.LoadLocation(account.TimezoneName, s.cfg.App.Location())

	rawCampaigns, err := s.Client.ListCampaigns(ctx, accountID, token)
	if err != nil {
		logger.WithError(err).Error("meta: falha ao listar campanhas")
		return nil, err
	}

	campaigns := make([]domain.RemoteCampaign, 0, len(rawCampaigns))
	for i := range rawCampaigns {
		campaign, err := rawCampaigns[i].ToRemote(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: meta: %w", domain.ErrPlatformAPI, err)
		}

		if !campaign.IsActive() {
			continue
		}

		rawAdSets, err := s.Client.ListAdSets(ctx, campaign.ID, token)
		if err != nil {
			logger.WithError(err).WithField("campaign_id", campaign.ID).Error("meta: falha ao listar conjuntos de anúncios")
			return nil, err
		}

		for j := range rawAdSets {
			adSet, err := rawAdSets[j].ToRemote(loc)
			if err != nil {
				return nil, fmt.Errorf("%w: meta: %w", domain.ErrPlatformAPI, err)
			}
			campaign.AdSets = append(campaign.AdSets, adSet)
		}

		campaigns = append(campaigns, campaign)
	}

	rawInsights, err := s.Client.ListCampaignInsights(ctx, accountID, token, period)
	if err != nil {
		logger.WithError(err).Error("meta: falha ao buscar insights de gasto")
		return nil, err
	}

	insights := make([]domain.SpendInsight, 0, len(rawInsights))
	for i := range rawInsights {
		insight, err := rawInsights[i].ToSpendInsight()
		if err != nil {
			return nil, fmt.Errorf("%w: meta: %w", domain.ErrPlatformAPI, err)
		}
		insights = append(insights, insight)
	}

	summary := spend.Aggregate(campaigns, insights, s.now().In(loc))

	logger.WithFields(logrus.Fields{
		"campaigns":    len(summary.Campaigns),
		"daily_budget": summary.CurrentDailyBudget.StringFixed(2),
		"total_spent":  summary.TotalSpent.StringFixed(2),
	}).Debug("meta: gasto agregado")

	return summary, nil
}
