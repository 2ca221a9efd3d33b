package google

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/spend"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

type GoogleAdsIntegrator struct {
	cfg    *config.Config
	Client googleclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client googleclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *GoogleAdsIntegrator) Platform() domain.Platform {
	return domain.PlatformGoogle
}

func (s *GoogleAdsIntegrator) FetchSpend(ctx context.Context, accountID string, credential *domain.Credential, period domain.Period) (*domain.SpendSummary, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: cliente sem conta Google Ads vinculada", domain.ErrConfiguration)
	}
	if credential == nil || credential.AccessToken == "" {
		return nil, fmt.Errorf("%w: credencial Google Ads ausente", domain.ErrConfiguration)
	}
	if s.cfg.Google.DeveloperToken == "" {
		return nil, fmt.Errorf("%w: GOOGLE_ADS_DEVELOPER_TOKEN não configurado", domain.ErrConfiguration)
	}

	token := credential.AccessToken
	logger := logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"platform":   domain.PlatformGoogle,
	})

	customer, err := s.Client.GetCustomer(ctx, accountID, token)
	if err != nil {
		logger.WithError(err).Error("google: falha ao buscar cliente")
		return nil, err
	}

	loc := spend.LoadLocation(customer.TimeZone, s.cfg.App.Location())

	campaignRows, err := s.Client.ListCampaigns(ctx, accountID, token)
	if err != nil {
		logger.WithError(err).Error("google: falha ao listar campanhas")
		return nil, err
	}

	campaigns := make([]domain.RemoteCampaign, 0, len(campaignRows))
	for i := range campaignRows {
		campaign, err := campaignRows[i].ToRemoteCampaign(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: google: %w", domain.ErrPlatformAPI, err)
		}

		if !campaign.IsActive() {
			continue
		}

		adGroupRows, err := s.Client.ListAdGroups(ctx, accountID, campaign.ID, token)
		if err != nil {
			logger.WithError(err).WithField("campaign_id", campaign.ID).Error("google: falha ao listar grupos de anúncios")
			return nil, err
		}

		for j := range adGroupRows {
			adSet, err := adGroupRows[j].ToRemoteAdSet()
			if err != nil {
				return nil, fmt.Errorf("%w: google: %w", domain.ErrPlatformAPI, err)
			}
			// O término da campanha vale para seus grupos
			adSet.EndTime = campaign.EndTime
			campaign.AdSets = append(campaign.AdSets, adSet)
		}

		campaigns = append(campaigns, campaign)
	}

	costRows, err := s.Client.ListCampaignCosts(ctx, accountID, token, period)
	if err != nil {
		logger.WithError(err).Error("google: falha ao buscar custos")
		return nil, err
	}

	insights := make([]domain.SpendInsight, 0, len(costRows))
	for i := range costRows {
		insight, err := costRows[i].ToSpendInsight(period)
		if err != nil {
			return nil, fmt.Errorf("%w: google: %w", domain.ErrPlatformAPI, err)
		}
		insights = append(insights, insight)
	}

	summary := spend.Aggregate(campaigns, insights, s.now().In(loc))

	logger.WithFields(logrus.Fields{
		"campaigns":    len(summary.Campaigns),
		"daily_budget": summary.CurrentDailyBudget.StringFixed(2),
		"total_spent":  summary.TotalSpent.StringFixed(2),
	}).Debug("google: gasto agregado")

	return summary, nil
}
