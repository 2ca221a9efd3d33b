package metaclient

import (
	"context"
	"net/http"
	"strings"

	metadomain "github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

const maxPages = 50

type Client interface {
	GetAdAccount(ctx context.Context, accountID, token string) (*metadomain.AdAccount, error)
	ListCampaigns(ctx context.Context, accountID, token string) ([]metadomain.Campaign, error)
	ListAdSets(ctx context.Context, campaignID, token string) ([]metadomain.AdSet, error)
	ListCampaignInsights(ctx context.Context, accountID, token string, period domain.Period) ([]metadomain.Insight, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Platforms.RequestTimeout,
		},
	}
}

// AccountPath aceita o ID com ou sem o prefixo act_
func AccountPath(accountID string) string {
	accountID = strings.TrimSpace(accountID)
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}
