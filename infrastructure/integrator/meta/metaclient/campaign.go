package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) ListCampaigns(ctx context.Context, accountID, token string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,daily_budget,stop_time")
	params.Add("effective_status", "['ACTIVE']")
	params.Add("limit", c.pageLimit())

	return getPaged[metadomain.Campaign](ctx, c, c.buildURL(fmt.Sprintf("%s/campaigns", AccountPath(accountID)), params, token))
}

func (c *MetaClient) ListAdSets(ctx context.Context, campaignID, token string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,campaign_id,status,effective_status,daily_budget,end_time")
	params.Add("limit", c.pageLimit())

	return getPaged[metadomain.AdSet](ctx, c, c.buildURL(fmt.Sprintf("%s/adsets", campaignID), params, token))
}
