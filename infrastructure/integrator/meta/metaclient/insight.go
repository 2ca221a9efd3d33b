package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

func (c *MetaClient) ListCampaignInsights(ctx context.Context, accountID, token string, period domain.Period) ([]metadomain.Insight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", period.Start.Format(time.DateOnly), period.End.Format(time.DateOnly))

	params := url.Values{}
	params.Add("level", "campaign")
	params.Add("fields", "campaign_id,spend")
	params.Add("time_range", timeRange)
	params.Add("limit", c.pageLimit())

	return getPaged[metadomain.Insight](ctx, c, c.buildURL(fmt.Sprintf("%s/insights", AccountPath(accountID)), params, token))
}
