package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

func (c *MetaClient) GetAdAccount(ctx context.Context, accountID, token string) (*metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,name,currency,timezone_name")

	body, err := c.get(ctx, c.buildURL(AccountPath(accountID), params, token))
	if err != nil {
		return nil, err
	}

	var account metadomain.AdAccount
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("%w: meta: conta inválida: %w", domain.ErrPlatformAPI, err)
	}

	return &account, nil
}
