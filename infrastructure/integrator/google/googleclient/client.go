package googleclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/budget-pacing-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

const maxPages = 50

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetCustomer(ctx context.Context, customerID, token string) (*googledomain.Customer, error)
	ListCampaigns(ctx context.Context, customerID, token string) ([]googledomain.Row, error)
	ListAdGroups(ctx context.Context, customerID, campaignID, token string) ([]googledomain.Row, error)
	ListCampaignCosts(ctx context.Context, customerID, token string, period domain.Period) ([]googledomain.Row, error)
}

type GoogleAdsClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleAdsClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Platforms.RequestTimeout,
		},
	}
}

// CustomerID remove os hífens do formato exibido no painel (123-456-7890)
func CustomerID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}

func (c *GoogleAdsClient) GetCustomer(ctx context.Context, customerID, token string) (*googledomain.Customer, error) {
	rows, err := c.search(ctx, customerID, token, "SELECT customer.id, customer.time_zone, customer.currency_code FROM customer LIMIT 1")
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 || rows[0].Customer == nil {
		return &googledomain.Customer{ID: CustomerID(customerID)}, nil
	}

	return rows[0].Customer, nil
}

func (c *GoogleAdsClient) ListCampaigns(ctx context.Context, customerID, token string) ([]googledomain.Row, error) {
	return c.search(ctx, customerID, token,
		"SELECT campaign.id, campaign.name, campaign.status, campaign.serving_status, campaign.end_date, campaign_budget.amount_micros "+
			"FROM campaign WHERE campaign.status = 'ENABLED'")
}

// ListAdGroups só aceita id numérico, o valor entra direto no GAQL
func (c *GoogleAdsClient) ListAdGroups(ctx context.Context, customerID, campaignID, token string) ([]googledomain.Row, error) {
	if _, err := strconv.ParseInt(campaignID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: google ads: id de campanha inválido %q", domain.ErrPlatformAPI, campaignID)
	}

	return c.search(ctx, customerID, token, fmt.Sprintf(
		"SELECT ad_group.id, ad_group.name, ad_group.status, ad_group.primary_status "+
			"FROM ad_group WHERE campaign.id = %s", campaignID))
}

func (c *GoogleAdsClient) ListCampaignCosts(ctx context.Context, customerID, token string, period domain.Period) ([]googledomain.Row, error) {
	return c.search(ctx, customerID, token, fmt.Sprintf(
		"SELECT campaign.id, metrics.cost_micros FROM campaign WHERE segments.date BETWEEN '%s' AND '%s'",
		period.Start.Format(time.DateOnly), period.End.Format(time.DateOnly)))
}

// search executa a consulta GAQL seguindo nextPageToken. Resposta sem "results" é lista vazia.
func (c *GoogleAdsClient) search(ctx context.Context, customerID, token, query string) ([]googledomain.Row, error) {
	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:search", c.Cfg.Google.URL, CustomerID(customerID))

	rows := make([]googledomain.Row, 0)
	pageToken := ""

	for page := 0; page < maxPages; page++ {
		response, err := c.post(ctx, endpoint, token, googledomain.SearchRequest{Query: query, PageToken: pageToken})
		if err != nil {
			return nil, err
		}

		rows = append(rows, response.Results...)
		if response.NextPageToken == "" {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}

	return nil, fmt.Errorf("%w: google ads: limite de %d páginas atingido", domain.ErrPlatformAPI, maxPages)
}

func (c *GoogleAdsClient) post(ctx context.Context, endpoint, token string, payload googledomain.SearchRequest) (*googledomain.SearchResponse, error) {
	if timeout := c.Cfg.Platforms.RequestTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao criar a requisição: %w", domain.ErrPlatformAPI, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.Cfg.Google.DeveloperToken)
	if c.Cfg.Google.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", CustomerID(c.Cfg.Google.LoginCustomerID))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para o Google Ads")
		return nil, fmt.Errorf("%w: google ads: %w", domain.ErrPlatformAPI, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler resposta: %w", domain.ErrPlatformAPI, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, handleErrorResponse(resp.StatusCode, raw)
	}

	var response googledomain.SearchResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("%w: google ads: resposta inválida: %w", domain.ErrPlatformAPI, err)
	}

	return &response, nil
}

func handleErrorResponse(status int, body []byte) error {
	var errorResp googledomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Code != 0 {
		if errorResp.IsAuthError() {
			return fmt.Errorf("%w: google ads: credencial inválida: %s", domain.ErrConfiguration, errorResp.String())
		}
		return fmt.Errorf("%w: google ads: status %d: %s", domain.ErrPlatformAPI, status, errorResp.String())
	}

	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: google ads: status %d", domain.ErrConfiguration, status)
	}

	return fmt.Errorf("%w: google ads: status %d", domain.ErrPlatformAPI, status)
}
