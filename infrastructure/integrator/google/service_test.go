package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

var (
	credential = &domain.Credential{Platform: domain.PlatformGoogle, AccessToken: "ya29.token"}
	period     = domain.Period{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
)

// newSearchServer responde conforme o recurso consultado no GAQL
func newSearchServer(t *testing.T, answer func(query string) (int, string)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v17/customers/1234567890/googleAds:search", r.URL.Path)
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		status, response := answer(string(body))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server
}

func newIntegrator(serverURL string) *GoogleAdsIntegrator {
	cfg := &config.Config{
		App:       config.App{Timezone: "UTC"},
		Google:    config.Google{URL: serverURL + "/v17", DeveloperToken: "dev-token"},
		Platforms: config.Platforms{RequestTimeout: time.Second},
	}

	integrator := New(cfg, googleclient.NewClient(cfg))
	integrator.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return integrator
}

func TestGoogleAdsIntegrator_FetchSpend(t *testing.T) {
	server := newSearchServer(t, func(query string) (int, string) {
		switch {
		case strings.Contains(query, "FROM customer"):
			return http.StatusOK, `{"results":[{"customer":{"id":"1234567890","timeZone":"America/Sao_Paulo"}}]}`
		case strings.Contains(query, "FROM ad_group WHERE campaign.id = 1"):
			return http.StatusOK, `{"results":[{"adGroup":{"id":"11","status":"ENABLED","primaryStatus":"ELIGIBLE"}}]}`
		case strings.Contains(query, "FROM ad_group WHERE campaign.id = 2"):
			return http.StatusOK, `{"results":[{"adGroup":{"id":"21","status":"PAUSED","primaryStatus":"PAUSED"}}]}`
		case strings.Contains(query, "metrics.cost_micros"):
			return http.StatusOK, `{"results":[
				{"campaign":{"id":"1"},"metrics":{"costMicros":"250500000"}},
				{"campaign":{"id":"2"},"metrics":{"costMicros":"100000000"}}
			]}`
		case strings.Contains(query, "FROM campaign"):
			return http.StatusOK, `{"results":[
				{"campaign":{"id":"1","name":"Pesquisa","status":"ENABLED","servingStatus":"SERVING"},"campaignBudget":{"amountMicros":"50000000"}},
				{"campaign":{"id":"2","name":"Display","status":"ENABLED","servingStatus":"SERVING"},"campaignBudget":{"amountMicros":"30000000"}}
			]}`
		}
		return http.StatusBadRequest, `{}`
	})

	summary, err := newIntegrator(server.URL).FetchSpend(context.Background(), "123-456-7890", credential, period)
	require.NoError(t, err)

	// Campanha 2 não tem grupo ativo, então seu orçamento não conta
	assert.Equal(t, "50.00", summary.CurrentDailyBudget.StringFixed(2))
	assert.Equal(t, "350.50", summary.TotalSpent.StringFixed(2))
	assert.Equal(t, "America/Sao_Paulo", summary.Timezone)
}

func TestGoogleAdsIntegrator_FetchSpend_Pagination(t *testing.T) {
	server := newSearchServer(t, func(query string) (int, string) {
		switch {
		case strings.Contains(query, "FROM customer"):
			return http.StatusOK, `{}`
		case strings.Contains(query, "FROM ad_group"):
			return http.StatusOK, `{"results":[{"adGroup":{"id":"x","status":"ENABLED","primaryStatus":"ELIGIBLE"}}]}`
		case strings.Contains(query, "metrics.cost_micros"):
			return http.StatusOK, `{}`
		case strings.Contains(query, `"pageToken":"p2"`):
			return http.StatusOK, `{"results":[{"campaign":{"id":"2","status":"ENABLED","servingStatus":"SERVING"},"campaignBudget":{"amountMicros":"10000000"}}]}`
		case strings.Contains(query, "FROM campaign"):
			return http.StatusOK, `{"results":[{"campaign":{"id":"1","status":"ENABLED","servingStatus":"SERVING"},"campaignBudget":{"amountMicros":"10000000"}}],"nextPageToken":"p2"}`
		}
		return http.StatusBadRequest, `{}`
	})

	summary, err := newIntegrator(server.URL).FetchSpend(context.Background(), "1234567890", credential, period)
	require.NoError(t, err)
	assert.Equal(t, "20.00", summary.CurrentDailyBudget.StringFixed(2))
	assert.True(t, summary.TotalSpent.IsZero())
}

func TestGoogleAdsIntegrator_FetchSpend_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectedErr error
	}{
		{
			name:        "Token inválido",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"code":401,"message":"Request had invalid authentication credentials.","status":"UNAUTHENTICATED"}}`,
			expectedErr: domain.ErrConfiguration,
		},
		{
			name:        "Cota excedida",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			expectedErr: domain.ErrPlatformAPI,
		},
		{
			name:        "Erro interno sem corpo",
			status:      http.StatusBadGateway,
			body:        ``,
			expectedErr: domain.ErrPlatformAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newSearchServer(t, func(string) (int, string) {
				return tt.status, tt.body
			})

			_, err := newIntegrator(server.URL).FetchSpend(context.Background(), "1234567890", credential, period)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestGoogleAdsIntegrator_MissingConfiguration(t *testing.T) {
	integrator := newIntegrator("http://127.0.0.1:1")

	_, err := integrator.FetchSpend(context.Background(), "", credential, period)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = integrator.FetchSpend(context.Background(), "1", nil, period)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	integrator.cfg.Google.DeveloperToken = ""
	_, err = integrator.FetchSpend(context.Background(), "1", credential, period)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
