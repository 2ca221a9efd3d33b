package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-pacing-api/internal/api/handler/router"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing/mocks"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
	"github.com/vfg2006/budget-pacing-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type fakeTrigger struct {
	accept  bool
	sources []string
}

func (f *fakeTrigger) TriggerManualSync(source string) bool {
	f.sources = append(f.sources, source)
	return f.accept
}

func (f *fakeTrigger) GetStatus() map[string]any {
	return map[string]any{"is_running": !f.accept}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

type fixture struct {
	reviewer *mocks.MockReviewer
	reader   *mocks.MockSnapshotReader
	trigger  *fakeTrigger
	router   router.Router
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		reviewer: mocks.NewMockReviewer(ctrl),
		reader:   mocks.NewMockSnapshotReader(ctrl),
		trigger:  &fakeTrigger{accept: true},
	}
	f.router = router.New(
		router.WithRoutes(Healthcheck(fakePinger{})...),
		router.WithRoutes(Reviews(f.reviewer, f.reader, f.trigger)...),
		router.WithRoutes(CronJobs(f.trigger)...),
	)
	return f
}

func (f *fixture) do(method, path, body string, roleID int) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if roleID > 0 {
		claims := &domain.Claims{UserID: 7, UserRoleID: roleID}
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestTriggerReview_Batch(t *testing.T) {
	t.Run("Dispara o lote e responde 202", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"executeReview":true,"source":"painel"}`, middleware.RoleAdmin)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, []string{"painel"}, f.trigger.sources)
	})

	t.Run("Lote em andamento responde 409", func(t *testing.T) {
		f := newFixture(t)
		f.trigger.accept = false
		f.reviewer.EXPECT().Progress().Return(domain.BatchProgress{State: domain.BatchStateRunning, Total: 10, Processed: 3})

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"executeReview":true,"source":"painel"}`, middleware.RoleSupervisor)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrBatchInProgress, decodeAPIError(t, rec).Code)
	})

	t.Run("Simulação em lote é recusada", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"executeReview":false,"source":"painel"}`, middleware.RoleAdmin)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.trigger.sources)
	})

	t.Run("Cliente sem permissão recebe 403", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"executeReview":true,"source":"painel"}`, middleware.RoleClient)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTriggerReview_Validation(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode string
	}{
		{name: "JSON inválido", body: `{"source":`, expectedCode: apiErrors.ErrInvalidFormat},
		{name: "Sem source", body: `{"clientId":"c1"}`, expectedCode: apiErrors.ErrInvalidRequest},
		{name: "Plataforma desconhecida", body: `{"clientId":"c1","platform":"tiktok","source":"painel"}`, expectedCode: apiErrors.ErrInvalidRequest},
		{name: "Conta sem plataforma", body: `{"clientId":"c1","accountId":"act_1","source":"painel"}`, expectedCode: apiErrors.ErrMissingRequiredData},
		{name: "Conta sem cliente", body: `{"accountId":"act_1","platform":"meta","executeReview":true,"source":"painel"}`, expectedCode: apiErrors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/v1/reviews/trigger", tt.body, middleware.RoleAdmin)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec).Code)
		})
	}

	t.Run("Detalha o campo inválido", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"clientId":"c1"}`, middleware.RoleAdmin)

		details, ok := decodeAPIError(t, rec).Details.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "required", details["Source"])
	})
}

func TestTriggerReview_SingleClient(t *testing.T) {
	t.Run("Simulação não persiste e responde 200", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().
			ReviewOne(gomock.Any(), domain.ReviewRequest{ClientID: "c1", Platform: domain.PlatformMeta, DryRun: true}).
			Return([]*domain.ReviewOutcome{{
				ClientID: "c1",
				Platform: domain.PlatformMeta,
				Success:  true,
				Snapshot: &domain.ReviewSnapshot{IdealDailyBudget: decimal.NewFromInt(120)},
			}}, nil)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"clientId":"c1","platform":"meta","source":"painel"}`, middleware.RoleAdmin)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			DryRun   bool                    `json:"dry_run"`
			Outcomes []*domain.ReviewOutcome `json:"outcomes"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.DryRun)
		require.Len(t, body.Outcomes, 1)
		assert.True(t, body.Outcomes[0].Success)
	})

	t.Run("Falha parcial ainda responde 200", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewOne(gomock.Any(), gomock.Any()).Return([]*domain.ReviewOutcome{
			{ClientID: "c1", Platform: domain.PlatformMeta, Success: true},
			{ClientID: "c1", Platform: domain.PlatformGoogle, Error: "falhou", Err: reviewing.NewTargetError(domain.ErrPlatformAPI, "c1", domain.PlatformGoogle)},
		}, nil)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"clientId":"c1","executeReview":true,"source":"painel"}`, middleware.RoleAdmin)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Todos os alvos falharam usa o código do primeiro", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewOne(gomock.Any(), gomock.Any()).Return([]*domain.ReviewOutcome{
			{ClientID: "c1", Platform: domain.PlatformMeta, Error: "sem conta", Err: reviewing.NewTargetError(domain.ErrConfiguration, "c1", domain.PlatformMeta)},
		}, nil)

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"clientId":"c1","executeReview":true,"source":"painel"}`, middleware.RoleAdmin)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrPlatformConfiguration, decodeAPIError(t, rec).Code)
	})

	t.Run("Cliente inexistente responde 404", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewOne(gomock.Any(), gomock.Any()).
			Return(nil, reviewing.NewTargetError(domain.ErrClientNotFound, "c9", ""))

		rec := f.do(http.MethodPost, "/v1/reviews/trigger", `{"clientId":"c9","executeReview":true,"source":"painel"}`, middleware.RoleAdmin)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrClientNotFound, decodeAPIError(t, rec).Code)
	})
}

func TestGetReviewProgress(t *testing.T) {
	f := newFixture(t)
	f.reviewer.EXPECT().Progress().Return(domain.BatchProgress{State: domain.BatchStateRunning, Total: 4, Processed: 1, Fraction: 0.25})

	rec := f.do(http.MethodGet, "/v1/reviews/progress", "", middleware.RoleClient)

	require.Equal(t, http.StatusOK, rec.Code)

	var progress domain.BatchProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, domain.BatchStateRunning, progress.State)
	assert.InDelta(t, 0.25, progress.Fraction, 0.0001)
}

func TestGetLatestReview(t *testing.T) {
	t.Run("Retorna o snapshot mais recente", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().Latest(gomock.Any(), "c1", domain.PlatformGoogle).
			Return(&domain.ReviewSnapshot{ID: "s1", ClientID: "c1", Platform: domain.PlatformGoogle}, nil)

		rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/google/latest", "", middleware.RoleClient)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"s1"`)
	})

	t.Run("Sem snapshot responde 404", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().Latest(gomock.Any(), "c1", domain.PlatformMeta).Return(nil, nil)

		rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/meta/latest", "", middleware.RoleClient)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrSnapshotNotFound, decodeAPIError(t, rec).Code)
	})

	t.Run("Plataforma inválida responde 400", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/tiktok/latest", "", middleware.RoleClient)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Erro de banco responde 500", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().Latest(gomock.Any(), "c1", domain.PlatformMeta).Return(nil, domain.ErrPersistence)

		rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/meta/latest", "", middleware.RoleClient)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
	})
}

func TestGetReviewHistory(t *testing.T) {
	t.Run("Usa o limite padrão", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().History(gomock.Any(), "c1", domain.PlatformMeta, 30).
			Return([]*domain.ReviewSnapshot{{ID: "s2"}, {ID: "s1"}}, nil)

		rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/meta/history", "", middleware.RoleClient)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"limit":30`)
	})

	t.Run("Respeita o limite informado", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().History(gomock.Any(), "c1", domain.PlatformMeta, 7).Return(nil, nil)

		rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/meta/history?limit=7", "", middleware.RoleClient)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	for _, limit := range []string{"0", "abc", "367"} {
		t.Run("Limite inválido "+limit, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodGet, "/v1/clients/c1/reviews/meta/history?limit="+limit, "", middleware.RoleClient)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetResolvedBudget(t *testing.T) {
	t.Run("Data informada", func(t *testing.T) {
		f := newFixture(t)
		date := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
		overrideID := "ov1"
		f.reader.EXPECT().ResolveBudget(gomock.Any(), "c1", domain.PlatformMeta, "act_1", date).
			Return(&domain.ResolvedBudget{Amount: decimal.NewFromInt(5000), IsCustom: true, SourceOverrideID: &overrideID}, nil)

		rec := f.do(http.MethodGet, "/v1/clients/c1/budgets/meta?date=2024-03-20&account_id=act_1", "", middleware.RoleClient)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"is_custom":true`)
	})

	t.Run("Sem data usa o dia atual", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().ResolveBudget(gomock.Any(), "c1", domain.PlatformMeta, "", time.Time{}).
			Return(&domain.ResolvedBudget{Amount: decimal.NewFromInt(3000)}, nil)

		rec := f.do(http.MethodGet, "/v1/clients/c1/budgets/meta", "", middleware.RoleClient)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Data inválida", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/clients/c1/budgets/meta?date=20-03-2024", "", middleware.RoleClient)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})
}

func TestCronJobs(t *testing.T) {
	t.Run("Executa a revisão em lote", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/cron/jobs/budget-review/run", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, []string{"cron-manual"}, f.trigger.sources)
	})

	t.Run("Tipo desconhecido", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/cron/jobs/meta-insights/run", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Em andamento", func(t *testing.T) {
		f := newFixture(t)
		f.trigger.accept = false

		rec := f.do(http.MethodPost, "/v1/cron/jobs/budget-review/run", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Status", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/cron/status", "", middleware.RoleSupervisor)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), CronJobTypeBudgetReview)
	})
}

func TestHealthcheckAndNotFound(t *testing.T) {
	t.Run("Banco disponível", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/healthcheck", "", 0)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Banco indisponível", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthcheckHandler(fakePinger{err: domain.ErrPersistence}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Rota inexistente responde JSON", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/nada", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrRouteNotFound, decodeAPIError(t, rec).Code)
	})
}
