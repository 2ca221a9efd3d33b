package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing/mocks"
	"go.uber.org/mock/gomock"
)

type fakeLocker struct {
	mu       sync.Mutex
	obtained bool
	err      error
	released int
}

func (l *fakeLocker) Obtain(_ context.Context, _ string, _ time.Duration) (func(context.Context) error, bool, error) {
	if l.err != nil || !l.obtained {
		return nil, false, l.err
	}
	return func(context.Context) error {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
		return nil
	}, true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.App{Timezone: "UTC"},
		BudgetReviewSync: config.BudgetReviewSync{
			Interval: time.Minute,
			Enabled:  true,
		},
	}
}

func waitIdle(t *testing.T, s *BudgetReviewSyncService) {
	t.Helper()
	require.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestBudgetReviewSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)

	release := make(chan struct{})
	reviewer.EXPECT().ReviewAllActive(gomock.Any(), "api").DoAndReturn(
		func(context.Context, string) (*domain.BatchResult, error) {
			<-release
			return &domain.BatchResult{
				RunID:     "run-1",
				Succeeded: []*domain.ReviewOutcome{{ClientID: "a", Success: true}},
			}, nil
		}).Times(1)
	reviewer.EXPECT().Progress().Return(domain.BatchProgress{State: domain.BatchStateCompleted}).AnyTimes()

	service := NewBudgetReviewSyncService(reviewer, nil, testConfig())

	assert.True(t, service.TriggerManualSync("api"))
	// Enquanto o lote roda, novos disparos são ignorados, não enfileirados
	assert.False(t, service.TriggerManualSync("api"))
	assert.True(t, service.IsRunning())

	close(release)
	waitIdle(t, service)

	status := service.GetStatus()
	assert.Equal(t, "run-1", status["last_run_id"])
	assert.Equal(t, 1, status["last_succeeded"])
	assert.Equal(t, "api", status["last_sync_source"])
	assert.Equal(t, "", status["last_error"])
	assert.Equal(t, false, status["distributed_lock"])
}

func TestBudgetReviewSyncService_ReviewError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)
	reviewer.EXPECT().ReviewAllActive(gomock.Any(), "manual").Return(nil, errors.New("no eligible clients found"))
	reviewer.EXPECT().Progress().Return(domain.BatchProgress{State: domain.BatchStateIdle}).AnyTimes()

	service := NewBudgetReviewSyncService(reviewer, nil, testConfig())

	assert.True(t, service.TriggerManualSync(""))
	waitIdle(t, service)

	status := service.GetStatus()
	assert.Equal(t, "no eligible clients found", status["last_error"])
	assert.Equal(t, "manual", status["last_sync_source"])
	assert.NotContains(t, status, "last_run_id")
}

func TestBudgetReviewSyncService_DistributedLock(t *testing.T) {
	tests := []struct {
		name          string
		locker        *fakeLocker
		expectedCalls int
		expectedError bool
	}{
		{
			name:          "Trava obtida - executa e libera",
			locker:        &fakeLocker{obtained: true},
			expectedCalls: 1,
		},
		{
			name:          "Trava com outra instância - ignora",
			locker:        &fakeLocker{obtained: false},
			expectedCalls: 0,
		},
		{
			name:          "Redis indisponível - registra erro",
			locker:        &fakeLocker{err: errors.New("dial tcp: connection refused")},
			expectedCalls: 0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reviewer := mocks.NewMockReviewer(ctrl)
			reviewer.EXPECT().ReviewAllActive(gomock.Any(), SourceScheduler).
				Return(&domain.BatchResult{RunID: "run"}, nil).Times(tt.expectedCalls)
			reviewer.EXPECT().Progress().Return(domain.BatchProgress{}).AnyTimes()

			service := NewBudgetReviewSyncService(reviewer, tt.locker, testConfig())

			require.True(t, service.tryStart(SourceScheduler))
			service.run(SourceScheduler)

			assert.False(t, service.IsRunning())
			assert.Equal(t, tt.expectedCalls, tt.locker.released)
			assert.Equal(t, tt.expectedError, service.GetStatus()["last_error"] != "")
		})
	}
}

func TestBudgetReviewSyncService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)

	cfg := testConfig()
	cfg.BudgetReviewSync.Enabled = false

	service := NewBudgetReviewSyncService(reviewer, nil, cfg)
	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, 0, service.scheduler.Len())
}

func TestBudgetReviewSyncService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewBudgetReviewSyncService(reviewer, nil, testConfig())
	require.NoError(t, service.Start(ctx))
	assert.Equal(t, 1, service.scheduler.Len())
	assert.Equal(t, time.Minute, service.config.Interval)
}
