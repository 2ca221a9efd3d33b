package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing/mocks"
	"go.uber.org/mock/gomock"
)

type reviewService struct {
	*mocks.MockReviewer
	*mocks.MockSnapshotReader
}

type fixture struct {
	reviewer *mocks.MockReviewer
	reader   *mocks.MockSnapshotReader
	closed   int
	loadErr  error
	migrated int
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	return &fixture{
		reviewer: mocks.NewMockReviewer(ctrl),
		reader:   mocks.NewMockSnapshotReader(ctrl),
	}
}

func (f *fixture) load(ctx context.Context) (reviewing.ReviewService, func() error, error) {
	if f.loadErr != nil {
		return nil, nil, f.loadErr
	}
	return reviewService{MockReviewer: f.reviewer, MockSnapshotReader: f.reader}, func() error {
		f.closed++
		return nil
	}, nil
}

func (f *fixture) migrate(ctx context.Context) error {
	f.migrated++
	return f.loadErr
}

func (f *fixture) execute(args ...string) (string, error) {
	cmd := NewRootCommand(f.load, f.migrate)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand_Batch(t *testing.T) {
	t.Run("Todos com sucesso", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewAllActive(gomock.Any(), SourceCLI).Return(&domain.BatchResult{
			RunID:     "run-1",
			Total:     1,
			Succeeded: []*domain.ReviewOutcome{{ClientID: "c1", Success: true}},
		}, nil)

		out, err := f.execute("run")

		require.NoError(t, err)
		assert.Contains(t, out, `"run_id": "run-1"`)
		assert.Equal(t, 1, f.closed)
	})

	t.Run("Falhas parciais retornam erro", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewAllActive(gomock.Any(), SourceCLI).Return(&domain.BatchResult{
			Total:     2,
			Succeeded: []*domain.ReviewOutcome{{ClientID: "c1", Success: true}},
			Failed:    []*domain.ReviewOutcome{{ClientID: "c2", Error: "falhou"}},
		}, nil)

		_, err := f.execute("run")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 de 2")
	})

	t.Run("Simulação exige cliente", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.execute("run", "--dry-run")

		assert.Error(t, err)
		assert.Zero(t, f.closed)
	})

	t.Run("Falha ao carregar dependências", func(t *testing.T) {
		f := newFixture(t)
		f.loadErr = errors.New("sem banco")

		_, err := f.execute("run")

		assert.EqualError(t, err, "sem banco")
	})
}

func TestRunCommand_SingleClient(t *testing.T) {
	t.Run("Simulação de uma conta", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewOne(gomock.Any(), domain.ReviewRequest{
			ClientID:  "c1",
			Platform:  domain.PlatformGoogle,
			AccountID: "123-456-7890",
			DryRun:    true,
		}).Return([]*domain.ReviewOutcome{{ClientID: "c1", Platform: domain.PlatformGoogle, Success: true}}, nil)

		out, err := f.execute("run", "--client", "c1", "--platform", "google", "--account", "123-456-7890", "--dry-run")

		require.NoError(t, err)
		assert.Contains(t, out, `"success": true`)
	})

	t.Run("Alvo com falha", func(t *testing.T) {
		f := newFixture(t)
		f.reviewer.EXPECT().ReviewOne(gomock.Any(), gomock.Any()).
			Return([]*domain.ReviewOutcome{{ClientID: "c1", Platform: domain.PlatformMeta, Error: "token expirado"}}, nil)

		_, err := f.execute("run", "--client", "c1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "meta: token expirado")
	})

	t.Run("Conta sem plataforma", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.execute("run", "--client", "c1", "--account", "act_1")

		assert.Error(t, err)
	})
}

func TestReadCommands(t *testing.T) {
	t.Run("latest", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().Latest(gomock.Any(), "c1", domain.PlatformMeta).
			Return(&domain.ReviewSnapshot{ID: "s1", RecommendationAction: domain.RecommendationMaintain}, nil)

		out, err := f.execute("latest", "c1", "meta")

		require.NoError(t, err)
		assert.Contains(t, out, `"id": "s1"`)
	})

	t.Run("latest sem snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().Latest(gomock.Any(), "c1", domain.PlatformMeta).Return(nil, nil)

		_, err := f.execute("latest", "c1", "meta")

		assert.Error(t, err)
	})

	t.Run("history com limite", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().History(gomock.Any(), "c1", domain.PlatformGoogle, 5).
			Return([]*domain.ReviewSnapshot{{ID: "s2"}, {ID: "s1"}}, nil)

		out, err := f.execute("history", "c1", "google", "--limit", "5")

		require.NoError(t, err)
		assert.Contains(t, out, `"id": "s2"`)
	})

	t.Run("budget com data", func(t *testing.T) {
		f := newFixture(t)
		f.reader.EXPECT().ResolveBudget(gomock.Any(), "c1", domain.PlatformMeta, "act_1", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)).
			Return(&domain.ResolvedBudget{Amount: decimal.NewFromInt(5000), IsCustom: true}, nil)

		out, err := f.execute("budget", "c1", "meta", "--account", "act_1", "--date", "2024-03-20")

		require.NoError(t, err)
		assert.Contains(t, out, `"is_custom": true`)
	})

	t.Run("plataforma inválida", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.execute("budget", "c1", "tiktok")

		assert.Error(t, err)
	})
}

func TestMigrateCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute("migrate")

	require.NoError(t, err)
	assert.Equal(t, 1, f.migrated)
	assert.Contains(t, out, "Migrações aplicadas")

	f.loadErr = errors.New("sem banco")
	_, err = f.execute("migrate")
	assert.EqualError(t, err, "sem banco")
}
