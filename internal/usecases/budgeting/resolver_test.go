package budgeting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-pacing-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func override(id string, accountID *string, start, end int, amount int64) *domain.CustomBudgetOverride {
	return &domain.CustomBudgetOverride{
		ID:        id,
		ClientID:  "client-1",
		Platform:  domain.PlatformMeta,
		AccountID: accountID,
		Amount:    decimal.NewFromInt(amount),
		StartDate: day(start),
		EndDate:   day(end),
		IsActive:  true,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSelectOverride(t *testing.T) {
	agnostic := override("geral", nil, 1, 31, 5000)
	scoped := override("conta", stringPtr("act_1"), 1, 31, 7000)
	otherAccount := override("outra", stringPtr("act_2"), 1, 31, 9000)
	shortLived := override("curto", nil, 10, 20, 6000)

	inactive := override("inativo", stringPtr("act_1"), 1, 31, 1)
	inactive.IsActive = false

	google := override("google", nil, 1, 31, 1)
	google.Platform = domain.PlatformGoogle

	tests := []struct {
		name       string
		overrides  []*domain.CustomBudgetOverride
		accountID  string
		date       time.Time
		expectedID string
	}{
		{
			name:       "Override da conta prevalece sobre o geral",
			overrides:  []*domain.CustomBudgetOverride{agnostic, scoped},
			accountID:  "act_1",
			date:       day(15),
			expectedID: "conta",
		},
		{
			name:       "Override da conta prevalece em ordem invertida",
			overrides:  []*domain.CustomBudgetOverride{scoped, agnostic},
			accountID:  "act_1",
			date:       day(15),
			expectedID: "conta",
		},
		{
			name:       "Override de outra conta não se aplica",
			overrides:  []*domain.CustomBudgetOverride{otherAccount, agnostic},
			accountID:  "act_1",
			date:       day(15),
			expectedID: "geral",
		},
		{
			name:       "Mesmo escopo - fim mais próximo vence",
			overrides:  []*domain.CustomBudgetOverride{agnostic, shortLived},
			accountID:  "act_1",
			date:       day(15),
			expectedID: "curto",
		},
		{
			name:       "Fora do intervalo do override curto",
			overrides:  []*domain.CustomBudgetOverride{agnostic, shortLived},
			accountID:  "act_1",
			date:       day(21),
			expectedID: "geral",
		},
		{
			name:       "Limites do intervalo são inclusivos",
			overrides:  []*domain.CustomBudgetOverride{shortLived},
			date:       time.Date(2024, 3, 20, 23, 59, 0, 0, time.UTC),
			expectedID: "curto",
		},
		{
			name:       "Inativos e de outra plataforma são ignorados",
			overrides:  []*domain.CustomBudgetOverride{inactive, google},
			accountID:  "act_1",
			date:       day(15),
			expectedID: "",
		},
		{
			name:       "Sem account ID apenas overrides gerais se aplicam",
			overrides:  []*domain.CustomBudgetOverride{scoped, agnostic},
			date:       day(15),
			expectedID: "geral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectOverride(tt.overrides, domain.PlatformMeta, tt.accountID, tt.date)

			if tt.expectedID == "" {
				assert.Nil(t, selected)
				return
			}

			require.NotNil(t, selected)
			assert.Equal(t, tt.expectedID, selected.ID)
		})
	}
}

func TestSelectOverride_TieBreak(t *testing.T) {
	older := override("a", nil, 1, 31, 1000)
	newer := override("b", nil, 1, 31, 2000)
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	sameTimeLowID := override("x1", nil, 1, 31, 3000)
	sameTimeHighID := override("x2", nil, 1, 31, 4000)

	assert.Equal(t, "b", SelectOverride([]*domain.CustomBudgetOverride{older, newer}, domain.PlatformMeta, "", day(5)).ID)
	assert.Equal(t, "b", SelectOverride([]*domain.CustomBudgetOverride{newer, older}, domain.PlatformMeta, "", day(5)).ID)

	assert.Equal(t, "x2", SelectOverride([]*domain.CustomBudgetOverride{sameTimeLowID, sameTimeHighID}, domain.PlatformMeta, "", day(5)).ID)
	assert.Equal(t, "x2", SelectOverride([]*domain.CustomBudgetOverride{sameTimeHighID, sameTimeLowID}, domain.PlatformMeta, "", day(5)).ID)
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	client := &domain.Client{
		ID:                "client-1",
		MetaAccountID:     stringPtr("act_1"),
		MetaMonthlyBudget: decimal.NewFromInt(3000),
	}

	tests := []struct {
		name           string
		setup          func(repo *mocks.MockBudgetOverrideRepository)
		expectedAmount decimal.Decimal
		expectedCustom bool
		expectedErr    bool
	}{
		{
			name: "Sem overrides usa o orçamento padrão do cliente",
			setup: func(repo *mocks.MockBudgetOverrideRepository) {
				repo.EXPECT().ListActive(gomock.Any(), "client-1", domain.PlatformMeta).Return(nil, nil)
			},
			expectedAmount: decimal.NewFromInt(3000),
			expectedCustom: false,
		},
		{
			name: "Override vigente substitui o orçamento padrão",
			setup: func(repo *mocks.MockBudgetOverrideRepository) {
				repo.EXPECT().ListActive(gomock.Any(), "client-1", domain.PlatformMeta).
					Return([]*domain.CustomBudgetOverride{override("o1", stringPtr("act_1"), 1, 20, 4500)}, nil)
			},
			expectedAmount: decimal.NewFromInt(4500),
			expectedCustom: true,
		},
		{
			name: "Erro do repositório é propagado",
			setup: func(repo *mocks.MockBudgetOverrideRepository) {
				repo.EXPECT().ListActive(gomock.Any(), "client-1", domain.PlatformMeta).
					Return(nil, errors.Join(domain.ErrPersistence, errors.New("timeout")))
			},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockBudgetOverrideRepository(ctrl)
			tt.setup(repo)

			r := NewResolver(repo, time.UTC)
			resolved, err := r.Resolve(ctx, client, domain.PlatformMeta, "act_1", day(15))

			if tt.expectedErr {
				assert.ErrorIs(t, err, domain.ErrPersistence)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expectedAmount.Equal(resolved.Amount))
			assert.Equal(t, tt.expectedCustom, resolved.IsCustom)

			if tt.expectedCustom {
				require.NotNil(t, resolved.SourceOverrideID)
				assert.Equal(t, "o1", *resolved.SourceOverrideID)
				require.NotNil(t, resolved.OverrideEndDate)
				assert.Equal(t, "2024-03-20", resolved.OverrideEndDate.Format(time.DateOnly))
			} else {
				assert.Nil(t, resolved.SourceOverrideID)
			}
		})
	}
}

func TestResolver_DefaultsToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockBudgetOverrideRepository(ctrl)
	repo.EXPECT().ListActive(gomock.Any(), "client-1", domain.PlatformMeta).
		Return([]*domain.CustomBudgetOverride{override("o1", nil, 10, 20, 4500)}, nil).Times(2)

	r := &resolver{overrides: repo, location: time.UTC}
	client := &domain.Client{ID: "client-1", MetaMonthlyBudget: decimal.NewFromInt(100)}

	r.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	resolved, err := r.Resolve(context.Background(), client, domain.PlatformMeta, "", time.Time{})
	require.NoError(t, err)
	assert.True(t, resolved.IsCustom)

	r.now = func() time.Time { return time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC) }
	resolved, err = r.Resolve(context.Background(), client, domain.PlatformMeta, "", time.Time{})
	require.NoError(t, err)
	assert.False(t, resolved.IsCustom)
}

func TestResolver_NilClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewResolver(mocks.NewMockBudgetOverrideRepository(ctrl), nil)
	_, err := r.Resolve(context.Background(), nil, domain.PlatformMeta, "", time.Time{})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}
