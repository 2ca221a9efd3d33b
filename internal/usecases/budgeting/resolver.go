package budgeting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/repository"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/pkg/utils"
)

type Resolver interface {
	// Resolve determina o orçamento mensal vigente. Data zero significa hoje no fuso configurado.
	Resolve(ctx context.Context, client *domain.Client, platform domain.Platform, accountID string, date time.Time) (*domain.ResolvedBudget, error)
}

type resolver struct {
	overrides repository.BudgetOverrideRepository
	location  *time.Location
	now       func() time.Time
}

func NewResolver(overrides repository.BudgetOverrideRepository, location *time.Location) Resolver {
	if location == nil {
		location = time.UTC
	}

	return &resolver{
		overrides: overrides,
		location:  location,
		now:       time.Now,
	}
}

func (r *resolver) Resolve(ctx context.Context, client *domain.Client, platform domain.Platform, accountID string, date time.Time) (*domain.ResolvedBudget, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: cliente não informado", domain.ErrClientNotFound)
	}

	if date.IsZero() {
		date = utils.Today(r.now(), r.location)
	}

	overrides, err := r.overrides.ListActive(ctx, client.ID, platform)
	if err != nil {
		return nil, err
	}

	selected := SelectOverride(overrides, platform, accountID, date)
	if selected == nil {
		return &domain.ResolvedBudget{
			Amount:   client.MonthlyBudget(platform),
			IsCustom: false,
		}, nil
	}

	logrus.WithFields(logrus.Fields{
		"client_id":   client.ID,
		"platform":    platform,
		"override_id": selected.ID,
	}).Debug("Usando orçamento personalizado")

	id := selected.ID
	endDate := domain.DateOnly(selected.EndDate)

	return &domain.ResolvedBudget{
		Amount:           selected.Amount,
		IsCustom:         true,
		SourceOverrideID: &id,
		OverrideEndDate:  &endDate,
	}, nil
}

// SelectOverride escolhe o override vigente, independente da ordem de entrada.
//
// Precedência: escopo da conta sobre escopo geral; depois o fim mais próximo;
// depois o criado mais recentemente; por último o maior ID.
func SelectOverride(overrides []*domain.CustomBudgetOverride, platform domain.Platform, accountID string, date time.Time) *domain.CustomBudgetOverride {
	candidates := make([]*domain.CustomBudgetOverride, 0, len(overrides))
	for _, o := range overrides {
		if o != nil && o.Matches(platform, accountID, date) {
			candidates = append(candidates, o)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return precedes(candidates[i], candidates[j])
	})

	return candidates[0]
}

func precedes(a, b *domain.CustomBudgetOverride) bool {
	if a.IsAccountScoped() != b.IsAccountScoped() {
		return a.IsAccountScoped()
	}

	aEnd, bEnd := domain.DateOnly(a.EndDate), domain.DateOnly(b.EndDate)
	if !aEnd.Equal(bEnd) {
		return aEnd.Before(bEnd)
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}

	return a.ID > b.ID
}
