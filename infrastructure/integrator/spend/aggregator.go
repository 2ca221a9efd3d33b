// Package spend concentra as regras de agregação de orçamento e gasto
// compartilhadas por todos os integradores de plataformas de anúncios.
package spend

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

// FromMinorUnits converte centavos para a unidade da moeda
func FromMinorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// Aggregate filtra campanhas e conjuntos ativos e soma orçamento diário e gasto.
//
// Campanha com orçamento próprio positivo conta uma única vez, desde que tenha ao menos
// um conjunto ativo. Sem orçamento de campanha, soma os orçamentos positivos dos conjuntos ativos.
// now deve estar no fuso da conta.
func Aggregate(campaigns []domain.RemoteCampaign, insights []domain.SpendInsight, now time.Time) *domain.SpendSummary {
	spentByCampaign := make(map[string]decimal.Decimal, len(insights))
	for _, insight := range insights {
		spentByCampaign[insight.CampaignID] = spentByCampaign[insight.CampaignID].Add(insight.Spend)
	}

	summary := &domain.SpendSummary{
		CurrentDailyBudget: decimal.Zero,
		TotalSpent:         decimal.Zero,
		Campaigns:          make([]domain.CampaignSummary, 0, len(campaigns)),
		Timezone:           now.Location().String(),
	}

	for i := range campaigns {
		campaign := &campaigns[i]
		if !campaign.IsActive() {
			continue
		}

		activeAdSets := 0
		adSetBudget := int64(0)
		for j := range campaign.AdSets {
			adSet := &campaign.AdSets[j]
			if !adSet.IsActiveAt(now) {
				continue
			}

			activeAdSets++
			if adSet.DailyBudgetMinorUnits > 0 {
				adSetBudget += adSet.DailyBudgetMinorUnits
			}
		}

		item := domain.CampaignSummary{
			CampaignID:   campaign.ID,
			Name:         campaign.Name,
			DailyBudget:  decimal.Zero,
			Spent:        spentByCampaign[campaign.ID],
			ActiveAdSets: activeAdSets,
			BudgetLevel:  domain.BudgetLevelAdSet,
		}

		if campaign.DailyBudgetMinorUnits > 0 {
			item.BudgetLevel = domain.BudgetLevelCampaign
			if activeAdSets > 0 {
				item.DailyBudget = FromMinorUnits(campaign.DailyBudgetMinorUnits)
			}
		} else {
			item.DailyBudget = FromMinorUnits(adSetBudget)
		}

		summary.CurrentDailyBudget = summary.CurrentDailyBudget.Add(item.DailyBudget)
		summary.TotalSpent = summary.TotalSpent.Add(item.Spent)
		summary.Campaigns = append(summary.Campaigns, item)
	}

	return summary
}

var endTimeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseEndTime interpreta a data de término retornada pela plataforma.
// Datas sem horário valem até o fim do dia no fuso da conta; horários sem offset
// também são interpretados no fuso da conta. Valor vazio retorna nil.
func ParseEndTime(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range endTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &t, nil
		}
	}

	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, err
	}

	endOfDay := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &endOfDay, nil
}

// LoadLocation carrega o fuso informado pela plataforma, usando fallback quando inválido
func LoadLocation(name string, fallback *time.Location) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}

	if fallback != nil {
		return fallback
	}

	return time.UTC
}
