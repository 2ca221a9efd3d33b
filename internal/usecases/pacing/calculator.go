// Package pacing calcula o orçamento diário ideal para esgotar o orçamento mensal
// exatamente no fim do mês.
package pacing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

// DeadZone é a margem, em unidades de moeda, dentro da qual a recomendação é manter o orçamento
var DeadZone = decimal.NewFromInt(5)

type Input struct {
	MonthlyBudget      decimal.Decimal
	TotalSpent         decimal.Decimal
	CurrentDailyBudget decimal.Decimal
	RemainingDays      int
}

type Recommendation struct {
	Action  domain.RecommendationAction `json:"action"`
	Amount  decimal.Decimal             `json:"amount"`
	Message string                      `json:"message"`
}

type Result struct {
	RemainingBudget  decimal.Decimal `json:"remaining_budget"`
	IdealDailyBudget decimal.Decimal `json:"ideal_daily_budget"`
	Delta            decimal.Decimal `json:"delta"`
	RemainingDays    int             `json:"remaining_days"`
	Recommendation   Recommendation  `json:"recommendation"`
}

// Calculate não faz I/O. Com RemainingDays <= 0 o orçamento ideal é zero.
func Calculate(in Input) Result {
	remaining := in.MonthlyBudget.Sub(in.TotalSpent)

	ideal := decimal.Zero
	if in.RemainingDays > 0 {
		ideal = remaining.Div(decimal.NewFromInt(int64(in.RemainingDays)))
	}

	delta := in.CurrentDailyBudget.Sub(ideal)

	return Result{
		RemainingBudget:  remaining.Round(2),
		IdealDailyBudget: ideal.Round(2),
		Delta:            delta.Round(2),
		RemainingDays:    in.RemainingDays,
		Recommendation:   Recommend(delta),
	}
}

// Recommend depende apenas de delta = orçamento diário atual - orçamento diário ideal
func Recommend(delta decimal.Decimal) Recommendation {
	switch {
	case delta.GreaterThan(DeadZone):
		amount := delta.Round(2)
		return Recommendation{
			Action:  domain.RecommendationDecrease,
			Amount:  amount,
			Message: fmt.Sprintf("Reduzir o orçamento diário em %s", amount.StringFixed(2)),
		}
	case delta.LessThan(DeadZone.Neg()):
		amount := delta.Abs().Round(2)
		return Recommendation{
			Action:  domain.RecommendationIncrease,
			Amount:  amount,
			Message: fmt.Sprintf("Aumentar o orçamento diário em %s", amount.StringFixed(2)),
		}
	default:
		return Recommendation{
			Action:  domain.RecommendationMaintain,
			Amount:  decimal.Zero,
			Message: "Manter o orçamento diário atual",
		}
	}
}

// RemainingDays inclui o próprio dia informado
func RemainingDays(date time.Time) int {
	return DaysInMonth(date) - date.Day() + 1
}

func DaysInMonth(date time.Time) int {
	firstOfNext := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// MonthToDate retorna [primeiro dia do mês, date]
func MonthToDate(date time.Time) domain.Period {
	day := domain.DateOnly(date)
	return domain.Period{
		Start: time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   day,
	}
}
