package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecommendationAction string

const (
	RecommendationIncrease RecommendationAction = "increase"
	RecommendationDecrease RecommendationAction = "decrease"
	RecommendationMaintain RecommendationAction = "maintain"
)

// ReviewSnapshot é o registro diário de ritmo de gasto de um cliente em uma plataforma.
// Existe no máximo um por (ClientID, Platform, ReviewDate).
type ReviewSnapshot struct {
	ID                   string               `json:"id"`
	ClientID             string               `json:"client_id"`
	Platform             Platform             `json:"platform"`
	AccountID            string               `json:"account_id"`
	ReviewDate           time.Time            `json:"review_date"`
	TotalSpent           decimal.Decimal      `json:"total_spent"`
	CurrentDailyBudget   decimal.Decimal      `json:"current_daily_budget"`
	IdealDailyBudget     decimal.Decimal      `json:"ideal_daily_budget"`
	UsingCustomBudget    bool                 `json:"using_custom_budget"`
	BudgetAmount         decimal.Decimal      `json:"budget_amount"`
	CustomBudgetID       *string              `json:"custom_budget_id,omitempty"`
	CustomBudgetEndDate  *time.Time           `json:"custom_budget_end_date,omitempty"`
	RemainingDays        int                  `json:"remaining_days"`
	Recommendation       string               `json:"recommendation"`
	RecommendationAction RecommendationAction `json:"recommendation_action"`
	RecommendationAmount decimal.Decimal      `json:"recommendation_amount"`
	Campaigns            []CampaignSummary    `json:"campaigns"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}
