package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive  = "ACTIVE"
	StatusUnknown = "UNKNOWN"
)

type BudgetLevel string

const (
	BudgetLevelCampaign BudgetLevel = "campaign"
	BudgetLevelAdSet    BudgetLevel = "adset"
)

// RemoteAdSet é um conjunto de anúncios já normalizado pelo integrador da plataforma
type RemoteAdSet struct {
	ID                    string
	Name                  string
	Status                string
	EffectiveStatus       string
	DailyBudgetMinorUnits int64
	EndTime               *time.Time
}

// RemoteCampaign é uma campanha já normalizada pelo integrador da plataforma
type RemoteCampaign struct {
	ID                    string
	Name                  string
	Status                string
	EffectiveStatus       string
	DailyBudgetMinorUnits int64
	EndTime               *time.Time
	AdSets                []RemoteAdSet
}

func (c *RemoteCampaign) IsActive() bool {
	return c.Status == StatusActive && c.EffectiveStatus == StatusActive
}

// IsActiveAt exige status ativo e, quando houver data de término, que ela seja posterior a now
func (a *RemoteAdSet) IsActiveAt(now time.Time) bool {
	if a.Status != StatusActive || a.EffectiveStatus != StatusActive {
		return false
	}

	return a.EndTime == nil || a.EndTime.After(now)
}

type SpendInsight struct {
	CampaignID  string
	Spend       decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type CampaignSummary struct {
	CampaignID   string          `json:"campaign_id"`
	Name         string          `json:"name"`
	DailyBudget  decimal.Decimal `json:"daily_budget"`
	Spent        decimal.Decimal `json:"spent"`
	ActiveAdSets int             `json:"active_ad_sets"`
	BudgetLevel  BudgetLevel     `json:"budget_level"`
}

// SpendSummary é o retorno normalizado de qualquer integrador de plataforma
type SpendSummary struct {
	CurrentDailyBudget decimal.Decimal   `json:"current_daily_budget"`
	TotalSpent         decimal.Decimal   `json:"total_spent"`
	Campaigns          []CampaignSummary `json:"campaigns"`
	Timezone           string            `json:"timezone"`
}
