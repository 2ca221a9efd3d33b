package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomBudgetOverride é um orçamento declarado manualmente, válido em [StartDate, EndDate]
type CustomBudgetOverride struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Platform    Platform        `json:"platform"`
	AccountID   *string         `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsAccountScoped indica se o override vale apenas para uma conta específica
func (o *CustomBudgetOverride) IsAccountScoped() bool {
	return o.AccountID != nil && *o.AccountID != ""
}

// Covers compara apenas os dias do calendário, ignorando horário e fuso
func (o *CustomBudgetOverride) Covers(date time.Time) bool {
	day := DateOnly(date)
	return !day.Before(DateOnly(o.StartDate)) && !day.After(DateOnly(o.EndDate))
}

// Matches aplica todos os filtros de elegibilidade do override
func (o *CustomBudgetOverride) Matches(platform Platform, accountID string, date time.Time) bool {
	if !o.IsActive || o.Platform != platform || !o.Covers(date) {
		return false
	}

	if o.IsAccountScoped() {
		return *o.AccountID == accountID
	}

	return true
}

// ResolvedBudget é o orçamento mensal que vale para o cliente/plataforma/dia
type ResolvedBudget struct {
	Amount           decimal.Decimal `json:"amount"`
	IsCustom         bool            `json:"is_custom"`
	SourceOverrideID *string         `json:"source_override_id,omitempty"`
	OverrideEndDate  *time.Time      `json:"override_end_date,omitempty"`
}

// DateOnly normaliza a data para meia-noite UTC mantendo ano, mês e dia
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
