package domain

import (
	"github.com/shopspring/decimal"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
)

// Client é mantido pelo cadastro de clientes; aqui é apenas lido
type Client struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Status              ClientStatus    `json:"status"`
	MetaAccountID       *string         `json:"meta_account_id"`
	GoogleAccountID     *string         `json:"google_account_id"`
	MetaMonthlyBudget   decimal.Decimal `json:"meta_monthly_budget"`
	GoogleMonthlyBudget decimal.Decimal `json:"google_monthly_budget"`
}

// AccountID retorna o ID da conta do cliente na plataforma, ou "" se não houver
func (c *Client) AccountID(platform Platform) string {
	var id *string
	switch platform {
	case PlatformMeta:
		id = c.MetaAccountID
	case PlatformGoogle:
		id = c.GoogleAccountID
	}

	if id == nil {
		return ""
	}

	return *id
}

// MonthlyBudget retorna o orçamento mensal padrão do cliente na plataforma
func (c *Client) MonthlyBudget(platform Platform) decimal.Decimal {
	switch platform {
	case PlatformMeta:
		return c.MetaMonthlyBudget
	case PlatformGoogle:
		return c.GoogleMonthlyBudget
	}

	return decimal.Zero
}

// ConfiguredPlatforms retorna as plataformas em que o cliente tem conta vinculada
func (c *Client) ConfiguredPlatforms() []Platform {
	platforms := make([]Platform, 0, len(Platforms))
	for _, p := range Platforms {
		if c.AccountID(p) != "" {
			platforms = append(platforms, p)
		}
	}

	return platforms
}
