package metadomain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/spend"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// AdAccount traz apenas o necessário para a checagem de expiração no fuso da conta
type AdAccount struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	TimezoneName string `json:"timezone_name"`
}

// Campaign é o formato bruto da Graph API; valores monetários chegam como string em centavos
type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	DailyBudget     string `json:"daily_budget"`
	EndTime         string `json:"stop_time"`
}

type AdSet struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CampaignID      string `json:"campaign_id"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	DailyBudget     string `json:"daily_budget"`
	EndTime         string `json:"end_time"`
}

// Insight tem o gasto já na unidade da moeda, como string decimal
type Insight struct {
	CampaignID string `json:"campaign_id"`
	Spend      string `json:"spend"`
	DateStart  string `json:"date_start"`
	DateStop   string `json:"date_stop"`
}

func parseMinorUnits(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func (c *Campaign) ToRemote(loc *time.Location) (domain.RemoteCampaign, error) {
	budget, err := parseMinorUnits(c.DailyBudget)
	if err != nil {
		return domain.RemoteCampaign{}, fmt.Errorf("daily_budget inválido na campanha %s: %w", c.ID, err)
	}

	endTime, err := spend.ParseEndTime(c.EndTime, loc)
	if err != nil {
		return domain.RemoteCampaign{}, fmt.Errorf("stop_time inválido na campanha %s: %w", c.ID, err)
	}

	return domain.RemoteCampaign{
		ID:                    c.ID,
		Name:                  c.Name,
		Status:                strings.ToUpper(c.Status),
		EffectiveStatus:       strings.ToUpper(c.EffectiveStatus),
		DailyBudgetMinorUnits: budget,
		EndTime:               endTime,
	}, nil
}

func (a *AdSet) ToRemote(loc *time.Location) (domain.RemoteAdSet, error) {
	budget, err := parseMinorUnits(a.DailyBudget)
	if err != nil {
		return domain.RemoteAdSet{}, fmt.Errorf("daily_budget inválido no conjunto %s: %w", a.ID, err)
	}

	endTime, err := spend.ParseEndTime(a.EndTime, loc)
	if err != nil {
		return domain.RemoteAdSet{}, fmt.Errorf("end_time inválido no conjunto %s: %w", a.ID, err)
	}

	return domain.RemoteAdSet{
		ID:                    a.ID,
		Name:                  a.Name,
		Status:                strings.ToUpper(a.Status),
		EffectiveStatus:       strings.ToUpper(a.EffectiveStatus),
		DailyBudgetMinorUnits: budget,
		EndTime:               endTime,
	}, nil
}

func (i *Insight) ToSpendInsight() (domain.SpendInsight, error) {
	amount := decimal.Zero
	if strings.TrimSpace(i.Spend) != "" {
		parsed, err := decimal.NewFromString(i.Spend)
		if err != nil {
			return domain.SpendInsight{}, fmt.Errorf("spend inválido na campanha %s: %w", i.CampaignID, err)
		}
		amount = parsed
	}

	insight := domain.SpendInsight{
		CampaignID: i.CampaignID,
		Spend:      amount,
	}

	if start, err := time.Parse(time.DateOnly, i.DateStart); err == nil {
		insight.PeriodStart = start
	}
	if stop, err := time.Parse(time.DateOnly, i.DateStop); err == nil {
		insight.PeriodEnd = stop
	}

	return insight, nil
}
