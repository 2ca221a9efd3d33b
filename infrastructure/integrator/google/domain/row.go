package googledomain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-pacing-api/infrastructure/integrator/spend"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

// microsPerMinorUnit converte micros (1/1.000.000 da moeda) em centavos
const microsPerMinorUnit = 10_000

// SearchRequest é o corpo do googleAds:search
type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []Row  `json:"results"`
	NextPageToken string `json:"nextPageToken"`
}

// Row é uma linha do resultado GAQL; só os recursos consultados vêm preenchidos.
// Campos int64 chegam como string no JSON da API.
type Row struct {
	Customer       *Customer       `json:"customer,omitempty"`
	Campaign       *Campaign       `json:"campaign,omitempty"`
	CampaignBudget *CampaignBudget `json:"campaignBudget,omitempty"`
	AdGroup        *AdGroup        `json:"adGroup,omitempty"`
	Metrics        *Metrics        `json:"metrics,omitempty"`
}

type Customer struct {
	ID           string `json:"id"`
	TimeZone     string `json:"timeZone"`
	CurrencyCode string `json:"currencyCode"`
}

type Campaign struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	ServingStatus string `json:"servingStatus"`
	EndDate       string `json:"endDate"`
}

type CampaignBudget struct {
	AmountMicros string `json:"amountMicros"`
}

type AdGroup struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	PrimaryStatus string `json:"primaryStatus"`
	CpcBidMicros  string `json:"cpcBidMicros"`
}

type Metrics struct {
	CostMicros string `json:"costMicros"`
}

func parseMicros(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// MicrosToMinorUnits normaliza micros para centavos, truncando frações de centavo
func MicrosToMinorUnits(micros int64) int64 {
	return micros / microsPerMinorUnit
}

// normalizeStatus traduz o vocabulário do Google Ads para o status comum do pipeline.
// Status ausente não conta como ativo.
func normalizeStatus(status string) string {
	switch strings.ToUpper(status) {
	case "ENABLED", "SERVING", "ELIGIBLE":
		return domain.StatusActive
	case "":
		return domain.StatusUnknown
	default:
		return strings.ToUpper(status)
	}
}

func (r *Row) ToRemoteCampaign(loc *time.Location) (domain.RemoteCampaign, error) {
	if r.Campaign == nil {
		return domain.RemoteCampaign{}, fmt.Errorf("linha sem campanha")
	}

	var micros int64
	if r.CampaignBudget != nil {
		parsed, err := parseMicros(r.CampaignBudget.AmountMicros)
		if err != nil {
			return domain.RemoteCampaign{}, fmt.Errorf("amountMicros inválido na campanha %s: %w", r.Campaign.ID, err)
		}
		micros = parsed
	}

	endTime, err := spend.ParseEndTime(r.Campaign.EndDate, loc)
	if err != nil {
		return domain.RemoteCampaign{}, fmt.Errorf("endDate inválido na campanha %s: %w", r.Campaign.ID, err)
	}

	status := strings.ToUpper(r.Campaign.Status)
	if status == "ENABLED" {
		status = domain.StatusActive
	}

	return domain.RemoteCampaign{
		ID:                    r.Campaign.ID,
		Name:                  r.Campaign.Name,
		Status:                status,
		EffectiveStatus:       normalizeStatus(r.Campaign.ServingStatus),
		DailyBudgetMinorUnits: MicrosToMinorUnits(micros),
		EndTime:               endTime,
	}, nil
}

// ToRemoteAdSet: grupos de anúncios não têm orçamento diário próprio no Google Ads
func (r *Row) ToRemoteAdSet() (domain.RemoteAdSet, error) {
	if r.AdGroup == nil {
		return domain.RemoteAdSet{}, fmt.Errorf("linha sem grupo de anúncios")
	}

	status := strings.ToUpper(r.AdGroup.Status)
	if status == "ENABLED" {
		status = domain.StatusActive
	}

	return domain.RemoteAdSet{
		ID:              r.AdGroup.ID,
		Name:            r.AdGroup.Name,
		Status:          status,
		EffectiveStatus: normalizeStatus(r.AdGroup.PrimaryStatus),
	}, nil
}

func (r *Row) ToSpendInsight(period domain.Period) (domain.SpendInsight, error) {
	if r.Campaign == nil {
		return domain.SpendInsight{}, fmt.Errorf("linha de métricas sem campanha")
	}

	var micros int64
	if r.Metrics != nil {
		parsed, err := parseMicros(r.Metrics.CostMicros)
		if err != nil {
			return domain.SpendInsight{}, fmt.Errorf("costMicros inválido na campanha %s: %w", r.Campaign.ID, err)
		}
		micros = parsed
	}

	return domain.SpendInsight{
		CampaignID:  r.Campaign.ID,
		Spend:       decimal.New(micros, -6),
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	}, nil
}
