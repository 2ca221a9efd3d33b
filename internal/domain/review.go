package domain

import "time"

// TriggerRequest é o corpo aceito pelo endpoint de disparo de revisões.
// Sem ClientID, a revisão roda em lote para todos os clientes ativos.
type TriggerRequest struct {
	ClientID      string `json:"clientId" validate:"omitempty,max=64"`
	AccountID     string `json:"accountId" validate:"omitempty,max=64"`
	Platform      string `json:"platform" validate:"omitempty,oneof=meta google"`
	ExecuteReview bool   `json:"executeReview"`
	Scheduled     bool   `json:"scheduled"`
	Source        string `json:"source" validate:"required,max=64"`
}

type ReviewRequest struct {
	ClientID  string
	Platform  Platform
	AccountID string
	// DryRun calcula o snapshot sem persistir
	DryRun bool
}

// ReviewOutcome é o resultado da revisão de um alvo (cliente, plataforma, conta)
type ReviewOutcome struct {
	ClientID  string          `json:"client_id"`
	Platform  Platform        `json:"platform"`
	AccountID string          `json:"account_id,omitempty"`
	Success   bool            `json:"success"`
	Skipped   bool            `json:"skipped,omitempty"`
	Error     string          `json:"error,omitempty"`
	Snapshot  *ReviewSnapshot `json:"snapshot,omitempty"`
	// Err mantém o erro original para classificação; Error é o texto exposto
	Err error `json:"-"`
}

type BatchState string

const (
	BatchStateIdle      BatchState = "idle"
	BatchStateRunning   BatchState = "running"
	BatchStateCompleted BatchState = "completed"
)

type BatchResult struct {
	RunID       string           `json:"run_id"`
	Source      string           `json:"source"`
	Total       int              `json:"total"`
	Succeeded   []*ReviewOutcome `json:"succeeded"`
	Failed      []*ReviewOutcome `json:"failed"`
	Skipped     []*ReviewOutcome `json:"skipped"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
}

// BatchProgress é uma fotografia do andamento do lote, própria para polling
type BatchProgress struct {
	RunID       string     `json:"run_id,omitempty"`
	State       BatchState `json:"state"`
	Source      string     `json:"source,omitempty"`
	Total       int        `json:"total"`
	Processed   int        `json:"processed"`
	Succeeded   int        `json:"succeeded"`
	Failed      int        `json:"failed"`
	Fraction    float64    `json:"fraction"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
