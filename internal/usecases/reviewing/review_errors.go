package reviewing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
)

// Erros que interrompem o lote inteiro
var (
	ErrNoClientsFound            = errors.New("no eligible clients found")
	ErrPlatformCredentialMissing = errors.New("platform credential missing")
	ErrBatchInProgress           = errors.New("batch review already in progress")
	ErrPlatformNotConfigured     = errors.New("client has no account on platform")
	ErrAdapterNotRegistered      = errors.New("no spend adapter registered for platform")
)

// ReviewError é um erro com contexto do alvo revisado
type ReviewError struct {
	Err      error
	Code     string
	ClientID string
	Platform domain.Platform
	Details  string
}

func (e *ReviewError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// Kind retorna a classe de erro do pipeline que originou a falha
func (e *ReviewError) Kind() error {
	for _, kind := range []error{
		domain.ErrConfiguration,
		domain.ErrPlatformAPI,
		domain.ErrCalculation,
		domain.ErrPersistence,
		domain.ErrClientNotFound,
	} {
		if errors.Is(e.Err, kind) {
			return kind
		}
	}
	return e.Err
}

func NewReviewError(err error, code string, details string) *ReviewError {
	return &ReviewError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewTargetError(err error, clientID string, platform domain.Platform) *ReviewError {
	return &ReviewError{
		Err:      err,
		Code:     CodeFor(err),
		ClientID: clientID,
		Platform: platform,
	}
}

// CodeFor traduz a classe do erro para o código da API
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return apiErrors.ErrClientNotFound
	case errors.Is(err, ErrPlatformNotConfigured):
		return apiErrors.ErrInvalidRequest
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, ErrPlatformCredentialMissing):
		return apiErrors.ErrPlatformConfiguration
	case errors.Is(err, domain.ErrPlatformAPI):
		return apiErrors.ErrExternalService
	case errors.Is(err, domain.ErrPersistence):
		return apiErrors.ErrDatabaseOperation
	case errors.Is(err, ErrNoClientsFound):
		return apiErrors.ErrNoClientsFound
	case errors.Is(err, ErrBatchInProgress):
		return apiErrors.ErrBatchInProgress
	default:
		return apiErrors.ErrInternalServer
	}
}
