package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/repository"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
	"github.com/vfg2006/budget-pacing-api/pkg/log"
	"github.com/vfg2006/budget-pacing-api/pkg/utils"
)

// TriggerReview revisa um cliente na hora ou, sem clientId, dispara o lote em background
func TriggerReview(reviewer reviewing.Reviewer, trigger BatchTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.TriggerRequest
		if !decodeAndValidate(w, r, &request) {
			return
		}

		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"client_id": request.ClientID,
			"platform":  request.Platform,
			"source":    request.Source,
			"scheduled": request.Scheduled,
		})

		if request.ClientID == "" {
			if request.AccountID != "" || request.Platform != "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "accountId e platform exigem clientId", nil)
				return
			}
			if !request.ExecuteReview {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Simulação disponível apenas para um cliente", nil)
				return
			}

			if !trigger.TriggerManualSync(request.Source) {
				apiErrors.WriteError(w, apiErrors.ErrBatchInProgress, "Já existe uma revisão em lote em andamento", reviewer.Progress())
				return
			}

			logger.Info("Revisão em lote disparada")
			writeJSON(w, http.StatusAccepted, map[string]any{
				"message": "Revisão em lote iniciada",
				"source":  request.Source,
			})
			return
		}

		var platform domain.Platform
		if request.Platform != "" {
			parsed, err := domain.ParsePlatform(request.Platform)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			platform = parsed
		}
		if request.AccountID != "" && platform == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "accountId exige platform", nil)
			return
		}

		outcomes, err := reviewer.ReviewOne(r.Context(), domain.ReviewRequest{
			ClientID:  request.ClientID,
			Platform:  platform,
			AccountID: request.AccountID,
			DryRun:    !request.ExecuteReview,
		})
		if err != nil {
			logger.WithError(err).Warn("Revisão não executada")
			writeReviewError(w, err, "Não foi possível revisar o cliente")
			return
		}

		if failure := allFailed(outcomes); failure != nil {
			writeReviewError(w, failure, "Falha na revisão do cliente")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"dry_run":  !request.ExecuteReview,
			"outcomes": outcomes,
		})
	}
}

// allFailed retorna o erro do primeiro alvo quando nenhum alvo foi concluído ou ignorado
func allFailed(outcomes []*domain.ReviewOutcome) error {
	var first error
	for _, outcome := range outcomes {
		if outcome.Success || outcome.Skipped {
			return nil
		}
		if first == nil {
			first = outcome.Err
			if first == nil {
				first = errors.New(outcome.Error)
			}
		}
	}
	return first
}

func GetReviewProgress(reviewer reviewing.Reviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reviewer.Progress())
	}
}

// clientPlatformParams lê :id e :platform; em falha já escreve a resposta
func clientPlatformParams(w http.ResponseWriter, r *http.Request) (string, domain.Platform, bool) {
	params := httprouter.ParamsFromContext(r.Context())

	clientID := params.ByName("id")
	if clientID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente é obrigatório", nil)
		return "", "", false
	}

	platform, err := domain.ParsePlatform(params.ByName("platform"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return "", "", false
	}

	return clientID, platform, true
}

func GetLatestReview(reader reviewing.SnapshotReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, platform, ok := clientPlatformParams(w, r)
		if !ok {
			return
		}

		snapshot, err := reader.Latest(r.Context(), clientID, platform)
		if err != nil {
			logrus.WithError(err).WithField("client_id", clientID).Error("Erro ao buscar último snapshot")
			writeReviewError(w, err, "Erro ao buscar última revisão")
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, "Nenhuma revisão encontrada", nil)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func GetReviewHistory(reader reviewing.SnapshotReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, platform, ok := clientPlatformParams(w, r)
		if !ok {
			return
		}

		limit := repository.DefaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 || parsed > repository.MaxHistoryLimit {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve estar entre 1 e 366", nil)
				return
			}
			limit = parsed
		}

		snapshots, err := reader.History(r.Context(), clientID, platform, limit)
		if err != nil {
			logrus.WithError(err).WithField("client_id", clientID).Error("Erro ao buscar histórico de snapshots")
			writeReviewError(w, err, "Erro ao buscar histórico de revisões")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"client_id": clientID,
			"platform":  platform,
			"limit":     limit,
			"reviews":   snapshots,
		})
	}
}

// GetResolvedBudget informa o orçamento mensal vigente; sem date usa o dia atual
func GetResolvedBudget(reader reviewing.SnapshotReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, platform, ok := clientPlatformParams(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		date, err := utils.ParseDate(query.Get("date"), time.UTC)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		var day time.Time
		if date != nil {
			day = *date
		}

		budget, err := reader.ResolveBudget(r.Context(), clientID, platform, query.Get("account_id"), day)
		if err != nil {
			logrus.WithError(err).WithField("client_id", clientID).Error("Erro ao resolver orçamento")
			writeReviewError(w, err, "Erro ao resolver orçamento")
			return
		}

		writeJSON(w, http.StatusOK, budget)
	}
}
