package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
)

const CronJobTypeBudgetReview = "budget-review"

// BatchTrigger é o agendador da revisão em lote
type BatchTrigger interface {
	TriggerManualSync(source string) bool
	GetStatus() map[string]any
}

// RunCronJob executa manualmente uma rotina agendada
func RunCronJob(trigger BatchTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeBudgetReview {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: budget-review", nil)
			return
		}

		if !trigger.TriggerManualSync("cron-manual") {
			apiErrors.WriteError(w, apiErrors.ErrBatchInProgress, "Rotina já em andamento", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Cron job disparada manualmente")
		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(trigger BatchTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeBudgetReview: trigger.GetStatus(),
		})
	}
}
