package handler

import (
	"net/http"

	"github.com/vfg2006/budget-pacing-api/internal/api/handler/router"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Reviews(reviewer reviewing.Reviewer, reader reviewing.SnapshotReader, trigger BatchTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reviews/trigger",
			Method:      http.MethodPost,
			Handler:     TriggerReview(reviewer, trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/reviews/progress",
			Method:      http.MethodGet,
			Handler:     GetReviewProgress(reviewer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/reviews/:platform/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestReview(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/reviews/:platform/history",
			Method:      http.MethodGet,
			Handler:     GetReviewHistory(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/budgets/:platform",
			Method:      http.MethodGet,
			Handler:     GetResolvedBudget(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(trigger BatchTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/jobs/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
