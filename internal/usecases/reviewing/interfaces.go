package reviewing

import (
	"context"
	"time"

	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

// SpendAdapter é implementado por cada integrador de plataforma de anúncios
type SpendAdapter interface {
	Platform() domain.Platform
	FetchSpend(ctx context.Context, accountID string, credential *domain.Credential, period domain.Period) (*domain.SpendSummary, error)
}

type Reviewer interface {
	ReviewOne(ctx context.Context, request domain.ReviewRequest) ([]*domain.ReviewOutcome, error)
	ReviewMany(ctx context.Context, clients []*domain.Client, source string) (*domain.BatchResult, error)
	ReviewAllActive(ctx context.Context, source string) (*domain.BatchResult, error)
	Progress() domain.BatchProgress
}

// SnapshotReader expõe as consultas de leitura usadas pela API
type SnapshotReader interface {
	Latest(ctx context.Context, clientID string, platform domain.Platform) (*domain.ReviewSnapshot, error)
	History(ctx context.Context, clientID string, platform domain.Platform, limit int) ([]*domain.ReviewSnapshot, error)
	ResolveBudget(ctx context.Context, clientID string, platform domain.Platform, accountID string, date time.Time) (*domain.ResolvedBudget, error)
}

type ReviewService interface {
	Reviewer
	SnapshotReader
}
