package reviewing

import (
	"sync"
	"time"

	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

// progressTracker também é a trava de "um lote por vez" do processo
type progressTracker struct {
	mu       sync.Mutex
	progress domain.BatchProgress
}

func newProgressTracker() *progressTracker {
	return &progressTracker{progress: domain.BatchProgress{State: domain.BatchStateIdle}}
}

// start retorna false se já houver lote em andamento
func (p *progressTracker) start(runID, source string, total int, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.progress.State == domain.BatchStateRunning {
		return false
	}

	startedAt := now
	p.progress = domain.BatchProgress{
		RunID:     runID,
		State:     domain.BatchStateRunning,
		Source:    source,
		Total:     total,
		StartedAt: &startedAt,
	}
	return true
}

func (p *progressTracker) record(outcome *domain.ReviewOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.progress.Processed++
	switch {
	case outcome.Skipped:
	case outcome.Success:
		p.progress.Succeeded++
	default:
		p.progress.Failed++
	}

	if p.progress.Total > 0 {
		p.progress.Fraction = float64(p.progress.Processed) / float64(p.progress.Total)
	}
}

func (p *progressTracker) finish(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	completedAt := now
	p.progress.State = domain.BatchStateCompleted
	p.progress.CompletedAt = &completedAt
	if p.progress.Total == 0 {
		p.progress.Fraction = 1
	}
}

func (p *progressTracker) snapshot() domain.BatchProgress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}
