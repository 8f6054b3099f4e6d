// Package scheduler runs the periodic maturity sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/metrics"
	"github.com/robfig/cron/v3"
)

const (
	maturityJob = "maturity_sweep"
	batchSize   = 100
	// maxBatches bounds one run so a stuck row cannot spin the job forever.
	maxBatches = 50
)

// Sweeper flags matured commitments.
type Sweeper interface {
	SweepMatured(ctx context.Context, now time.Time, limit int) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *slog.Logger
	now     func() time.Time
}

// New registers the maturity sweep on cfg.MaturitySpec. Invalid specs are
// rejected here rather than at Start.
func New(cfg *config.Scheduler, sweeper Sweeper, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		logger:  logger.With("component", "scheduler"),
		now:     func() time.Time { return time.Now().UTC() },
	}
	if _, err := s.cron.AddFunc(cfg.MaturitySpec, func() { s.RunMaturity(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid maturity schedule %q: %w", cfg.MaturitySpec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
	}
}

// RunMaturity sweeps in batches until a short batch signals the backlog is
// drained. It returns the number of commitments flagged.
func (s *Scheduler) RunMaturity(ctx context.Context) int {
	now := s.now()
	total := 0
	for i := 0; i < maxBatches; i++ {
		n, err := s.sweeper.SweepMatured(ctx, now, batchSize)
		total += n
		if err != nil {
			metrics.RecordJob(maturityJob, err)
			s.logger.Error("Maturity sweep failed", "error", err, "flagged", total)
			return total
		}
		if n < batchSize {
			break
		}
	}
	metrics.RecordJob(maturityJob, nil)
	if total > 0 {
		s.logger.Info("Maturity sweep finished", "flagged", total)
	}
	return total
}
