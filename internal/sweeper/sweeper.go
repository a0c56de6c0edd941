// Package sweeper flips overdue pending dose logs to missed on a cron
// schedule. The transition is a compare-and-swap on status=pending, so
// racing user updates lose or win deterministically.
package sweeper

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/limbo/medtrack/internal/repository"
	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	doseRepo repository.DoseLogsRepositoryI
	cron     *cron.Cron
	grace    time.Duration
}

// New builds a sweeper that treats a pending dose as missed once its
// scheduled time is more than grace in the past.
func New(doseRepo repository.DoseLogsRepositoryI, grace time.Duration) *Sweeper {
	if doseRepo == nil {
		log.Fatal("on sweeper provided nil doseRepo")
	}
	return &Sweeper{
		doseRepo: doseRepo,
		cron:     cron.New(),
		grace:    grace,
	}
}

// Start schedules the sweep with a cron spec like "@every 5m".
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	flipped, err := s.doseRepo.MarkOverdueMissed(ctx, time.Now().Add(-s.grace))
	if err != nil {
		slog.Error("staleness sweep failed", slog.String("error", err.Error()))
		return
	}
	if flipped > 0 {
		slog.Info("staleness sweep flipped overdue doses", slog.Int64("count", flipped))
	}
}
