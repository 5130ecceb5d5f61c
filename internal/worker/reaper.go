package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// Reaper runs the expiry sweep on a schedule. It is a safety net behind the
// claim-time expiry check, so requests go EXPIRED even when nobody touches
// them.
type Reaper struct {
	cron  *cron.Cron
	sweep commands.SweepCommands
	cfg   config.ReaperConfig
}

func NewReaper(sweep commands.SweepCommands, cfg config.ReaperConfig) *Reaper {
	return &Reaper{
		cron:  cron.New(),
		sweep: sweep,
		cfg:   cfg,
	}
}

func (r *Reaper) Start() error {
	if !r.cfg.Enabled {
		slog.Info("expiry reaper disabled")
		return nil
	}

	_, err := r.cron.AddFunc(r.cfg.Schedule, r.runSweep)
	if err != nil {
		return err
	}

	r.cron.Start()
	slog.Info("expiry reaper started", "schedule", r.cfg.Schedule)
	return nil
}

func (r *Reaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Reaper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := r.sweep.SweepExpired(ctx)
	if err != nil {
		slog.Error("expiry sweep failed", "error", err.Error())
		return
	}
	if expired > 0 {
		slog.Info("expiry sweep completed", "expired", expired)
	}
}
