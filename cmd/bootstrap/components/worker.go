package components

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewReaper,
	),
	fx.Invoke(registerReaper),
)

func NewReaper(sweep commands.SweepCommands, cfg config.Config) *worker.Reaper {
	return worker.NewReaper(sweep, cfg.Reaper)
}

func registerReaper(lc fx.Lifecycle, reaper *worker.Reaper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return reaper.Start()
		},
		OnStop: func(_ context.Context) error {
			reaper.Stop()
			return nil
		},
	})
}
