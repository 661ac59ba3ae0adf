package components

import (
	"context"
	"log/slog"

	"shortstay/internal/jobs"
	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/config"
	"shortstay/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(StartScheduler),
)

func NewScheduler(cfg config.Config, clk clock.Clock, logger *slog.Logger, cmds commands.BookingCommands) *jobs.Scheduler {
	s := jobs.NewScheduler(cfg.Jobs, clk, logger)
	jobs.RegisterBookingJobs(s, cfg.Jobs, cmds)
	return s
}

func StartScheduler(lc fx.Lifecycle, s *jobs.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
