package components

import (
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.BillingConfig { return cfg.Billing },
	commands.NewMonetizationGate,
	commands.NewCouponLedger,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewInterviewCommands,
		commands.NewLifecycleCommands,
		commands.NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewInterviewQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
