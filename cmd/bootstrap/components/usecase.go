package components

import (
	"log/slog"
	"time"

	"shortstay/internal/infra/gateway"
	"shortstay/internal/infra/notify"
	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/config"
	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/queries"
	"shortstay/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewLocation,
	NewPaymentGateway,
	fx.Annotate(
		notify.NewLogDispatcher,
		fx.As(new(shared.NotificationDispatcher)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		func(bc commands.BookingCommands) commands.BookingConfirmer { return bc },
		NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewWalletQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewLocation(cfg config.Config, logger *slog.Logger) *time.Location {
	loc, err := time.LoadLocation(cfg.Jobs.TimeZone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", "timezone", cfg.Jobs.TimeZone)
		return time.UTC
	}
	return loc
}

// NewPaymentGateway picks the charge backend: Paystack when credentials are
// configured, the sandbox otherwise.
func NewPaymentGateway(cfg config.Config, clk clock.Clock, logger *slog.Logger) shared.PaymentGateway {
	if cfg.Payment.PaystackSecretKey == "" {
		logger.Warn("no Paystack secret key configured, using sandbox gateway")
		return gateway.NewSandboxGateway(clk, logger)
	}
	return gateway.NewPaystackGateway(cfg.Payment)
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	catalog shared.PropertyCatalog,
	dispatcher shared.NotificationDispatcher,
	clk clock.Clock,
	cfg config.Config,
	loc *time.Location,
	logger *slog.Logger,
) commands.BookingCommands {
	return commands.NewBookingCommands(uow, catalog, dispatcher, clk, cfg.Booking, loc, logger)
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gw shared.PaymentGateway,
	confirmer commands.BookingConfirmer,
	dispatcher shared.NotificationDispatcher,
	clk clock.Clock,
	logger *slog.Logger,
) commands.PaymentCommands {
	return commands.NewPaymentCommands(uow, gw, confirmer, dispatcher, clk, logger)
}
