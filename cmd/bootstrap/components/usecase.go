package components

import (
	"ev-carbon-market/internal/pkg/clock"
	"ev-carbon-market/internal/pkg/config"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
	"ev-carbon-market/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewListingCommands,
		commands.NewVerificationCommands,
		commands.NewDisputeCommands,
		NewTransactionCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewListingQueries,
		queries.NewTransactionQueries,
		queries.NewDisputeQueries,
	),
)

func NewTransactionCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	clk clock.Clock,
	audit shared.AuditSink,
	notifier shared.NotificationSink,
) commands.TransactionCommands {
	return commands.NewTransactionCommands(uow, gateway, clk, audit, notifier, cfg.Payment.ChargeTimeout)
}
