package components

import (
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/gateway"
	"ev-carbon-market/internal/infra/readstore"
	"ev-carbon-market/internal/infra/uow"
	"ev-carbon-market/internal/pkg/config"
	"ev-carbon-market/internal/usecase/queries"
	"ev-carbon-market/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	gatewayModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	uow.NewPostgresUoW,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewListingReadStore,
			fx.As(new(queries.ListingViewRepo)),
		),
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(queries.TransactionViewRepo)),
		),
		fx.Annotate(
			readstore.NewDisputeReadStore,
			fx.As(new(queries.DisputeViewRepo)),
		),
	),
)

var gatewayModule = fx.Module("persistence/gateway",
	fx.Provide(
		NewPaymentGateway,
		gateway.NewDBNotificationSink,
		gateway.NewDBAuditSink,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewPaymentGateway(cfg config.Config) shared.PaymentGateway {
	return gateway.NewSimulatedPaymentGateway(cfg.Payment.SuccessRate)
}
