package components

import (
	"ev-carbon-market/internal/handler"
	"ev-carbon-market/internal/handler/api"
	"ev-carbon-market/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewListingHandler,
		api.NewTransactionHandler,
		api.NewVerificationHandler,
		api.NewDisputeHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
