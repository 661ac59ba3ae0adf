package components

import (
	"shortstay/internal/handler"
	"shortstay/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewJobsHandler,
	),
	fx.Invoke(handler.NewRouter),
)
