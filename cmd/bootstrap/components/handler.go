package components

import (
	"turnos-service/internal/handler"
	"turnos-service/internal/handler/api"
	"turnos-service/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewSettingsHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, booking *api.BookingHandler, settings *api.SettingsHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Booking: booking, Settings: settings}
		},
	),
	fx.Invoke(handler.NewRouter),
)
