package bootstrap

import (
	"turnos-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	SettingsModule,
	IntegrationsModule,
	MetricsModule,
	components.UseCaseModule,
	components.HandlerModule,
)
