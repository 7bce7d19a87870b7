// Package bootstrap monta a aplicação com fx: config, infraestrutura,
// casos de uso e handlers.
package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
	),
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log)
}

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	InfraModule,
	UseCaseModule,
	HandlerModule,
)
