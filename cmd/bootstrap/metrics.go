package bootstrap

import (
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/pkg/metrics"
	"turnos-service/internal/usecase/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		NewOutcomeRecorder,
	),
)

// NewMetrics returns nil when metrics are disabled.
func NewMetrics(cfg config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(reg)
}

func NewOutcomeRecorder(m *metrics.Metrics) commands.OutcomeRecorder {
	if m == nil {
		return metrics.Nop{}
	}
	return m
}
