package runmetrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("runmetrics",
	fx.Provide(func() *prometheus.Registry {
		return prometheus.NewRegistry()
	}),
	fx.Provide(New),
	fx.Provide(NewPusher),
	fx.Invoke(registerFinalPush),
)

// registerFinalPush pushes the accumulated run metrics once on shutdown. A
// push failure is logged, never returned: metrics must not fail the run.
func registerFinalPush(lc fx.Lifecycle, pusher Pusher, registry *prometheus.Registry, logger *zap.Logger) {
	if pusher == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := pusher.Push(ctx, registry); err != nil {
				logger.Warn("run metrics push failed", zap.Error(err))
			}
			return nil
		},
	})
}
