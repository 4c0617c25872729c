package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/clock"
	"github.com/smallbiznis/petrel/internal/config"
	"github.com/smallbiznis/petrel/internal/observability"
	"github.com/smallbiznis/petrel/internal/runmetrics"
	"github.com/smallbiznis/petrel/pkg/db"
)

func baseModules(opts db.Options) fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		runmetrics.Module,
		clock.Module,
		fx.Supply(opts),
		db.Module,
	)
}

// runApp assembles a one-shot fx application, runs job in the foreground
// between Start and Stop, and reports the job's error. Stop always runs so
// shutdown hooks (log sync, final metrics push, store close) fire even when
// the job fails or the context is cancelled.
func runApp(ctx context.Context, job func(ctx context.Context) error, opts ...fx.Option) error {
	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, startCancel := context.WithTimeout(ctx, app.StartTimeout())
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	jobErr := job(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil && jobErr == nil {
		jobErr = err
	}
	return jobErr
}
