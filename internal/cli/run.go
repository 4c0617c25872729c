package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/export"
	exportdomain "github.com/smallbiznis/petrel/internal/export/domain"
	"github.com/smallbiznis/petrel/internal/integrity"
	"github.com/smallbiznis/petrel/internal/loader"
	loaderdomain "github.com/smallbiznis/petrel/internal/loader/domain"
	"github.com/smallbiznis/petrel/internal/migration"
	"github.com/smallbiznis/petrel/pkg/db"
	"github.com/smallbiznis/petrel/pkg/runid"
)

func newRunCommand() *cobra.Command {
	var (
		sourcePath string
		flags      exportFlags
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: migrate, load, validate, export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				loadSvc   loaderdomain.Service
				exportSvc exportdomain.Service
			)
			return runApp(cmd.Context(), func(ctx context.Context) error {
				// One run ID covers both stages so logs and pushed metrics
				// from a full pipeline invocation correlate.
				ctx, _ = runid.Ensure(ctx)
				if err := runLoad(ctx, cmd.OutOrStdout(), loadSvc, sourcePath); err != nil {
					return err
				}
				return runExport(ctx, cmd.OutOrStdout(), exportSvc, flags.request())
			},
				baseModules(db.Options{AllowCreate: true}),
				migration.Module,
				integrity.Module,
				loader.Module,
				export.Module,
				fx.Populate(&loadSvc),
				fx.Populate(&exportSvc),
			)
		},
	}
	cmd.Flags().StringVar(&sourcePath, "source", "",
		"path to the production workbook (defaults to the configured source)")
	flags.register(cmd)
	return cmd
}
