package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/export"
	exportdomain "github.com/smallbiznis/petrel/internal/export/domain"
	"github.com/smallbiznis/petrel/pkg/db"
)

type exportFlags struct {
	outputDir string
	codec     string
	parallel  int
	failFast  bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.outputDir, "output", "",
		"directory for Parquet artifacts (defaults to the configured directory)")
	cmd.Flags().StringVar(&f.codec, "codec", "",
		"compression codec: snappy, gzip, zstd or uncompressed")
	cmd.Flags().IntVar(&f.parallel, "parallel", 0,
		"number of tables exported concurrently")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false,
		"abort the run on the first table failure")
}

func (f *exportFlags) request() exportdomain.ExportRequest {
	return exportdomain.ExportRequest{
		OutputDir: f.outputDir,
		Codec:     f.codec,
		Workers:   f.parallel,
		FailFast:  f.failFast,
	}
}

func newExportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export store tables to validated Parquet artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc exportdomain.Service
			err := runApp(cmd.Context(), func(ctx context.Context) error {
				return runExport(ctx, cmd.OutOrStdout(), svc, flags.request())
			},
				baseModules(db.Options{AllowCreate: false}),
				export.Module,
				fx.Populate(&svc),
			)
			if errors.Is(err, db.ErrMissingDatabase) {
				return fmt.Errorf("%w; run 'petrel load' first", err)
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func runExport(ctx context.Context, out io.Writer, svc exportdomain.Service, req exportdomain.ExportRequest) error {
	sum, err := svc.Export(ctx, req)
	if err != nil {
		return err
	}

	for _, meta := range sum.Succeeded() {
		fmt.Fprintf(out, "%-20s %10s rows (%.4f MB)\n",
			meta.Table, humanize.Comma(meta.Rows), float64(meta.SizeBytes)/(1024*1024))
	}
	if failed := sum.Failed(); len(failed) > 0 {
		for _, res := range failed {
			fmt.Fprintf(out, "%-20s failed: %v\n", res.Table, res.Err)
		}
		return fmt.Errorf("export incomplete: %d of %d tables failed",
			len(failed), len(sum.Results))
	}

	fmt.Fprintf(out, "manifest written to %s\n", sum.ManifestPath)
	return nil
}
