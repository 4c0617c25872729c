package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/integrity"
	"github.com/smallbiznis/petrel/internal/loader"
	loaderdomain "github.com/smallbiznis/petrel/internal/loader/domain"
	"github.com/smallbiznis/petrel/internal/migration"
	"github.com/smallbiznis/petrel/pkg/db"
)

func newLoadCommand() *cobra.Command {
	var sourcePath string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the production workbook into the relational store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc loaderdomain.Service
			return runApp(cmd.Context(), func(ctx context.Context) error {
				return runLoad(ctx, cmd.OutOrStdout(), svc, sourcePath)
			},
				baseModules(db.Options{AllowCreate: true}),
				migration.Module,
				integrity.Module,
				loader.Module,
				fx.Populate(&svc),
			)
		},
	}
	cmd.Flags().StringVar(&sourcePath, "source", "",
		"path to the production workbook (defaults to the configured source)")
	return cmd
}

func runLoad(ctx context.Context, out io.Writer, svc loaderdomain.Service, sourcePath string) error {
	sum, err := svc.Load(ctx, loaderdomain.LoadRequest{SourcePath: sourcePath})
	if err != nil {
		return err
	}

	for _, stage := range sum.Stages {
		fmt.Fprintf(out, "%-20s %10s rows loaded, %s discarded\n",
			stage.Table, humanize.Comma(stage.Loaded), humanize.Comma(stage.Discarded))
	}
	for _, check := range sum.Report.Results {
		status := "ok"
		if !check.Passed {
			status = fmt.Sprintf("FAILED (%s)", check.Detail)
		}
		fmt.Fprintf(out, "integrity %-22s %s\n", check.Name, status)
	}

	if !sum.Report.Passed() {
		return fmt.Errorf("integrity validation failed: %d of %d checks",
			len(sum.Report.Failures()), len(sum.Report.Results))
	}

	fmt.Fprintf(out, "load complete: %s rows in %s\n",
		humanize.Comma(sum.Loaded()), sum.Duration.Round(time.Millisecond))
	return nil
}
