package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallbiznis/petrel/internal/migration"
	"github.com/smallbiznis/petrel/pkg/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the relational schema to the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context(), func(ctx context.Context) error {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			},
				baseModules(db.Options{AllowCreate: true}),
				migration.Module,
			)
		},
	}
}
