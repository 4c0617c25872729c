package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the petrel command tree. Database connectivity is
// configured through the environment, not flags, so every subcommand talks
// to the same store as the deployment it runs next to.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "petrel",
		Short: "Volve production data pipeline",
		Long: `petrel moves the Volve oil field production history from the published
Excel workbook into a relational store and publishes validated Parquet
artifacts from it.

Store connectivity comes from the environment (DATABASE_TYPE,
DATABASE_PATH, DATABASE_HOST, ...); pipeline defaults such as the
workbook location and export directory come from pipeline.yml.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(),
		newLoadCommand(),
		newExportCommand(),
		newRunCommand(),
	)
	return root
}
