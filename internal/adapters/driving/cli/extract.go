package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

var extractFlags batchFlags

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Keep benchmark columns from the CSV files in a directory",
	Long: `Keep the bbs, n, id, search and search_false_pos columns of every *.csv
file directly inside [dir] (default: the current directory).

Each input <name> is written to extracted-<name>.csv in the current
directory with a leading row-index column. Files whose output already
exists are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runBatch(cmd, domain.ProfileExtract, dir, &extractFlags)
	},
}

func init() {
	addBatchFlags(extractCmd, &extractFlags)
	rootCmd.AddCommand(extractCmd)
}
