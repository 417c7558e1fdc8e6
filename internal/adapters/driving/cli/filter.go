package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

var filterFlags batchFlags

var filterCmd = &cobra.Command{
	Use:   "filter <dir>",
	Short: "Keep id and append columns from every CSV under a directory",
	Long: `Walk <dir> recursively and keep the id and append columns of every file.

Each input <dir>/.../<name> is written to filtered/<base of dir>/fil-<name>
without a row index. Files whose output already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, domain.ProfileFilter, args[0], &filterFlags)
	},
}

func init() {
	addBatchFlags(filterCmd, &filterFlags)
	rootCmd.AddCommand(filterCmd)
}
