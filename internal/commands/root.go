package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyup-dev/tallyup/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tallyup",
		Short:   "Personal finance CSV import and classification",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newReclassifyCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newAliasesCommand())
	rootCmd.AddCommand(newBackupCommand())

	return rootCmd
}
