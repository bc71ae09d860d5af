package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyup-dev/tallyup/internal/ledger"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Export or import categories and their rules",
	}
	rulesCmd.AddCommand(newRulesExportCommand())
	rulesCmd.AddCommand(newRulesImportCommand())
	return rulesCmd
}

func newRulesExportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export categories and rules as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()
			return e.store.ExportRules(f, time.Now().UnixMilli())
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newRulesImportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import categories and rules from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			if err := e.store.ImportRules(f); err != nil {
				return err
			}
			fmt.Println("Rules imported")
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newAliasesCommand() *cobra.Command {
	aliasesCmd := &cobra.Command{
		Use:   "aliases",
		Short: "Export or import merchant aliases",
	}
	aliasesCmd.AddCommand(newAliasesExportCommand())
	aliasesCmd.AddCommand(newAliasesImportCommand())
	return aliasesCmd
}

func newAliasesExportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export merchant aliases as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()
			return e.store.ExportAliases(f, time.Now().UnixMilli())
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newAliasesImportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import merchant aliases from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			if err := e.store.ImportAliases(f); err != nil {
				return err
			}
			fmt.Println("Aliases imported")
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newBackupCommand() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the full transaction set",
	}
	backupCmd.AddCommand(newBackupExportCommand())
	backupCmd.AddCommand(newBackupImportCommand())
	return backupCmd
}

func newBackupExportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export all transactions as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			txns, err := e.ledger.Load()
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()
			return ledger.ExportBackup(f, txns)
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newBackupImportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a transaction backup, merging into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			res, err := e.pipe.ImportBackup(f)
			if err != nil {
				return err
			}
			fmt.Printf("Merged %d of %d transactions (ledger now %d)\n", res.Merged, res.Accepted, res.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}
