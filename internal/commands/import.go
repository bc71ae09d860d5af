package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyup-dev/tallyup/internal/importer"
	"github.com/tallyup-dev/tallyup/internal/importlog"
	"github.com/tallyup-dev/tallyup/internal/logging"
)

func newImportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import [file.csv...]",
		Short: "Import bank/card CSV exports into the ledger",
		Long: "Import parses each CSV, classifies the rows and merges them into the\n" +
			"ledger. With no arguments, every CSV in <dir>/import/ is imported and\n" +
			"moved to import/processed/ afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				for _, path := range args {
					if err := importFile(e, path, false); err != nil {
						return err
					}
				}
				return nil
			}
			return importScanned(e)
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")

	return cmd
}

func importScanned(e *env) error {
	files, err := importer.Scan(e.dataRoot)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No CSV files in import/")
		return nil
	}
	for _, f := range files {
		if err := importFile(e, f.Path, e.cfg.Import.MarkProcessed); err != nil {
			return err
		}
	}
	return nil
}

func importFile(e *env, path string, markProcessed bool) error {
	log := logging.New()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	res, err := e.pipe.ImportCSV(f, nil)
	f.Close()
	if err != nil {
		return fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}

	log.Info().
		Str("file", filepath.Base(path)).
		Int("accepted", res.Accepted).
		Int("skipped", res.Skipped).
		Int("merged", res.Merged).
		Int("total", res.Total).
		Msg("imported")

	entry := importlog.Entry{
		Timestamp: time.Now(),
		File:      filepath.Base(path),
		Accepted:  res.Accepted,
		Skipped:   res.Skipped,
		Merged:    res.Merged,
		Total:     res.Total,
	}
	if err := importlog.Append(e.dataRoot, []importlog.Entry{entry}); err != nil {
		log.Warn().Err(err).Msg("failed to write import log")
	}

	if markProcessed {
		if err := importer.MarkProcessed(e.dataRoot, filepath.Base(path)); err != nil {
			log.Warn().Err(err).Msg("failed to mark processed")
		}
	}
	return nil
}

func newReclassifyCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "reclassify",
		Short: "Re-run classification over the stored ledger",
		Long: "Reclassify re-applies category rules, flow classification and merchant\n" +
			"aliases to every stored transaction. Run it after editing rules or\n" +
			"aliases. Transactions that already have a category keep it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			n, err := e.pipe.Reclassify()
			if err != nil {
				return err
			}
			fmt.Printf("Reclassified %d transactions\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")

	return cmd
}
