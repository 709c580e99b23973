package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/export"
	"github.com/rustyeddy/expenses/ledger"
	"github.com/rustyeddy/expenses/loader"
	"github.com/rustyeddy/expenses/pipeline"
	"github.com/rustyeddy/expenses/pkg/id"
	"github.com/rustyeddy/expenses/pkg/logging"
	"github.com/rustyeddy/expenses/report"
	"github.com/rustyeddy/expenses/rules"
)

var runCmd = &cobra.Command{
	Use:   "run <data-folder>",
	Short: "Process transaction exports and generate reports",
	Long: `Load CSV exports from the data folder (one subfolder per source),
run the processing pipeline, and write reports and dumps to the output
folder.

Example:
  expenses run ./data --config ./config --output ./output`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runConfigFolder string
	runOutputFolder string
	runVerbose      bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigFolder, "config", "c", "config", "configuration folder")
	runCmd.Flags().StringVarP(&runOutputFolder, "output", "o", "output", "output folder")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logging")
}

func runRun(cmd *cobra.Command, args []string) error {
	logCfg := logging.DefaultConfig()
	if runVerbose {
		logCfg.Level = slog.LevelDebug
	}
	logger := logging.Setup(logCfg)

	dataFolder := args[0]
	if _, err := os.Stat(dataFolder); err != nil {
		return fmt.Errorf("data folder %q: %w", dataFolder, err)
	}

	cfg, err := config.LoadDir(runConfigFolder, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	started := time.Now()
	rows, err := loader.LoadAll(dataFolder, cfg.Report.Sources.AppleCardOwners, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Total transactions loaded: %d\n", len(rows))

	audit := &rules.Audit{Logger: logger}
	enriched := pipeline.Run(rows, cfg, audit)
	fmt.Printf("Transactions after processing: %d\n", len(enriched))

	if len(enriched) == 0 {
		logger.Warn("no data to process after filtering")
		return nil
	}

	runID := id.New()
	logger.Info("pipeline complete", "run_id", runID, "rows", len(enriched))

	gen := report.NewGenerator(cfg, runOutputFolder)

	if cfg.Report.OutputSettings.SaveIntermediate {
		if err := saveIntermediate(cfg, gen, enriched, runID, started); err != nil {
			return err
		}
	}

	gen.PrintSummaryStatistics(enriched)
	if err := gen.GenerateAll(enriched); err != nil {
		return fmt.Errorf("generate reports: %w", err)
	}

	return nil
}

func saveIntermediate(cfg *config.Config, gen *report.Generator, rows []ledger.Transaction, runID string, started time.Time) error {
	if err := os.MkdirAll(gen.IntermediateDir(), 0755); err != nil {
		return fmt.Errorf("create intermediate dir: %w", err)
	}

	out := cfg.Report.OutputSettings
	if out.Format == "sqlite" {
		dbPath := filepath.Join(gen.IntermediateDir(), out.Files.Database)
		store, err := export.NewSQLite(dbPath, runID)
		if err != nil {
			return fmt.Errorf("open sqlite dump: %w", err)
		}
		defer store.Close()
		if err := gen.SaveIntermediate(rows, store); err != nil {
			return err
		}
		return store.RecordRun(started, time.Now(), len(rows))
	}

	csvPath := filepath.Join(gen.IntermediateDir(), out.Files.ProcessedTransactions)
	store, err := export.NewCSV(csvPath)
	if err != nil {
		return fmt.Errorf("create csv dump: %w", err)
	}
	defer store.Close()
	return gen.SaveIntermediate(rows, store)
}
