package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimview/internal/config"
	"github.com/gyeh/claimview/internal/db"
	"github.com/gyeh/claimview/internal/exitcode"
	"github.com/gyeh/claimview/internal/export"
	"github.com/gyeh/claimview/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Normalize a directory of claim documents and export their summaries",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&cfg.ExportDir, "dir", "", "Directory of claim JSON documents (required)")
	f.StringVar(&cfg.ExportFormat, "format", cfg.ExportFormat, "Output: postgres or parquet")
	f.StringVar(&cfg.OutputPath, "output", "", "Parquet output path (parquet format only)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "export")
	ctx := context.Background()

	if err := cfg.ValidateExport(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var sink export.Sink
	switch cfg.ExportFormat {
	case config.FormatPostgres:
		pool, err := db.NewPool(ctx, cfg.DSN, log)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		sink = export.NewPostgresSink(pool, log)
	case config.FormatParquet:
		sink = export.NewParquetSink(cfg.OutputPath, log)
	}

	summary, err := export.Run(ctx, sink, log, cfg.ExportDir)
	if err != nil {
		var pe *export.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("export failed")
			if pe.Phase == "discover" {
				os.Exit(exitcode.ValidationError)
			}
			os.Exit(exitcode.ExportError)
		}
		log.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.ExportError)
	}

	fmt.Printf("Export complete: %d of %d documents written to %s, %d rejected (%.1fs)\n",
		summary.RowsWritten, summary.FilesFound, summary.Format, summary.RowsRejected, summary.DurationTotal.Seconds())
	for _, path := range summary.Rejected {
		fmt.Printf("  rejected: %s\n", path)
	}
	if summary.RowsRejected > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
