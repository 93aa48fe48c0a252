package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimview/internal/config"
)

var (
	cfg        = config.Default()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "claimview",
	Short: "Medical claim review: normalize claim documents and cross-check them against the source PDF",
	Long: "Loads claim-review JSON documents, derives a fully defaulted view model, serves the review " +
		"dashboard API with page-jump synchronization, and exports claim summaries to Postgres or Parquet.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return nil
		}
		return cfg.LoadFromFile(configPath)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Optional YAML config file")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("CLAIMVIEW_DSN"), "Postgres connection string (or set CLAIMVIEW_DSN)")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&cfg.DataURL, "data", os.Getenv("CLAIMVIEW_DATA_URL"), "Claim document URL or path (or set CLAIMVIEW_DATA_URL)")
	pf.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "Claim document fetch timeout")
	pf.Int64Var(&cfg.FetchMaxBytes, "max-bytes", cfg.FetchMaxBytes, "Maximum claim document size in bytes")
}
