package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/gyeh/claimview/internal/api"
	"github.com/gyeh/claimview/internal/exitcode"
	"github.com/gyeh/claimview/internal/jump"
	"github.com/gyeh/claimview/internal/logging"
	"github.com/gyeh/claimview/internal/session"
	"github.com/gyeh/claimview/internal/source"
	"github.com/gyeh/claimview/internal/viewer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the claim review API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	f.StringVar(&cfg.PDFPath, "pdf", os.Getenv("CLAIMVIEW_PDF_PATH"), "Source PDF path (or set CLAIMVIEW_PDF_PATH)")
	f.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "How long a fetched claim document is reused")
	f.Float64Var(&cfg.RetryRate, "retry-rate", cfg.RetryRate, "Allowed reloads per second")
	f.IntVar(&cfg.RetryBurst, "retry-burst", cfg.RetryBurst, "Reload burst size")
	f.DurationVar(&cfg.EmphasisDuration, "emphasis", cfg.EmphasisDuration, "How long a jumped-to page stays highlighted")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "serve")

	if err := cfg.ValidateServe(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := jump.NewLoop()
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	var doc *viewer.Document
	if cfg.PDFPath != "" {
		widths := viewer.WidthPolicy{Min: cfg.PageWidthMin, Max: cfg.PageWidthMax, Gutter: cfg.PageGutter}
		doc = viewer.NewDocument(cfg.PDFPath, widths, log)
	}

	cache := source.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL)
	ctrl := session.New(session.Options{
		DataURL:          cfg.DataURL,
		Fetcher:          source.NewFetcher(cfg.FetchTimeout, cfg.FetchMaxBytes, cache, log),
		Document:         doc,
		Scheduler:        loop,
		EmphasisDuration: cfg.EmphasisDuration,
		RetryLimiter:     rate.NewLimiter(rate.Limit(cfg.RetryRate), cfg.RetryBurst),
		Log:              log,
	})

	go ctrl.Load(ctx)
	if doc != nil {
		go ctrl.LoadPDF()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(ctrl, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("data", cfg.DataURL).Str("pdf", cfg.PDFPath).Msg("serving claim review API")
		srvErr <- srv.ListenAndServe()
	}()

	exit := exitcode.Success
	select {
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			exit = exitcode.ServeError
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown incomplete")
	}
	stop()
	<-loopDone

	if exit != exitcode.Success {
		os.Exit(exit)
	}
	return nil
}
