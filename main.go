package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quotefetcher/internal/config"
	"quotefetcher/internal/coordinator"
	"quotefetcher/internal/fetcher"
	"quotefetcher/internal/quote"
	"quotefetcher/internal/ratelimit"
)

func newRootCmd() *cobra.Command {
	var (
		output   string
		timeout  time.Duration
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "quotefetcher [TICKER...]",
		Short: "Fetch quote summaries from Yahoo Finance",
		Long: "Fetches the quote summary page of each ticker and prints the extracted fields.\n" +
			"Tickers given as arguments replace QUOTE_TICKERS from the environment or config file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if len(args) > 0 {
				cfg.Tickers = args
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := setupLogger(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "per-request timeout")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	return cmd
}

func setupLogger(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// run wires the transport, the scraper and the coordinator from cfg
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	limiter := ratelimit.New()
	limiter.Set(ratelimit.SourceYahoo, cfg.RequestsPerSecond, 1)

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.ClientConfig{
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		RetryCount: cfg.RetryCount,
	}, limiter)

	coord := coordinator.New(
		quote.NewScraper(httpFetcher),
		cfg.Tickers,
		out,
		coordinator.Format(cfg.Output),
	)

	slog.Info("fetching quote summaries", "tickers", len(cfg.Tickers), "base_url", cfg.BaseURL)
	if err := coord.Run(ctx); err != nil {
		return fmt.Errorf("coordinator failed: %w", err)
	}
	return nil
}

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Warn("received interrupt signal, shutting down")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
