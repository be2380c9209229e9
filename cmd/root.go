package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/tabloom-cli/internal/ai"
	cfgpkg "github.com/KaramelBytes/tabloom-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zap.NewNop()
	runID  string
)

var rootCmd = &cobra.Command{
	Use:   "tabloom",
	Short: "Tabloom CLI: profile tabular data and turn it into AI-ready context",
	Long:  `Tabloom is a CLI tool that profiles CSV/TSV/XLSX datasets, reconciles multiple files into one report, and renders grounded prompts for local AI models via Ollama.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on transient errors (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	runID = uuid.NewString()
	if debug {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	logger.Debug("starting", zap.String("run_id", runID))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

// newRuntime exposes the configured backend behind the generate interface;
// commands that need Ollama-specific calls use newOllamaClient directly.
func newRuntime() ai.Runtime {
	return newOllamaClient()
}

func newOllamaClient() *ai.OllamaClient {
	host := ""
	timeout := 0
	retryMax, baseMs, maxMs := 0, 0, 0
	if cfg != nil {
		host = cfg.OllamaHost
		timeout = cfg.OllamaTimeoutSec
		if cfg.HTTPTimeoutSec > timeout {
			timeout = cfg.HTTPTimeoutSec
		}
		retryMax = cfg.RetryMaxAttempts
		baseMs = cfg.RetryBaseDelayMs
		maxMs = cfg.RetryMaxDelayMs
	}
	return ai.NewOllamaClient(
		host,
		time.Duration(timeout)*time.Second,
		retryMax,
		time.Duration(baseMs)*time.Millisecond,
		time.Duration(maxMs)*time.Millisecond,
	)
}

func defaultModel() string {
	if cfg != nil && cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	return "llama3.1:8b"
}
