/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/phuonguno98/unonet/internal/config"
	"github.com/phuonguno98/unonet/internal/dashboard"
	"github.com/phuonguno98/unonet/pkg/version"
	"github.com/spf13/cobra"
)

var (
	// Global persistent flags (shared by subcommands)
	logLevel string
	logFile  string

	// Dashboard flags
	historySize     int
	pruneAfter      int
	includeNetworks string
	excludeNetworks string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "unonet",
	Short: "UnoNet - Terminal dashboard for network interface throughput",
	Long: `UnoNet polls the host's network interface counters and shows, for every
interface, the bytes sent and received since the last refresh, the cumulative
totals, the hardware address and a rolling sparkline of sent bytes.

Press 'q' to quit.

Examples:
  # Watch every interface
  unonet

  # Only physical interfaces, keep a longer history
  unonet --exclude-networks "lo,docker0" --history-size 2048`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel,
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path (empty = no logging, the terminal is used by the dashboard)")

	rootCmd.Flags().IntVar(&historySize, "history-size", config.DefaultHistorySize,
		"Number of samples kept per interface for the sparkline")
	rootCmd.Flags().IntVar(&pruneAfter, "prune-after", config.DefaultPruneAfter,
		"Drop an interface's history after it is missing for this many ticks (0 = never)")
	rootCmd.Flags().StringVar(&includeNetworks, "include-networks", "",
		"Comma-separated list of network interfaces to monitor (empty = all)")
	rootCmd.Flags().StringVar(&excludeNetworks, "exclude-networks", "",
		"Comma-separated list of network interfaces to exclude")
}

// buildConfig creates a Config object from parsed flags.
func buildConfig() (*config.Config, error) {
	cfg := config.Default()
	cfg.HistorySize = historySize
	cfg.PruneAfter = pruneAfter
	cfg.IncludeNetworks = config.ParseCommaSeparated(includeNetworks)
	cfg.ExcludeNetworks = config.ParseCommaSeparated(excludeNetworks)
	cfg.LogLevel = logLevel
	cfg.LogFile = logFile

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// runDashboard is the main entry point.
func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	logger.Info("Starting UnoNet",
		"version", version.Info(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())

	// Raw mode swallows Ctrl+C, but SIGTERM still has to restore the terminal
	ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dashboard.Run(ctx, cfg, logger); err != nil {
		logger.Error("Dashboard stopped with error", "error", err)
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}

// InitLogger initializes and returns a slog.Logger based on the provided settings.
// It is shared by all commands to ensure consistent logging format. Without a
// log file, records are discarded so they never corrupt the dashboard.
// The returned closer releases the log file and must be closed after the
// last record is written.
func InitLogger(levelStr, fileStr string) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if fileStr == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), nopCloser{}, nil
	}

	f, err := os.OpenFile(fileStr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// runContext returns the command context, falling back to Background.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
