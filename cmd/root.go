// Package cmd provides the command-line interface of the page replacement
// simulator.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"ixtza/ajk/pagesim/config"
	"ixtza/ajk/pagesim/logger"
	"ixtza/ajk/pagesim/report"
)

var (
	envFile    string
	logLevel   string
	recordPath string

	cfg       config.Config
	recorder  report.Recorder
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Page replacement simulator.",
	Long: `pagesim replays a memory reference trace against a fixed number of ` +
		`page frames and reports the faults, replacements and disk writes of ` +
		`the FIFO, LRU and OPT replacement policies.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if recorder != nil {
			return recorder.Flush()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "",
		"dotenv file with PAGESIM_* settings (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"DEBUG, INFO, WARN or ERROR (overrides PAGESIM_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&recordPath, "record", "",
		"SQLite database to record run summaries into")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logCloser, err = logger.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	atexit.Register(func() { logCloser.Close() })

	if recordPath != "" {
		recorder, err = report.NewSQLiteRecorder(recordPath)
		if err != nil {
			return err
		}
	}

	slog.Debug("configuration loaded",
		"pageSize", cfg.PageSize,
		"memoryAccessTime", cfg.MemoryAccessTime,
		"diskAccessTime", cfg.DiskAccessTime,
		"progressCadence", cfg.ProgressCadence,
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. An interrupt cancels a running simulation. It exits
// through atexit so registered flushes run.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
