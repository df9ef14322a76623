package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkirsche/restmon"
	"github.com/kkirsche/restmon/config"
)

// newLogger creates a text logger for CLI use. The text handler emits
// records as space-joined key=value tokens, which is the output contract
// of the monitor.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// runCmd sweeps the configured endpoints.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the configured endpoints",
	Long: `Poll every configured endpoint once and emit one structured log
record per endpoint.

By default a single sweep is performed and the command exits, which suits
cron-style scheduling. With --every the command keeps running and repeats
the sweep on the given interval; add --watch to hot-reload the config file
between sweeps.

The command runs until the sweep completes (or until interrupted when
--every is set).

Example:
  restmon run -c config.yaml
  restmon run -c config.yaml --every 30s --watch
  restmon run -c config.yaml --verbose`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	runCmd.Flags().Duration("every", 0, "repeat the sweep on this interval (0 = run once)")
	runCmd.Flags().Bool("watch", false, "reload the config file on change (requires --every)")
	runCmd.Flags().BoolP("verbose", "v", false, "emit debug-level records")
	_ = runCmd.MarkFlagRequired("config")
}

// clientHolder swaps the active client when the config is hot-reloaded.
// Close on the displaced client only releases idle connections, so an
// in-flight sweep on the old client finishes undisturbed.
type clientHolder struct {
	mu     sync.Mutex
	client *restmon.Client
}

func (h *clientHolder) get() *restmon.Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.client
}

func (h *clientHolder) swap(c *restmon.Client) {
	h.mu.Lock()
	old := h.client
	h.client = c
	h.mu.Unlock()
	if old != nil {
		old.Close()
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	every, _ := cmd.Flags().GetDuration("every")
	watch, _ := cmd.Flags().GetBool("watch")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if watch && every <= 0 {
		return fmt.Errorf("--watch requires --every")
	}

	logger := newLogger(verbose)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	buildClient := func(cfg *config.Config) (*restmon.Client, error) {
		opts := append(cfg.ClientOptions(), restmon.WithLogger(logger))
		return restmon.New(cfg.BaseURI, opts...)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if every <= 0 {
		defer client.Close()
		client.Run(ctx)
		return nil
	}

	holder := &clientHolder{client: client}
	defer holder.swap(nil)

	if watch {
		go func() {
			err := config.Watch(ctx, configFile, logger, func(next *config.Config) {
				nextClient, err := buildClient(next)
				if err != nil {
					logger.Error("reloaded config rejected, keeping previous client",
						"error", err)
					return
				}
				holder.swap(nextClient)
			})
			if err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	logger.Info("sweep cadence configured", "every", every.String(), "watch", watch)

	// immediate first sweep, then the interval owns cadence
	holder.get().Run(ctx)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("restmon stopped")
			return nil
		case <-ticker.C:
			holder.get().Run(ctx)
		}
	}
}
