package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kontolab/konto-ingest/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run Silver processing when watched files change",
	Long: `Watches the sources manifest and the Bronze directory and re-runs
Silver processing after every debounced change. Blocks until
interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := services.NewWatchService(a.processor, a.cfg.SourcesFile, a.cfg.BronzeDir)
	if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cmd.Println("watch stopped")
	return nil
}
