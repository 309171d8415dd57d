package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tellus-hq/tellus/pkg/cli"
	"tellus-hq/tellus/pkg/results"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

var pruneFlags struct {
	daemon bool
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Enforce result retention limits",
	Long: `Delete stored results past the retention period and beyond the record cap.

By default prune runs once and exits. With --daemon it keeps running and
prunes on the configured cron schedule until interrupted.

Examples:
  # One-shot prune
  tellus prune

  # Scheduled pruning (uses results.prune_schedule from config)
  tellus prune --daemon`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().BoolVar(&pruneFlags.daemon, "daemon", false, "run on the configured cron schedule")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	store, err := results.OpenStore(cfg.Results)
	if err != nil {
		return cli.NewCommandError("prune", err)
	}
	defer store.Close()

	registry, stopMetrics := startMetrics(cfg)
	defer stopMetrics()
	var cacheMetrics *metrics.CacheMetrics
	if registry != nil {
		cacheMetrics = metrics.NewCacheMetrics(&cfg.Metrics, registry)
	}

	pruner := results.NewPruner(store, cfg.Results, cacheMetrics)
	ctx := cli.SetupSignalHandler()

	if pruneFlags.daemon {
		scheduler := results.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("prune", err)
		}
		<-ctx.Done()
		scheduler.Stop()
		return nil
	}

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		return cli.NewCommandError("prune", err)
	}
	fmt.Printf("Deleted %d record(s)\n", deleted)
	return nil
}
