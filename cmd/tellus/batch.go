package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tellus-hq/tellus/pkg/cli"
	"tellus-hq/tellus/pkg/interp/ast"
	"tellus-hq/tellus/pkg/results"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

var batchFlags struct {
	dataFile string
	format   string
	store    bool
	progress bool
}

var batchCmd = &cobra.Command{
	Use:   "batch <interpretation>",
	Short: "Evaluate many property-data records",
	Long: `Evaluate a list of property-data records against a named interpretation.

Records fan out across a bounded worker pool; results keep the input order
and are identical to evaluating each record alone.

The data file is a YAML list of property maps:

  - ph: 6.5
    slope_percent: 4
  - ph: 5.1
    slope_percent: 18

Examples:
  # Evaluate a survey and emit CSV
  tellus batch "Dwellings With Basements" --data sites.yaml --format csv

  # Persist every result to the configured store
  tellus batch "Dwellings With Basements" --data sites.yaml --store`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFlags.dataFile, "data", "d", "", "records YAML file (required)")
	batchCmd.Flags().StringVarP(&batchFlags.format, "format", "f", "csv", "output format: text, json, csv")
	batchCmd.Flags().BoolVar(&batchFlags.store, "store", false, "persist results to the configured store")
	batchCmd.Flags().BoolVar(&batchFlags.progress, "progress", false, "show a progress bar on stderr")
	batchCmd.MarkFlagRequired("data")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	name := args[0]

	records, err := readRecords(batchFlags.dataFile)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}

	ctx := cli.SetupSignalHandler()

	eng, err := newEngine(cfg)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	defer eng.Close()

	registry, stopMetrics := startMetrics(cfg)
	defer stopMetrics()
	if registry != nil {
		eng.SetMetrics(metrics.NewEvaluationMetrics(&cfg.Metrics, registry))
	}

	var onRecord func(int64)
	var progress cli.ProgressReporter
	if batchFlags.progress {
		progress = cli.NewProgressReporter(os.Stderr)
		progress.Start(int64(len(records)))
		onRecord = progress.Update
	}

	out, err := eng.EvaluateBatchProgress(ctx, name, records, onRecord)
	if err != nil {
		return cli.NewInterpretationError("batch", name, err)
	}

	if progress != nil {
		progress.Finish()
	}

	if batchFlags.store {
		store, err := results.OpenStore(cfg.Results)
		if err != nil {
			return cli.NewCommandError("batch", err)
		}
		defer store.Close()

		for i, result := range out {
			hash := results.HashPropertyData(name, records[i])
			if err := store.Save(ctx, results.NewRecord(result, hash)); err != nil {
				return cli.NewInterpretationError("batch", name, err)
			}
		}
	}

	formatter := cli.NewFormatter(cli.OutputFormat(batchFlags.format))
	return formatter.FormatTo(os.Stdout, batchOutput(out))
}

func readRecords(path string) ([]ast.PropertyData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var records []ast.PropertyData
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records file %q: %w", path, err)
	}
	return records, nil
}
