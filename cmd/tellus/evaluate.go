package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tellus-hq/tellus/pkg/catalog"
	"tellus-hq/tellus/pkg/cli"
	"tellus-hq/tellus/pkg/config"
	"tellus-hq/tellus/pkg/interp/ast"
	"tellus-hq/tellus/pkg/interp/engine"
	"tellus-hq/tellus/pkg/results"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

var evaluateFlags struct {
	dataFile string
	format   string
	cached   bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <interpretation>",
	Short: "Evaluate one property-data record",
	Long: `Evaluate a single property-data record against a named interpretation.

The data file is a YAML map of property name to value. Values may be numbers
or strings; a missing property degrades the affected evaluations to
"not rated" instead of failing.

Examples:
  # Evaluate a site record
  tellus evaluate "Dwellings With Basements" --data site.yaml

  # JSON output
  tellus evaluate "Dwellings With Basements" --data site.yaml --format json

  # Reuse a recent stored result for identical data
  tellus evaluate "Dwellings With Basements" --data site.yaml --cached`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateFlags.dataFile, "data", "d", "", "property data YAML file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateFlags.format, "format", "f", "text", "output format: text, json, csv")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.cached, "cached", false, "serve from the result cache when a fresh record exists")
	evaluateCmd.MarkFlagRequired("data")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	name := args[0]

	data, err := readPropertyData(evaluateFlags.dataFile)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}

	ctx := cli.SetupSignalHandler()

	eng, err := newEngine(cfg)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}
	defer eng.Close()

	registry, stopMetrics := startMetrics(cfg)
	defer stopMetrics()
	if registry != nil {
		eng.SetMetrics(metrics.NewEvaluationMetrics(&cfg.Metrics, registry))
	}

	var cache *results.Cache
	if evaluateFlags.cached {
		store, err := results.OpenStore(cfg.Results)
		if err != nil {
			return cli.NewCommandError("evaluate", err)
		}
		defer store.Close()

		var cacheMetrics *metrics.CacheMetrics
		if registry != nil {
			cacheMetrics = metrics.NewCacheMetrics(&cfg.Metrics, registry)
		}
		cache = results.NewCache(store, cfg.Results.CacheTTL, cacheMetrics)

		if result, err := cache.Get(ctx, name, data); err != nil {
			return cli.NewInterpretationError("evaluate", name, err)
		} else if result != nil {
			return writeResult(result, evaluateFlags.format)
		}
	}

	result, err := eng.Evaluate(ctx, name, data)
	if err != nil {
		return cli.NewInterpretationError("evaluate", name, err)
	}

	if cache != nil {
		if err := cache.Put(ctx, result, data); err != nil {
			return cli.NewInterpretationError("evaluate", name, err)
		}
	}

	return writeResult(result, evaluateFlags.format)
}

// newEngine builds an engine over the configured catalog directory. One-shot
// commands never watch for catalog changes.
func newEngine(cfg *config.Config) (*engine.Engine, error) {
	catalogCfg := cfg.Catalog
	catalogCfg.Watch = false

	source := catalog.NewFileSource(catalogCfg, nil)
	return engine.New(&engine.Config{
		MaxDepth:      cfg.Engine.MaxDepth,
		Workers:       cfg.Engine.Workers,
		BoundedSpline: cfg.Engine.BoundedSpline,
	}, source, nil)
}

func readPropertyData(path string) (ast.PropertyData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var data ast.PropertyData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file %q: %w", path, err)
	}
	return data, nil
}

func writeResult(result *engine.InterpretationResult, format string) error {
	formatter := cli.NewFormatter(cli.OutputFormat(format))
	return formatter.FormatTo(os.Stdout, resultOutput{result})
}
