package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tellus-hq/tellus/pkg/catalog"
	"tellus-hq/tellus/pkg/cli"
)

var validateFlags struct {
	path   string
	strict bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate ruleset files",
	Long: `Load every ruleset file in the catalog directory and report problems.

Parse failures and duplicate interpretation names fail the command outright.
Structural defects inside an otherwise loadable ruleset (childless operator
nodes, references to unknown evaluations, unknown curve kinds) are reported
as issues; with --strict any issue fails the command.

Examples:
  # Validate the configured catalog directory
  tellus validate

  # Validate another directory, treating every issue as fatal
  tellus validate --path ./rulesets --strict`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.path, "path", "", "catalog directory (uses config if not specified)")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "fail on any issue")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	path := validateFlags.path
	if path == "" {
		path = cfg.Catalog.Path
	}

	loader := catalog.NewLoader(nil)
	result, err := loader.LoadDir(path)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	names := make([]string, 0, len(result.Interpretations))
	for _, interp := range result.Interpretations {
		names = append(names, interp.Name)
	}
	sort.Strings(names)

	fmt.Printf("Loaded %d interpretation(s) from %s\n", len(names), path)
	for _, name := range names {
		fmt.Printf("  ✓ %s\n", name)
	}

	if len(result.Issues) > 0 {
		fmt.Printf("\n%d issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Printf("  ✗ %s", issue.File)
			if issue.Interpretation != "" {
				fmt.Printf(" (%s)", issue.Interpretation)
			}
			fmt.Printf(": %s\n", issue.Message)
		}
		if validateFlags.strict {
			return fmt.Errorf("%d validation issue(s)", len(result.Issues))
		}
	}

	return nil
}
