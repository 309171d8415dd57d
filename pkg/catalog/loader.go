package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"tellus-hq/tellus/pkg/interp/ast"
)

// Issue is a non-fatal problem found while materializing a ruleset. Issues
// mirror the evaluator's soft-error policy: the interpretation still loads,
// and the flagged parts rate as not rated at evaluation time.
type Issue struct {
	// File is the ruleset file path.
	File string

	// Interpretation is the interpretation display name.
	Interpretation string

	// Message describes the problem.
	Message string
}

// String formats the issue for display.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.File, i.Interpretation, i.Message)
}

// LoadResult is the outcome of materializing a ruleset directory.
type LoadResult struct {
	// Interpretations are the materialized interpretations.
	Interpretations []*ast.Interpretation

	// Issues are the non-fatal problems found.
	Issues []Issue
}

// Loader materializes ruleset directories.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "catalog.loader")}
}

// LoadDir reads every .yaml/.yml file in dir and materializes its
// interpretations. Unreadable or unparsable files and duplicate
// interpretation names are load errors; structural defects inside an
// interpretation are soft issues.
func (l *Loader) LoadDir(dir string) (*LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Cause: err}
	}

	result := &LoadResult{}
	definedIn := map[string]string{}

	for _, entry := range entries {
		if entry.IsDir() || !isRulesetFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		file, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}

		for _, spec := range file.Interpretations {
			if first, dup := definedIn[spec.Name]; dup {
				return nil, &DuplicateInterpretationError{
					Name:  spec.Name,
					Path:  path,
					First: first,
				}
			}
			definedIn[spec.Name] = path

			interp, issues := materialize(path, spec)
			result.Interpretations = append(result.Interpretations, interp)
			result.Issues = append(result.Issues, issues...)
		}
	}

	for _, issue := range result.Issues {
		l.logger.Warn("ruleset issue",
			"file", issue.File,
			"interpretation", issue.Interpretation,
			"issue", issue.Message,
		)
	}

	l.logger.Info("catalog materialized",
		"dir", dir,
		"interpretations", len(result.Interpretations),
		"issues", len(result.Issues),
	)
	return result, nil
}

// loadFile reads and parses one ruleset file.
func (l *Loader) loadFile(path string) (*rulesetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	var file rulesetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	return &file, nil
}

// materialize converts one interpretation spec into its classified,
// validated form.
func materialize(path string, spec interpretationSpec) (*ast.Interpretation, []Issue) {
	var issues []Issue
	report := func(format string, args ...any) {
		issues = append(issues, Issue{
			File:           path,
			Interpretation: spec.Name,
			Message:        fmt.Sprintf(format, args...),
		})
	}

	interp := &ast.Interpretation{
		Name:        spec.Name,
		Root:        ast.Classify(spec.Tree),
		Evaluations: make(map[int]*ast.EvaluationDefinition, len(spec.Evaluations)),
		Properties:  make(map[string]*ast.PropertyDefinition, len(spec.Properties)),
	}

	for _, propSpec := range spec.Properties {
		if _, exists := interp.Properties[propSpec.Name]; exists {
			report("duplicate property definition %q", propSpec.Name)
			continue
		}
		interp.Properties[propSpec.Name] = propSpec.toDefinition()
	}

	for _, evalSpec := range spec.Evaluations {
		if _, exists := interp.Evaluations[evalSpec.ID]; exists {
			report("duplicate evaluation id %d", evalSpec.ID)
			continue
		}

		def := evalSpec.toDefinition()
		// Interpolation assumes ascending control points.
		sort.Slice(def.Points, func(i, j int) bool {
			return def.Points[i].X < def.Points[j].X
		})

		if def.Curve == "" {
			def.Curve = ast.CurveLinear
		}
		if !knownCurve(def.Curve) {
			report("evaluation %d: unknown curve kind %q, using linear", def.ID, def.Curve)
			def.Curve = ast.CurveLinear
		}
		if def.Curve == ast.CurveCrisp && def.CrispExpression == "" {
			report("evaluation %d: crisp curve without expression", def.ID)
		}
		if def.Curve != ast.CurveCrisp && len(def.Points) == 0 {
			report("evaluation %d: no control points", def.ID)
		}
		if _, ok := interp.Properties[def.Property]; !ok {
			report("evaluation %d: property %q not defined", def.ID, def.Property)
		}

		interp.Evaluations[def.ID] = def
	}

	if interp.Root == nil {
		report("interpretation has no rule tree")
	} else {
		validateTree(interp, interp.Root, report)
	}

	return interp, issues
}

// validateTree walks a classified tree and reports structural defects the
// evaluator will later turn into not-rated ratings.
func validateTree(interp *ast.Interpretation, node *ast.RuleNode, report func(string, ...any)) {
	switch node.Kind {
	case ast.NodeEvaluation:
		if _, ok := interp.Evaluations[node.RefID]; !ok {
			report("leaf %q references unknown evaluation id %d", node.Name, node.RefID)
		}
	case ast.NodeOperator:
		if len(node.Children) == 0 {
			report("operator node %q has no children", node.Name)
		}
	case ast.NodeHedge:
		if len(node.Children) == 0 {
			report("hedge node %q has no child", node.Name)
		}
		if len(node.Children) > 1 {
			report("hedge node %q has %d children", node.Name, len(node.Children))
		}
	case ast.NodeContainer:
		if len(node.Children) == 0 {
			report("malformed node %q: no children and no evaluation reference", node.Name)
		}
	}

	for _, child := range node.Children {
		validateTree(interp, child, report)
	}
}

func knownCurve(kind ast.CurveKind) bool {
	switch kind {
	case ast.CurveLinear, ast.CurveStep, ast.CurveSpline, ast.CurveSigmoid, ast.CurveCrisp:
		return true
	}
	return false
}

func isRulesetFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
