package catalog

import (
	"tellus-hq/tellus/pkg/interp/ast"
)

// rulesetFile is the on-disk shape of one ruleset YAML file.
type rulesetFile struct {
	Interpretations []interpretationSpec `yaml:"interpretations"`
}

// interpretationSpec is one interpretation document: a raw rule tree plus the
// definition tables it references.
type interpretationSpec struct {
	Name        string           `yaml:"name"`
	Tree        *ast.RawNode     `yaml:"tree"`
	Evaluations []evaluationSpec `yaml:"evaluations"`
	Properties  []propertySpec   `yaml:"properties"`
}

// evaluationSpec is the on-disk shape of an evaluation definition.
type evaluationSpec struct {
	ID              int                `yaml:"id"`
	Name            string             `yaml:"name"`
	Property        string             `yaml:"property"`
	Curve           string             `yaml:"curve"`
	Points          []ast.ControlPoint `yaml:"points"`
	CrispExpression string             `yaml:"crisp_expression"`
	Invert          bool               `yaml:"invert"`
}

// propertySpec is the on-disk shape of a property definition.
type propertySpec struct {
	Name        string   `yaml:"name"`
	Unit        string   `yaml:"unit"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Categorical bool     `yaml:"categorical"`
	Choices     []string `yaml:"choices"`
}

// toDefinition converts an evaluation spec into its materialized form.
func (s evaluationSpec) toDefinition() *ast.EvaluationDefinition {
	return &ast.EvaluationDefinition{
		ID:              s.ID,
		Name:            s.Name,
		Property:        s.Property,
		Curve:           ast.CurveKind(s.Curve),
		Points:          s.Points,
		CrispExpression: s.CrispExpression,
		Invert:          s.Invert,
	}
}

// toDefinition converts a property spec into its materialized form.
func (s propertySpec) toDefinition() *ast.PropertyDefinition {
	return &ast.PropertyDefinition{
		Name:        s.Name,
		Unit:        s.Unit,
		Min:         s.Min,
		Max:         s.Max,
		Categorical: s.Categorical,
		Choices:     s.Choices,
	}
}
