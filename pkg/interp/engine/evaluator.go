package engine

import (
	"log/slog"
	"strconv"

	"tellus-hq/tellus/pkg/interp/ast"
)

// Evaluator performs the recursive descent over a classified rule tree. It is
// stateless between calls and safe for concurrent use: everything it touches
// during a call is either the immutable tree and lookup tables or call-local.
type Evaluator struct {
	config *Config
	logger *slog.Logger
}

// NewEvaluator creates an evaluator.
func NewEvaluator(config *Config, logger *slog.Logger) *Evaluator {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		config: config,
		logger: logger.With("component", "interp.evaluator"),
	}
}

// EvaluateTree evaluates a rule tree against an evaluation context. Data
// incompleteness never fails: every such path contributes the not-rated
// sentinel and a logged warning. The only error is a nil root, a
// construction-time defect the caller must surface.
func (e *Evaluator) EvaluateTree(root *ast.RuleNode, evalCtx *EvaluationContext) (*TreeResult, error) {
	if root == nil {
		return nil, &EmptyTreeError{}
	}

	result := e.evalNode(root, evalCtx, 0)
	return &TreeResult{
		Rating:            result.rating,
		PropertyValues:    result.properties,
		EvaluationRatings: result.evaluations,
	}, nil
}

// nodeResult carries a node's rating plus the side-channel maps accumulated
// beneath it.
type nodeResult struct {
	rating      float64
	properties  map[string]ast.PropertyValue
	evaluations map[string]float64
}

func notRatedResult() nodeResult {
	return nodeResult{
		rating:      NotRated(),
		properties:  map[string]ast.PropertyValue{},
		evaluations: map[string]float64{},
	}
}

// evalNode dispatches one node to its variant's logic.
func (e *Evaluator) evalNode(node *ast.RuleNode, evalCtx *EvaluationContext, depth int) nodeResult {
	if depth > e.config.MaxDepth {
		e.logger.Warn("recursion depth limit exceeded, treating subtree as not rated",
			"node", node.Name,
			"max_depth", e.config.MaxDepth,
		)
		return notRatedResult()
	}

	switch node.Kind {
	case ast.NodeEvaluation:
		return e.evalLeaf(node, evalCtx)
	case ast.NodeOperator:
		return e.evalOperator(node, evalCtx, depth)
	case ast.NodeHedge:
		return e.evalHedge(node, evalCtx, depth)
	default:
		return e.evalContainer(node, evalCtx, depth)
	}
}

// evalLeaf resolves the referenced evaluation definition and its source
// property, fetches the property value, and dispatches to the curve library
// (or the crisp matcher for categorical values).
func (e *Evaluator) evalLeaf(node *ast.RuleNode, evalCtx *EvaluationContext) nodeResult {
	result := notRatedResult()

	def, ok := evalCtx.Evaluations[node.RefID]
	if !ok {
		e.logger.Warn("evaluation definition not found",
			"ref_id", node.RefID,
			"node", node.Name,
		)
		return result
	}

	label := node.Name
	if label == "" {
		label = def.Name
	}

	if _, ok := evalCtx.Properties[def.Property]; !ok {
		e.logger.Warn("property definition not found",
			"property", def.Property,
			"evaluation", def.Name,
		)
		e.recordLeaf(&result, def, label, NotRated())
		return result
	}

	value := evalCtx.Data.Value(def.Property)
	result.properties[def.Property] = value

	rating := e.leafRating(def, value)
	e.recordLeaf(&result, def, label, rating)
	return result
}

// leafRating converts one property value through an evaluation definition.
func (e *Evaluator) leafRating(def *ast.EvaluationDefinition, value ast.PropertyValue) float64 {
	if value.IsMissing() {
		e.logger.Warn("property value missing",
			"property", def.Property,
			"evaluation", def.Name,
		)
		return NotRated()
	}

	if text, ok := value.String(); ok {
		rating, supported := MatchCrisp(def.CrispExpression, text)
		if !supported {
			e.logger.Warn("unsupported crisp expression",
				"evaluation", def.Name,
				"expression", def.CrispExpression,
			)
		}
		if def.Invert {
			rating = 1 - rating
		}
		return rating
	}

	x, ok := value.Float()
	if !ok {
		return NotRated()
	}
	return EvaluateCurve(def.Curve, x, def.Points, def.Invert, e.config.BoundedSpline)
}

// recordLeaf stores a leaf rating under both the tree's display label and the
// evaluation's numeric id.
func (e *Evaluator) recordLeaf(result *nodeResult, def *ast.EvaluationDefinition, label string, rating float64) {
	result.rating = rating
	if label != "" {
		result.evaluations[label] = rating
	}
	result.evaluations[strconv.Itoa(def.ID)] = rating
}

// evalOperator evaluates all children and aggregates their ratings. The
// side-channel maps merge in traversal order; earlier children win on key
// collisions.
func (e *Evaluator) evalOperator(node *ast.RuleNode, evalCtx *EvaluationContext, depth int) nodeResult {
	if len(node.Children) == 0 {
		e.logger.Warn("operator node has no children",
			"operator", node.Operator,
			"node", node.Name,
		)
		return notRatedResult()
	}

	merged := notRatedResult()
	ratings := make([]float64, 0, len(node.Children))
	for _, child := range node.Children {
		childResult := e.evalNode(child, evalCtx, depth+1)
		ratings = append(ratings, childResult.rating)
		mergeValues(merged.properties, childResult.properties)
		mergeRatings(merged.evaluations, childResult.evaluations)
	}

	rating, err := ApplyOperator(node.Operator, ratings)
	if err != nil {
		e.logger.Warn("unknown operator kind, falling back to AND",
			"operator", node.Operator,
			"node", node.Name,
		)
		rating, _ = ApplyOperator(ast.OperatorAnd, ratings)
	}

	merged.rating = rating
	return merged
}

// evalHedge evaluates the single child and applies the modifier. The child's
// side-channel maps pass through unchanged.
func (e *Evaluator) evalHedge(node *ast.RuleNode, evalCtx *EvaluationContext, depth int) nodeResult {
	if len(node.Children) == 0 {
		e.logger.Warn("hedge node has no child",
			"hedge", node.Hedge,
			"node", node.Name,
		)
		return notRatedResult()
	}
	if len(node.Children) > 1 {
		e.logger.Warn("hedge node has multiple children, using the first",
			"hedge", node.Hedge,
			"node", node.Name,
			"children", len(node.Children),
		)
	}

	result := e.evalNode(node.Children[0], evalCtx, depth+1)

	rating, err := ApplyHedge(node.Hedge, result.rating, node.Parameter)
	if err != nil {
		e.logger.Warn("unknown hedge kind",
			"hedge", node.Hedge,
			"node", node.Name,
		)
		rating = NotRated()
	}

	result.rating = rating
	return result
}

// evalContainer evaluates all children but adopts the first child's rating;
// a type-less container is a pass-through, not an aggregation. Side-channel
// maps still merge across all children.
func (e *Evaluator) evalContainer(node *ast.RuleNode, evalCtx *EvaluationContext, depth int) nodeResult {
	if len(node.Children) == 0 {
		e.logger.Warn("malformed node: no children and no evaluation reference",
			"node", node.Name,
		)
		return notRatedResult()
	}

	merged := notRatedResult()
	for i, child := range node.Children {
		childResult := e.evalNode(child, evalCtx, depth+1)
		if i == 0 {
			merged.rating = childResult.rating
		}
		mergeValues(merged.properties, childResult.properties)
		mergeRatings(merged.evaluations, childResult.evaluations)
	}
	return merged
}

// mergeValues copies src entries into dst without overwriting existing keys.
func mergeValues(dst, src map[string]ast.PropertyValue) {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}

// mergeRatings copies src entries into dst without overwriting existing keys.
func mergeRatings(dst, src map[string]float64) {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}
