// Package engine implements the rule-tree evaluation core: curve
// interpolation, fuzzy operator aggregation, hedge modifiers, the recursive
// tree evaluator, and the rating classifier, together with the Engine facade
// that serves named interpretations loaded from a catalog source.
//
// Ratings are fuzzy membership values in [0,1]. The not-rated sentinel is
// NaN; data-level problems (missing definitions, missing property values,
// malformed nodes, unknown kinds) produce NaN with a logged warning and never
// an error. Hard errors are reserved for construction-time problems: an
// unknown interpretation name or an empty tree.
package engine
