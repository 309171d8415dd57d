// Package ast defines the materialized rule-tree data model used by the
// interpretation engine: the four-variant rule node union, evaluation and
// property definitions, and per-record property data.
//
// Trees arrive from the catalog layer as loosely shaped raw nodes (type,
// reference id, value, children). Classify resolves each raw node into
// exactly one variant once, at materialization time; the evaluator never
// re-inspects raw shape during traversal.
package ast
