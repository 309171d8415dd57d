// Package catalog materializes rule trees and their definition tables from
// ruleset YAML files. It is the persistence collaborator of the evaluation
// core: parsing, node classification, and validation all happen here, so the
// engine only ever sees classified, immutable structures.
//
// FileSource implements the engine's CatalogSource: Load reads and
// materializes every ruleset file in a directory, and Watch (when enabled)
// emits debounced change events so the engine can hot-reload.
package catalog
