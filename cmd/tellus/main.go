// Tellus is a soil-interpretation engine: it evaluates property-data records
// against rule trees of fuzzy membership curves and produces suitability
// ratings with ordinal classes.
//
// Usage:
//
//	# Evaluate one record against a named interpretation
//	tellus evaluate "Dwellings With Basements" --data site.yaml
//
//	# Evaluate many records with worker fan-out
//	tellus batch "Dwellings With Basements" --data sites.yaml --format csv
//
//	# Check every ruleset file in the catalog directory
//	tellus validate
//
//	# Enforce result retention limits
//	tellus prune
//
//	# Show version information
//	tellus version
package main

func main() {
	Execute()
}
