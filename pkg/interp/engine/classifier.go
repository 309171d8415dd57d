package engine

import "strings"

// RatingClass is the ordinal class of a final rating.
type RatingClass string

const (
	// ClassNotRated is assigned to the not-rated sentinel.
	ClassNotRated RatingClass = "not rated"

	ClassSlight     RatingClass = "slight"
	ClassModerate   RatingClass = "moderate"
	ClassSevere     RatingClass = "severe"
	ClassVerySevere RatingClass = "very severe"
)

// productivityIndicators mark interpretations where a high rating means a
// good outcome, selecting the mirrored threshold table.
var productivityIndicators = []string{
	"productivity index",
	"yield",
	"suitability",
	"quality",
}

// ClassifyRating maps a final rating to its ordinal class. Limitation-style
// interpretations read high ratings as bad (0.1/0.3/0.6 breakpoints);
// interpretations whose display name matches a productivity indicator read
// high ratings as good (mirrored 0.9/0.7/0.4 breakpoints). The not-rated
// sentinel always classifies as not rated.
func ClassifyRating(rating float64, displayName string) RatingClass {
	if IsNotRated(rating) {
		return ClassNotRated
	}

	if isProductivityInterpretation(displayName) {
		switch {
		case rating >= 0.9:
			return ClassSlight
		case rating >= 0.7:
			return ClassModerate
		case rating >= 0.4:
			return ClassSevere
		default:
			return ClassVerySevere
		}
	}

	switch {
	case rating <= 0.1:
		return ClassSlight
	case rating <= 0.3:
		return ClassModerate
	case rating <= 0.6:
		return ClassSevere
	default:
		return ClassVerySevere
	}
}

func isProductivityInterpretation(displayName string) bool {
	name := strings.ToLower(displayName)
	for _, indicator := range productivityIndicators {
		if strings.Contains(name, indicator) {
			return true
		}
	}
	return false
}
