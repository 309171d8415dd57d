package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tellus-hq/tellus/pkg/interp/engine"
)

// resultOutput renders one interpretation result for the CLI formatters.
type resultOutput struct {
	*engine.InterpretationResult
}

func (r resultOutput) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Interpretation: %s\n", r.Interpretation)
	fmt.Fprintf(&b, "Rating:         %s\n", formatRating(r.Rating))
	fmt.Fprintf(&b, "Class:          %s\n", r.Class)

	if len(r.EvaluationRatings) > 0 {
		b.WriteString("Evaluations:\n")
		labels := make([]string, 0, len(r.EvaluationRatings))
		for label := range r.EvaluationRatings {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Fprintf(&b, "  %s: %s\n", label, formatRating(r.EvaluationRatings[label]))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r resultOutput) CSVHeader() []string {
	return resultCSVHeader
}

func (r resultOutput) CSVRows() [][]string {
	return [][]string{resultCSVRow(r.InterpretationResult)}
}

// batchOutput renders a slice of results for the CLI formatters.
type batchOutput []*engine.InterpretationResult

func (b batchOutput) String() string {
	lines := make([]string, 0, len(b))
	for i, result := range b {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%s", i, formatRating(result.Rating), result.Class))
	}
	return strings.Join(lines, "\n")
}

func (b batchOutput) CSVHeader() []string {
	return resultCSVHeader
}

func (b batchOutput) CSVRows() [][]string {
	rows := make([][]string, 0, len(b))
	for _, result := range b {
		rows = append(rows, resultCSVRow(result))
	}
	return rows
}

var resultCSVHeader = []string{"id", "interpretation", "rating", "class", "timestamp"}

func resultCSVRow(result *engine.InterpretationResult) []string {
	rating := ""
	if !engine.IsNotRated(result.Rating) {
		rating = strconv.FormatFloat(result.Rating, 'f', -1, 64)
	}
	return []string{
		result.ID,
		result.Interpretation,
		rating,
		string(result.Class),
		result.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func formatRating(rating float64) string {
	if engine.IsNotRated(rating) {
		return "not rated"
	}
	return strconv.FormatFloat(rating, 'f', 3, 64)
}
