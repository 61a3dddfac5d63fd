// Package ranking turns holdout predictions into the prioritized retention
// shortlist: employees most likely to leave, weighted by how strong their
// performance signal is.
package ranking

import (
	"sort"

	"github.com/YuminosukeSato/attrigo/evaluation"
	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// DefaultTopN is the default shortlist length.
const DefaultTopN = 50

// Entry is one row of the shortlist.
type Entry struct {
	// Row is the row index into the evaluated design matrix.
	Row int
	// Probability is the predicted attrition probability.
	Probability float64
	// Performance is the performance signal of the employee.
	Performance float64
	// Priority is Probability * Performance.
	Priority float64
}

// Rank scores every prediction as probability x performance and returns the
// top-N entries. Performance is indexed by the prediction's row, so callers
// pass the performance column of the full table.
//
// Ordering is deterministic: priority descending, then performance
// descending, then probability descending, then original row order. Inputs
// are never modified.
func Rank(predictions []evaluation.Prediction, performance []float64, topN int) ([]Entry, error) {
	if topN <= 0 {
		return nil, errors.NewValueError("ranking.Rank", "topN must be positive")
	}

	entries := make([]Entry, len(predictions))
	for i, p := range predictions {
		if p.Row < 0 || p.Row >= len(performance) {
			return nil, errors.NewDimensionError("ranking.Rank", len(performance), p.Row, 0)
		}
		perf := performance[p.Row]
		entries[i] = Entry{
			Row:         p.Row,
			Probability: p.Probability,
			Performance: perf,
			Priority:    p.Probability * perf,
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Performance != b.Performance {
			return a.Performance > b.Performance
		}
		if a.Probability != b.Probability {
			return a.Probability > b.Probability
		}
		return a.Row < b.Row
	})

	if topN < len(entries) {
		entries = entries[:topN]
	}
	return entries, nil
}
