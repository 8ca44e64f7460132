// Package algo holds the pure grading formulas and row orderings.
package algo

import (
	"math"

	"github.com/huangsam/gradebook/schema"
)

// PerformanceScore sums weight*value over the criteria. Criteria without a
// value are skipped and the remaining weights are not renormalized, so the
// score is on the 0-100 scale only when the weights sum to 1.
func PerformanceScore(criteria []schema.Criterion, values map[string]float64) float64 {
	var score float64
	for _, c := range criteria {
		v, ok := values[c.Name]
		if !ok || math.IsNaN(v) {
			continue
		}
		score += c.Weight * v
	}
	return score
}

// WrittenComponent is the mean of the two written exam scores.
func WrittenComponent(written1, written2 float64) float64 {
	return (written1 + written2) / 2
}

// Average blends the written, project and performance components using the
// general weights. The performance share is whatever the other two leave.
func Average(g schema.GeneralSettings, written, project, performance float64) float64 {
	return g.WrittenWeight*written + g.ProjectWeight*project + g.PerformanceWeight()*performance
}

// outcomeEpsilon absorbs float error from fractional weights, so an average
// that is mathematically equal to the threshold passes.
const outcomeEpsilon = 1e-9

// Outcome is pass when average reaches the threshold.
func Outcome(average float64, threshold int) schema.Outcome {
	if average >= float64(threshold)-outcomeEpsilon {
		return schema.Pass
	}
	return schema.Fail
}
