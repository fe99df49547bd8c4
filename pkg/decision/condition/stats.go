package condition

import (
	"math"
	"sort"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateStats handles the statistical aggregation family over numeric
// arrays. Non-numeric elements are ignored; empty or under-sized input
// evaluates to false (stddev and variance need at least two values).
func (e *Evaluator) evaluateStats(op ast.Operator, actual, expected interface{}) bool {
	values, ok := toFloats(actual)
	if !ok {
		return false
	}

	var computed float64

	switch op {
	case ast.OperatorSum:
		if len(values) == 0 {
			return false
		}
		computed = sum(values)

	case ast.OperatorAverage, ast.OperatorMean:
		if len(values) == 0 {
			return false
		}
		computed = sum(values) / float64(len(values))

	case ast.OperatorMedian:
		if len(values) == 0 {
			return false
		}
		computed = median(values)

	case ast.OperatorVariance:
		if len(values) < 2 {
			return false
		}
		computed = variance(values)

	case ast.OperatorStddev:
		if len(values) < 2 {
			return false
		}
		computed = math.Sqrt(variance(values))

	case ast.OperatorPercentile:
		params, ok := asMap(expected)
		if !ok {
			return false
		}
		p, ok := toFloat(params["percentile"])
		if !ok || p < 0 || p > 100 || len(values) == 0 {
			return false
		}
		computed = percentile(values, p)

	case ast.OperatorCount:
		computed = float64(len(values))

	default:
		return false
	}

	return compareResult(computed, expected)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// median returns the middle value of the sorted input, averaging the two
// middle values for even-length input. The input slice is not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// variance returns the sample variance (n-1 denominator).
func variance(values []float64) float64 {
	mean := sum(values) / float64(len(values))
	total := 0.0
	for _, v := range values {
		d := v - mean
		total += d * d
	}
	return total / float64(len(values)-1)
}

// percentile computes the p-th percentile with linear interpolation between
// closest ranks.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
