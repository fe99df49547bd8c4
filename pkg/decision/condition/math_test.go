package condition

import (
	"testing"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

func TestEvaluate_Numeric(t *testing.T) {
	e := testEvaluator()
	dctx := decision.NewContext(map[string]interface{}{
		"age":    float64(18),
		"n":      float64(10),
		"neg":    float64(-7),
		"amount": float64(65),
	})

	tests := []struct {
		name  string
		field string
		op    ast.Operator
		value interface{}
		want  bool
	}{
		{"between closed lower bound", "age", ast.OperatorBetween, []interface{}{float64(18), float64(65)}, true},
		{"between closed upper bound", "amount", ast.OperatorBetween, []interface{}{float64(18), float64(65)}, true},
		{"between inside", "n", ast.OperatorBetween, []interface{}{float64(1), float64(100)}, true},
		{"between outside", "n", ast.OperatorBetween, []interface{}{float64(11), float64(100)}, false},
		{"between map operand", "age", ast.OperatorBetween, map[string]interface{}{"min": float64(18), "max": float64(65)}, true},
		{"between malformed operand", "age", ast.OperatorBetween, "18-65", false},
		{"modulo exact", "n", ast.OperatorModulo, map[string]interface{}{"divisor": float64(5), "remainder": float64(0)}, true},
		{"modulo nonzero remainder", "n", ast.OperatorModulo, map[string]interface{}{"divisor": float64(3), "remainder": float64(1)}, true},
		{"modulo wrong remainder", "n", ast.OperatorModulo, map[string]interface{}{"divisor": float64(3), "remainder": float64(2)}, false},
		{"modulo negative dividend normalizes", "neg", ast.OperatorModulo, map[string]interface{}{"divisor": float64(3), "remainder": float64(2)}, true},
		{"modulo zero divisor is false", "n", ast.OperatorModulo, map[string]interface{}{"divisor": float64(0), "remainder": float64(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(dctx, simple(tt.field, tt.op, tt.value)); got != tt.want {
				t.Errorf("%s %s %v = %v, want %v", tt.field, tt.op, tt.value, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Math(t *testing.T) {
	e := testEvaluator()
	dctx := decision.NewContext(map[string]interface{}{
		"zero":     float64(0),
		"one":      float64(1),
		"sixteen":  float64(16),
		"negative": float64(-3.7),
		"half":     float64(0.5),
		"twelve":   float64(12),
		"five":     float64(5),
		"two":      float64(2),
		"big":      float64(200),
	})

	tests := []struct {
		name  string
		field string
		op    ast.Operator
		value interface{}
		want  bool
	}{
		{"sin(0) equals 0 within epsilon", "zero", ast.OperatorSin, float64(0), true},
		{"cos(0) equals 1", "zero", ast.OperatorCos, float64(1), true},
		{"sqrt", "sixteen", ast.OperatorSqrt, float64(4), true},
		{"sqrt of negative is false", "negative", ast.OperatorSqrt, float64(2), false},
		{"cbrt", "sixteen", ast.OperatorCbrt, map[string]interface{}{"gt": float64(2.5), "lt": float64(2.6)}, true},
		{"power with exponent", "two", ast.OperatorPower, map[string]interface{}{"exponent": float64(10), "result": float64(1024)}, true},
		{"exp(0) equals 1", "zero", ast.OperatorExp, float64(1), true},
		{"log of one is zero", "one", ast.OperatorLog, float64(0), true},
		{"log of zero is false", "zero", ast.OperatorLog, float64(0), false},
		{"log10 constraint map", "big", ast.OperatorLog10, map[string]interface{}{"gt": float64(2), "lt": float64(3)}, true},
		{"log2 of 16", "sixteen", ast.OperatorLog2, float64(4), true},
		{"asin domain violation", "sixteen", ast.OperatorAsin, float64(0), false},
		{"asin in domain", "half", ast.OperatorAsin, map[string]interface{}{"gt": float64(0.5), "lt": float64(0.6)}, true},
		{"atan2 with x parameter", "zero", ast.OperatorAtan2, map[string]interface{}{"x": float64(1), "result": float64(0)}, true},
		{"round", "negative", ast.OperatorRound, float64(-4), true},
		{"floor", "negative", ast.OperatorFloor, float64(-4), true},
		{"ceil", "negative", ast.OperatorCeil, float64(-3), true},
		{"truncate", "negative", ast.OperatorTruncate, float64(-3), true},
		{"abs", "negative", ast.OperatorAbs, float64(3.7), true},
		{"factorial", "five", ast.OperatorFactorial, float64(120), true},
		{"factorial of fraction is false", "half", ast.OperatorFactorial, float64(1), false},
		{"factorial overflow guard", "big", ast.OperatorFactorial, float64(0), false},
		{"gcd", "twelve", ast.OperatorGCD, map[string]interface{}{"with": float64(18), "result": float64(6)}, true},
		{"lcm", "twelve", ast.OperatorLCM, map[string]interface{}{"with": float64(18), "result": float64(36)}, true},
		{"gcd with fraction is false", "twelve", ast.OperatorGCD, map[string]interface{}{"with": float64(1.5), "result": float64(1)}, false},
		{"non-numeric field is false", "missing", ast.OperatorSin, float64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(dctx, simple(tt.field, tt.op, tt.value)); got != tt.want {
				t.Errorf("%s %s %v = %v, want %v", tt.field, tt.op, tt.value, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Stats(t *testing.T) {
	e := testEvaluator()
	dctx := decision.NewContext(map[string]interface{}{
		"values": []interface{}{float64(1), float64(2), float64(3), float64(4)},
		"odd":    []interface{}{float64(5), float64(1), float64(3)},
		"mixed":  []interface{}{float64(1), "skip", float64(3)},
		"empty":  []interface{}{},
		"single": []interface{}{float64(7)},
	})

	tests := []struct {
		name  string
		field string
		op    ast.Operator
		value interface{}
		want  bool
	}{
		{"sum", "values", ast.OperatorSum, float64(10), true},
		{"average", "values", ast.OperatorAverage, float64(2.5), true},
		{"mean alias", "values", ast.OperatorMean, float64(2.5), true},
		{"median even count averages middle two", "values", ast.OperatorMedian, float64(2.5), true},
		{"median odd count", "odd", ast.OperatorMedian, float64(3), true},
		{"variance is sample variance", "values", ast.OperatorVariance, map[string]interface{}{"gt": float64(1.6), "lt": float64(1.7)}, true},
		{"stddev", "values", ast.OperatorStddev, map[string]interface{}{"gt": float64(1.29), "lt": float64(1.3)}, true},
		{"variance needs at least two values", "single", ast.OperatorVariance, float64(0), false},
		{"percentile with interpolation", "values", ast.OperatorPercentile, map[string]interface{}{"percentile": float64(50), "result": float64(2.5)}, true},
		{"percentile without percentile key is false", "values", ast.OperatorPercentile, map[string]interface{}{"result": float64(2.5)}, false},
		{"count", "values", ast.OperatorCount, float64(4), true},
		{"count of empty array", "empty", ast.OperatorCount, float64(0), true},
		{"count map constraint", "values", ast.OperatorCount, map[string]interface{}{"gte": float64(3)}, true},
		{"non-numeric entries ignored", "mixed", ast.OperatorSum, float64(4), true},
		{"sum of empty array is false", "empty", ast.OperatorSum, float64(0), false},
		{"non-array field is false", "single_missing", ast.OperatorSum, float64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(dctx, simple(tt.field, tt.op, tt.value)); got != tt.want {
				t.Errorf("%s %s %v = %v, want %v", tt.field, tt.op, tt.value, got, tt.want)
			}
		})
	}
}
