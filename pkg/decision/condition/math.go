package condition

import (
	"math"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateMath handles the math family: a function is applied to the numeric
// field value and the result is checked against the operand (a direct value
// with epsilon equality, or a parameter map). Domain violations evaluate to
// false.
func (e *Evaluator) evaluateMath(op ast.Operator, actual, expected interface{}) bool {
	x, ok := toFloat(actual)
	if !ok {
		return false
	}

	var computed float64

	switch op {
	case ast.OperatorSin:
		computed = math.Sin(x)
	case ast.OperatorCos:
		computed = math.Cos(x)
	case ast.OperatorTan:
		computed = math.Tan(x)
	case ast.OperatorAsin:
		if x < -1 || x > 1 {
			return false
		}
		computed = math.Asin(x)
	case ast.OperatorAcos:
		if x < -1 || x > 1 {
			return false
		}
		computed = math.Acos(x)
	case ast.OperatorAtan:
		computed = math.Atan(x)
	case ast.OperatorAtan2:
		// The field value is y; the operand map supplies x.
		params, ok := asMap(expected)
		if !ok {
			return false
		}
		x2, ok := toFloat(params["x"])
		if !ok {
			return false
		}
		computed = math.Atan2(x, x2)
	case ast.OperatorSinh:
		computed = math.Sinh(x)
	case ast.OperatorCosh:
		computed = math.Cosh(x)
	case ast.OperatorTanh:
		computed = math.Tanh(x)
	case ast.OperatorSqrt:
		if x < 0 {
			return false
		}
		computed = math.Sqrt(x)
	case ast.OperatorCbrt:
		computed = math.Cbrt(x)
	case ast.OperatorPower:
		params, ok := asMap(expected)
		if !ok {
			return false
		}
		exponent, ok := toFloat(params["exponent"])
		if !ok {
			return false
		}
		computed = math.Pow(x, exponent)
	case ast.OperatorExp:
		computed = math.Exp(x)
	case ast.OperatorLog:
		if x <= 0 {
			return false
		}
		computed = math.Log(x)
	case ast.OperatorLog10:
		if x <= 0 {
			return false
		}
		computed = math.Log10(x)
	case ast.OperatorLog2:
		if x <= 0 {
			return false
		}
		computed = math.Log2(x)
	case ast.OperatorRound:
		computed = math.Round(x)
	case ast.OperatorFloor:
		computed = math.Floor(x)
	case ast.OperatorCeil:
		computed = math.Ceil(x)
	case ast.OperatorTruncate:
		computed = math.Trunc(x)
	case ast.OperatorAbs:
		computed = math.Abs(x)
	case ast.OperatorFactorial:
		f, ok := factorial(x)
		if !ok {
			return false
		}
		computed = f
	case ast.OperatorGCD:
		params, ok := asMap(expected)
		if !ok {
			return false
		}
		with, ok := toFloat(params["with"])
		if !ok || !isWholeNumber(x) || !isWholeNumber(with) {
			return false
		}
		computed = float64(gcd(int64(math.Abs(x)), int64(math.Abs(with))))
	case ast.OperatorLCM:
		params, ok := asMap(expected)
		if !ok {
			return false
		}
		with, ok := toFloat(params["with"])
		if !ok || !isWholeNumber(x) || !isWholeNumber(with) {
			return false
		}
		a, b := int64(math.Abs(x)), int64(math.Abs(with))
		if a == 0 || b == 0 {
			computed = 0
		} else {
			computed = float64(a / gcd(a, b) * b)
		}
	default:
		return false
	}

	if math.IsNaN(computed) || math.IsInf(computed, 0) {
		return false
	}

	return compareResult(computed, expected)
}

// factorial computes n! for non-negative whole n. Inputs that are negative,
// fractional, or large enough to overflow float64 (n > 170) are rejected.
func factorial(n float64) (float64, bool) {
	if n < 0 || !isWholeNumber(n) || n > 170 {
		return 0, false
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result, true
}

// gcd computes the greatest common divisor of two non-negative integers.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
