package condition

import (
	"math"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateFinancial handles the financial family. The field value supplies
// the amount (principal, or future value for present_value); the operand map
// supplies rate and periods plus either a result or comparison constraints.
// Formulas are the standard closed forms.
func (e *Evaluator) evaluateFinancial(op ast.Operator, actual, expected interface{}) bool {
	amount, ok := toFloat(actual)
	if !ok {
		return false
	}
	params, ok := asMap(expected)
	if !ok {
		return false
	}
	rate, ok := toFloat(params["rate"])
	if !ok {
		return false
	}
	periods, ok := toFloat(params["periods"])
	if !ok || periods < 0 {
		return false
	}

	var computed float64

	switch op {
	case ast.OperatorCompoundInterest:
		// A = P * (1 + r/m)^(n*m); compounding frequency m defaults to 1.
		frequency := 1.0
		if f, ok := toFloat(params["frequency"]); ok {
			if f < 1 {
				return false
			}
			frequency = f
		}
		computed = amount * math.Pow(1+rate/frequency, periods*frequency)

	case ast.OperatorPresentValue:
		// PV = FV / (1 + r)^n
		base := math.Pow(1+rate, periods)
		if base == 0 {
			return false
		}
		computed = amount / base

	case ast.OperatorFutureValue:
		// FV = PV * (1 + r)^n
		computed = amount * math.Pow(1+rate, periods)

	case ast.OperatorPayment:
		// Annuity payment: PMT = P*r / (1 - (1+r)^-n); zero rate divides evenly.
		if periods == 0 {
			return false
		}
		if rate == 0 {
			computed = amount / periods
		} else {
			denominator := 1 - math.Pow(1+rate, -periods)
			if denominator == 0 {
				return false
			}
			computed = amount * rate / denominator
		}

	default:
		return false
	}

	if math.IsNaN(computed) || math.IsInf(computed, 0) {
		return false
	}

	return compareResult(computed, expected)
}
