package ast

// Operator identifies a condition test applied to a field value.
type Operator string

// Comparison operators work on raw field values. Numeric comparison is
// type-aware and never coerces strings to numbers.
const (
	OperatorEqual        Operator = "eq"
	OperatorNotEqual     Operator = "neq"
	OperatorGreaterThan  Operator = "gt"
	OperatorGreaterEqual Operator = "gte"
	OperatorLessThan     Operator = "lt"
	OperatorLessEqual    Operator = "lte"
	OperatorIn           Operator = "in"
	OperatorPresent      Operator = "present"
	OperatorBlank        Operator = "blank"
)

// String operators. Substring tests are case-sensitive; matches compiles the
// operand as a regular expression.
const (
	OperatorContains   Operator = "contains"
	OperatorStartsWith Operator = "starts_with"
	OperatorEndsWith   Operator = "ends_with"
	OperatorMatches    Operator = "matches"
)

// Numeric interval operators.
const (
	OperatorBetween Operator = "between"
	OperatorModulo  Operator = "modulo"
)

// Math operators apply a function to the numeric field value and compare the
// result against the operand with an absolute epsilon of 1e-10.
const (
	OperatorSin       Operator = "sin"
	OperatorCos       Operator = "cos"
	OperatorTan       Operator = "tan"
	OperatorAsin      Operator = "asin"
	OperatorAcos      Operator = "acos"
	OperatorAtan      Operator = "atan"
	OperatorAtan2     Operator = "atan2"
	OperatorSinh      Operator = "sinh"
	OperatorCosh      Operator = "cosh"
	OperatorTanh      Operator = "tanh"
	OperatorSqrt      Operator = "sqrt"
	OperatorCbrt      Operator = "cbrt"
	OperatorPower     Operator = "power"
	OperatorExp       Operator = "exp"
	OperatorLog       Operator = "log"
	OperatorLog10     Operator = "log10"
	OperatorLog2      Operator = "log2"
	OperatorRound     Operator = "round"
	OperatorFloor     Operator = "floor"
	OperatorCeil      Operator = "ceil"
	OperatorTruncate  Operator = "truncate"
	OperatorAbs       Operator = "abs"
	OperatorFactorial Operator = "factorial"
	OperatorGCD       Operator = "gcd"
	OperatorLCM       Operator = "lcm"
)

// Statistical aggregation operators work on numeric arrays. Each accepts a
// direct comparison value or a parameter map with min/max/gt/lt/gte/lte/eq.
const (
	OperatorSum        Operator = "sum"
	OperatorAverage    Operator = "average"
	OperatorMean       Operator = "mean"
	OperatorMedian     Operator = "median"
	OperatorStddev     Operator = "stddev"
	OperatorVariance   Operator = "variance"
	OperatorPercentile Operator = "percentile"
	OperatorCount      Operator = "count"
)

// Date and time operators.
const (
	OperatorBeforeDate      Operator = "before_date"
	OperatorAfterDate       Operator = "after_date"
	OperatorWithinDays      Operator = "within_days"
	OperatorDayOfWeek       Operator = "day_of_week"
	OperatorDurationSeconds Operator = "duration_seconds"
	OperatorDurationMinutes Operator = "duration_minutes"
	OperatorDurationHours   Operator = "duration_hours"
	OperatorDurationDays    Operator = "duration_days"
	OperatorAddDays         Operator = "add_days"
	OperatorSubtractDays    Operator = "subtract_days"
	OperatorAddHours        Operator = "add_hours"
	OperatorSubtractHours   Operator = "subtract_hours"
	OperatorAddMinutes      Operator = "add_minutes"
	OperatorSubtractMinutes Operator = "subtract_minutes"
	OperatorHourOfDay       Operator = "hour_of_day"
	OperatorDayOfMonth      Operator = "day_of_month"
	OperatorMonth           Operator = "month"
	OperatorYear            Operator = "year"
	OperatorWeekOfYear      Operator = "week_of_year"
	OperatorRatePerSecond   Operator = "rate_per_second"
	OperatorRatePerMinute   Operator = "rate_per_minute"
	OperatorRatePerHour     Operator = "rate_per_hour"
	OperatorMovingAverage   Operator = "moving_average"
	OperatorMovingSum       Operator = "moving_sum"
	OperatorMovingMax       Operator = "moving_max"
	OperatorMovingMin       Operator = "moving_min"
)

// Financial operators apply standard closed-form formulas to the numeric field
// value using rate/periods parameters from the operand map.
const (
	OperatorCompoundInterest Operator = "compound_interest"
	OperatorPresentValue     Operator = "present_value"
	OperatorFutureValue      Operator = "future_value"
	OperatorPayment          Operator = "payment"
)

// Collection operators use set-based membership for O(1) lookups.
const (
	OperatorContainsAll Operator = "contains_all"
	OperatorContainsAny Operator = "contains_any"
	OperatorIntersects  Operator = "intersects"
	OperatorSubsetOf    Operator = "subset_of"
)

// Geospatial operators.
const (
	OperatorWithinRadius Operator = "within_radius"
	OperatorInPolygon    Operator = "in_polygon"
)

// OperatorFamily groups operators by the value domain they test.
type OperatorFamily string

const (
	FamilyComparison OperatorFamily = "comparison"
	FamilyString     OperatorFamily = "string"
	FamilyNumeric    OperatorFamily = "numeric"
	FamilyMath       OperatorFamily = "math"
	FamilyStats      OperatorFamily = "stats"
	FamilyDateTime   OperatorFamily = "datetime"
	FamilyFinancial  OperatorFamily = "financial"
	FamilyCollection OperatorFamily = "collection"
	FamilyGeospatial OperatorFamily = "geospatial"
)

var operatorFamilies = map[Operator]OperatorFamily{
	OperatorEqual:        FamilyComparison,
	OperatorNotEqual:     FamilyComparison,
	OperatorGreaterThan:  FamilyComparison,
	OperatorGreaterEqual: FamilyComparison,
	OperatorLessThan:     FamilyComparison,
	OperatorLessEqual:    FamilyComparison,
	OperatorIn:           FamilyComparison,
	OperatorPresent:      FamilyComparison,
	OperatorBlank:        FamilyComparison,

	OperatorContains:   FamilyString,
	OperatorStartsWith: FamilyString,
	OperatorEndsWith:   FamilyString,
	OperatorMatches:    FamilyString,

	OperatorBetween: FamilyNumeric,
	OperatorModulo:  FamilyNumeric,

	OperatorSin:       FamilyMath,
	OperatorCos:       FamilyMath,
	OperatorTan:       FamilyMath,
	OperatorAsin:      FamilyMath,
	OperatorAcos:      FamilyMath,
	OperatorAtan:      FamilyMath,
	OperatorAtan2:     FamilyMath,
	OperatorSinh:      FamilyMath,
	OperatorCosh:      FamilyMath,
	OperatorTanh:      FamilyMath,
	OperatorSqrt:      FamilyMath,
	OperatorCbrt:      FamilyMath,
	OperatorPower:     FamilyMath,
	OperatorExp:       FamilyMath,
	OperatorLog:       FamilyMath,
	OperatorLog10:     FamilyMath,
	OperatorLog2:      FamilyMath,
	OperatorRound:     FamilyMath,
	OperatorFloor:     FamilyMath,
	OperatorCeil:      FamilyMath,
	OperatorTruncate:  FamilyMath,
	OperatorAbs:       FamilyMath,
	OperatorFactorial: FamilyMath,
	OperatorGCD:       FamilyMath,
	OperatorLCM:       FamilyMath,

	OperatorSum:        FamilyStats,
	OperatorAverage:    FamilyStats,
	OperatorMean:       FamilyStats,
	OperatorMedian:     FamilyStats,
	OperatorStddev:     FamilyStats,
	OperatorVariance:   FamilyStats,
	OperatorPercentile: FamilyStats,
	OperatorCount:      FamilyStats,

	OperatorBeforeDate:      FamilyDateTime,
	OperatorAfterDate:       FamilyDateTime,
	OperatorWithinDays:      FamilyDateTime,
	OperatorDayOfWeek:       FamilyDateTime,
	OperatorDurationSeconds: FamilyDateTime,
	OperatorDurationMinutes: FamilyDateTime,
	OperatorDurationHours:   FamilyDateTime,
	OperatorDurationDays:    FamilyDateTime,
	OperatorAddDays:         FamilyDateTime,
	OperatorSubtractDays:    FamilyDateTime,
	OperatorAddHours:        FamilyDateTime,
	OperatorSubtractHours:   FamilyDateTime,
	OperatorAddMinutes:      FamilyDateTime,
	OperatorSubtractMinutes: FamilyDateTime,
	OperatorHourOfDay:       FamilyDateTime,
	OperatorDayOfMonth:      FamilyDateTime,
	OperatorMonth:           FamilyDateTime,
	OperatorYear:            FamilyDateTime,
	OperatorWeekOfYear:      FamilyDateTime,
	OperatorRatePerSecond:   FamilyDateTime,
	OperatorRatePerMinute:   FamilyDateTime,
	OperatorRatePerHour:     FamilyDateTime,
	OperatorMovingAverage:   FamilyDateTime,
	OperatorMovingSum:       FamilyDateTime,
	OperatorMovingMax:       FamilyDateTime,
	OperatorMovingMin:       FamilyDateTime,

	OperatorCompoundInterest: FamilyFinancial,
	OperatorPresentValue:     FamilyFinancial,
	OperatorFutureValue:      FamilyFinancial,
	OperatorPayment:          FamilyFinancial,

	OperatorContainsAll: FamilyCollection,
	OperatorContainsAny: FamilyCollection,
	OperatorIntersects:  FamilyCollection,
	OperatorSubsetOf:    FamilyCollection,

	OperatorWithinRadius: FamilyGeospatial,
	OperatorInPolygon:    FamilyGeospatial,
}

// Family returns the operator family, or an empty string for unknown operators.
func (o Operator) Family() OperatorFamily {
	return operatorFamilies[o]
}

// IsKnown returns true if the operator is part of the RDL operator set.
func (o Operator) IsKnown() bool {
	_, ok := operatorFamilies[o]
	return ok
}

// KnownOperators returns the full operator set keyed by family.
func KnownOperators() map[OperatorFamily][]Operator {
	result := make(map[OperatorFamily][]Operator)
	for op, family := range operatorFamilies {
		result[family] = append(result[family], op)
	}
	return result
}
