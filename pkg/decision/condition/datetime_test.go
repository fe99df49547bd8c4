package condition

import (
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// referenceTime is the pinned "now" for every temporal test.
var referenceTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func temporalContext() *decision.Context {
	return decision.NewContextAt(map[string]interface{}{
		"created":    "2025-06-10",
		"expires":    "2025-07-01T00:00:00Z",
		"signup":     "2025-06-14T12:00:00Z",
		"monday":     "2025-06-09",
		"deadline":   "2025-06-20T00:00:00Z",
		"events":     []interface{}{"2025-06-15T11:00:00Z", "2025-06-15T11:30:00Z", "2025-06-15T12:00:00Z"},
		"readings":   []interface{}{float64(1), float64(2), float64(3), float64(10)},
		"epoch":      float64(1750000000),
		"not_a_date": "yesterday-ish",
	}, referenceTime)
}

func TestEvaluate_DateTime(t *testing.T) {
	e := testEvaluator()
	dctx := temporalContext()

	tests := []struct {
		name  string
		field string
		op    ast.Operator
		value interface{}
		want  bool
	}{
		{"before_date literal", "created", ast.OperatorBeforeDate, "2025-06-11", true},
		{"before_date not before", "created", ast.OperatorBeforeDate, "2025-06-10", false},
		{"before_date now keyword", "created", ast.OperatorBeforeDate, "now", true},
		{"after_date", "expires", ast.OperatorAfterDate, "now", true},
		{"after_date against context path", "expires", ast.OperatorAfterDate, "deadline", true},
		{"unparseable field date", "not_a_date", ast.OperatorBeforeDate, "now", false},
		{"within_days inside window", "signup", ast.OperatorWithinDays, float64(2), true},
		{"within_days outside window", "created", ast.OperatorWithinDays, float64(2), false},
		{"within_days exact boundary", "signup", ast.OperatorWithinDays, float64(1), true},
		{"day_of_week name", "monday", ast.OperatorDayOfWeek, "monday", true},
		{"day_of_week abbreviation", "monday", ast.OperatorDayOfWeek, "mon", true},
		{"day_of_week number", "monday", ast.OperatorDayOfWeek, float64(1), true},
		{"day_of_week list", "monday", ast.OperatorDayOfWeek, []interface{}{"saturday", "monday"}, true},
		{"day_of_week miss", "monday", ast.OperatorDayOfWeek, "friday", false},
		{
			"duration_hours since field",
			"signup", ast.OperatorDurationHours,
			map[string]interface{}{"end": "now", "result": float64(24)},
			true,
		},
		{
			"duration_days constraint",
			"created", ast.OperatorDurationDays,
			map[string]interface{}{"end": "now", "gte": float64(5)},
			true,
		},
		{
			"duration requires operand map",
			"created", ast.OperatorDurationDays,
			float64(5),
			false,
		},
		{
			"add_days before target",
			"created", ast.OperatorAddDays,
			map[string]interface{}{"amount": float64(3), "target": "deadline", "compare": "before"},
			true,
		},
		{
			"subtract_days after target",
			"expires", ast.OperatorSubtractDays,
			map[string]interface{}{"amount": float64(5), "target": "now", "compare": "after"},
			true,
		},
		{
			"add_hours eq",
			"signup", ast.OperatorAddHours,
			map[string]interface{}{"amount": float64(24), "target": "now", "compare": "eq"},
			true,
		},
		{
			"date arithmetic unknown compare",
			"signup", ast.OperatorAddHours,
			map[string]interface{}{"amount": float64(1), "target": "now", "compare": "sideways"},
			false,
		},
		{"hour_of_day", "signup", ast.OperatorHourOfDay, float64(12), true},
		{"day_of_month", "created", ast.OperatorDayOfMonth, float64(10), true},
		{"month list membership", "created", ast.OperatorMonth, []interface{}{float64(5), float64(6)}, true},
		{"year", "created", ast.OperatorYear, float64(2025), true},
		{"week_of_year constraint", "created", ast.OperatorWeekOfYear, map[string]interface{}{"gte": float64(20), "lte": float64(30)}, true},
		{"numeric timestamp as unix seconds", "epoch", ast.OperatorYear, float64(2025), true},
		{
			"rate_per_minute over events",
			"events", ast.OperatorRatePerMinute,
			map[string]interface{}{"gt": float64(0.03), "lt": float64(0.04)},
			true,
		},
		{"rate with single event is false", "created", ast.OperatorRatePerSecond, float64(1), false},
		{
			"moving_average trailing window",
			"readings", ast.OperatorMovingAverage,
			map[string]interface{}{"window": float64(2), "result": float64(6.5)},
			true,
		},
		{
			"moving_sum",
			"readings", ast.OperatorMovingSum,
			map[string]interface{}{"window": float64(3), "result": float64(15)},
			true,
		},
		{
			"moving_max",
			"readings", ast.OperatorMovingMax,
			map[string]interface{}{"window": float64(4), "result": float64(10)},
			true,
		},
		{
			"moving_min",
			"readings", ast.OperatorMovingMin,
			map[string]interface{}{"window": float64(2), "result": float64(3)},
			true,
		},
		{
			"moving window larger than input",
			"readings", ast.OperatorMovingSum,
			map[string]interface{}{"window": float64(10), "result": float64(16)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(dctx, simple(tt.field, tt.op, tt.value)); got != tt.want {
				t.Errorf("%s %s %v = %v, want %v", tt.field, tt.op, tt.value, got, tt.want)
			}
		})
	}
}

func TestEvaluate_DateTimeDeterministic(t *testing.T) {
	e := testEvaluator()
	node := simple("signup", ast.OperatorWithinDays, float64(2))

	// Two contexts with the same data and reference time must agree no
	// matter when they are evaluated.
	first := e.Evaluate(temporalContext(), node)
	second := e.Evaluate(temporalContext(), node)
	if first != second || !first {
		t.Errorf("temporal evaluation not deterministic: %v then %v", first, second)
	}
}

func TestEvaluate_Financial(t *testing.T) {
	e := testEvaluator()
	dctx := decision.NewContext(map[string]interface{}{
		"principal": float64(1000),
		"future":    float64(1100),
	})

	tests := []struct {
		name  string
		field string
		op    ast.Operator
		value interface{}
		want  bool
	}{
		{
			"compound interest annual",
			"principal", ast.OperatorCompoundInterest,
			map[string]interface{}{"rate": float64(0.05), "periods": float64(2), "gt": float64(1102.49), "lt": float64(1102.51)},
			true,
		},
		{
			"compound interest monthly frequency",
			"principal", ast.OperatorCompoundInterest,
			map[string]interface{}{"rate": float64(0.12), "periods": float64(1), "frequency": float64(12), "gt": float64(1126), "lt": float64(1127)},
			true,
		},
		{
			"present value",
			"future", ast.OperatorPresentValue,
			map[string]interface{}{"rate": float64(0.1), "periods": float64(1), "result": float64(1000)},
			true,
		},
		{
			"future value",
			"principal", ast.OperatorFutureValue,
			map[string]interface{}{"rate": float64(0.1), "periods": float64(2), "gt": float64(1209.99), "lt": float64(1210.01)},
			true,
		},
		{
			"payment zero rate divides evenly",
			"principal", ast.OperatorPayment,
			map[string]interface{}{"rate": float64(0), "periods": float64(10), "result": float64(100)},
			true,
		},
		{
			"payment standard annuity",
			"principal", ast.OperatorPayment,
			map[string]interface{}{"rate": float64(0.05), "periods": float64(10), "gt": float64(129), "lt": float64(130)},
			true,
		},
		{
			"payment zero periods is false",
			"principal", ast.OperatorPayment,
			map[string]interface{}{"rate": float64(0.05), "periods": float64(0), "result": float64(0)},
			false,
		},
		{
			"missing rate is false",
			"principal", ast.OperatorFutureValue,
			map[string]interface{}{"periods": float64(2), "result": float64(1210)},
			false,
		},
		{
			"non-map operand is false",
			"principal", ast.OperatorFutureValue,
			float64(1210),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(dctx, simple(tt.field, tt.op, tt.value)); got != tt.want {
				t.Errorf("%s %s = %v, want %v", tt.field, tt.op, got, tt.want)
			}
		})
	}
}
