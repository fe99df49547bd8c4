package condition

import (
	"math"
	"strings"
	"time"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateDateTime handles the date/time family. "now" always resolves to
// the context's pinned reference time, never the wall clock, so evaluation
// stays deterministic for a given context.
func (e *Evaluator) evaluateDateTime(dctx *decision.Context, op ast.Operator, actual, expected interface{}) bool {
	switch op {
	case ast.OperatorBeforeDate, ast.OperatorAfterDate:
		fieldTime, ok := e.asTime(actual)
		if !ok {
			return false
		}
		limit, ok := e.resolveTime(dctx, expected)
		if !ok {
			return false
		}
		if op == ast.OperatorBeforeDate {
			return fieldTime.Before(limit)
		}
		return fieldTime.After(limit)

	case ast.OperatorWithinDays:
		fieldTime, ok := e.asTime(actual)
		if !ok {
			return false
		}
		days, ok := toFloat(expected)
		if !ok || days < 0 {
			return false
		}
		// Absolute day difference from the reference time.
		diff := math.Abs(dctx.Now().Sub(fieldTime).Hours()) / 24
		return diff <= days+epsilon

	case ast.OperatorDayOfWeek:
		fieldTime, ok := e.asTime(actual)
		if !ok {
			return false
		}
		return matchesDayOfWeek(fieldTime.Weekday(), expected)

	case ast.OperatorDurationSeconds, ast.OperatorDurationMinutes,
		ast.OperatorDurationHours, ast.OperatorDurationDays:
		return e.evaluateDuration(dctx, op, actual, expected)

	case ast.OperatorAddDays, ast.OperatorSubtractDays,
		ast.OperatorAddHours, ast.OperatorSubtractHours,
		ast.OperatorAddMinutes, ast.OperatorSubtractMinutes:
		return e.evaluateDateArithmetic(dctx, op, actual, expected)

	case ast.OperatorHourOfDay, ast.OperatorDayOfMonth, ast.OperatorMonth,
		ast.OperatorYear, ast.OperatorWeekOfYear:
		return e.evaluateDateComponent(op, actual, expected)

	case ast.OperatorRatePerSecond, ast.OperatorRatePerMinute, ast.OperatorRatePerHour:
		return e.evaluateRate(op, actual, expected)

	case ast.OperatorMovingAverage, ast.OperatorMovingSum,
		ast.OperatorMovingMax, ast.OperatorMovingMin:
		return e.evaluateMovingWindow(op, actual, expected)

	default:
		return false
	}
}

// evaluateDuration computes end minus the field time in the operator's unit
// and checks it against the operand's constraints. The end is the operand
// map's "end" key: the literal "now" or another field path.
func (e *Evaluator) evaluateDuration(dctx *decision.Context, op ast.Operator, actual, expected interface{}) bool {
	start, ok := e.asTime(actual)
	if !ok {
		return false
	}
	params, ok := asMap(expected)
	if !ok {
		return false
	}
	end, ok := e.resolveTime(dctx, params["end"])
	if !ok {
		return false
	}

	seconds := end.Sub(start).Seconds()
	var computed float64
	switch op {
	case ast.OperatorDurationSeconds:
		computed = seconds
	case ast.OperatorDurationMinutes:
		computed = seconds / 60
	case ast.OperatorDurationHours:
		computed = seconds / 3600
	case ast.OperatorDurationDays:
		computed = seconds / 86400
	}

	return compareResult(computed, expected)
}

// evaluateDateArithmetic shifts the field time by the operand's amount and
// compares the shifted time against a target with the operand's compare
// operator: before, after, eq, on_or_before, on_or_after.
func (e *Evaluator) evaluateDateArithmetic(dctx *decision.Context, op ast.Operator, actual, expected interface{}) bool {
	fieldTime, ok := e.asTime(actual)
	if !ok {
		return false
	}
	params, ok := asMap(expected)
	if !ok {
		return false
	}
	amount, ok := toFloat(params["amount"])
	if !ok {
		return false
	}
	target, ok := e.resolveTime(dctx, params["target"])
	if !ok {
		return false
	}
	compare, ok := params["compare"].(string)
	if !ok {
		return false
	}

	var unit time.Duration
	switch op {
	case ast.OperatorAddDays, ast.OperatorSubtractDays:
		unit = 24 * time.Hour
	case ast.OperatorAddHours, ast.OperatorSubtractHours:
		unit = time.Hour
	case ast.OperatorAddMinutes, ast.OperatorSubtractMinutes:
		unit = time.Minute
	}
	switch op {
	case ast.OperatorSubtractDays, ast.OperatorSubtractHours, ast.OperatorSubtractMinutes:
		amount = -amount
	}

	shifted := fieldTime.Add(time.Duration(amount * float64(unit)))

	switch compare {
	case "before":
		return shifted.Before(target)
	case "after":
		return shifted.After(target)
	case "eq":
		return shifted.Equal(target)
	case "on_or_before":
		return !shifted.After(target)
	case "on_or_after":
		return !shifted.Before(target)
	default:
		return false
	}
}

// evaluateDateComponent extracts a calendar component from the field time
// and checks it against the operand (number, list, or parameter map).
func (e *Evaluator) evaluateDateComponent(op ast.Operator, actual, expected interface{}) bool {
	fieldTime, ok := e.asTime(actual)
	if !ok {
		return false
	}

	var component float64
	switch op {
	case ast.OperatorHourOfDay:
		component = float64(fieldTime.Hour())
	case ast.OperatorDayOfMonth:
		component = float64(fieldTime.Day())
	case ast.OperatorMonth:
		component = float64(fieldTime.Month())
	case ast.OperatorYear:
		component = float64(fieldTime.Year())
	case ast.OperatorWeekOfYear:
		_, week := fieldTime.ISOWeek()
		component = float64(week)
	}

	// A list operand is membership.
	if arr, ok := expected.([]interface{}); ok {
		for _, item := range arr {
			if v, ok := toFloat(item); ok && v == component {
				return true
			}
		}
		return false
	}

	return compareResult(component, expected)
}

// evaluateRate computes events per unit over a timestamp array: (n-1) events
// spread across the span between the earliest and latest points. Fewer than
// two points, or a zero span, evaluates to false.
func (e *Evaluator) evaluateRate(op ast.Operator, actual, expected interface{}) bool {
	arr, ok := actual.([]interface{})
	if !ok {
		return false
	}

	times := make([]time.Time, 0, len(arr))
	for _, item := range arr {
		if t, ok := e.asTime(item); ok {
			times = append(times, t)
		}
	}
	if len(times) < 2 {
		return false
	}

	earliest, latest := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(earliest) {
			earliest = t
		}
		if t.After(latest) {
			latest = t
		}
	}

	span := latest.Sub(earliest).Seconds()
	if span <= 0 {
		return false
	}

	events := float64(len(times) - 1)
	var computed float64
	switch op {
	case ast.OperatorRatePerSecond:
		computed = events / span
	case ast.OperatorRatePerMinute:
		computed = events / (span / 60)
	case ast.OperatorRatePerHour:
		computed = events / (span / 3600)
	}

	return compareResult(computed, expected)
}

// evaluateMovingWindow aggregates the trailing window of a numeric array.
// Input shorter than the window evaluates to false.
func (e *Evaluator) evaluateMovingWindow(op ast.Operator, actual, expected interface{}) bool {
	values, ok := toFloats(actual)
	if !ok {
		return false
	}
	params, ok := asMap(expected)
	if !ok {
		return false
	}
	windowF, ok := toFloat(params["window"])
	if !ok || windowF < 1 || !isWholeNumber(windowF) {
		return false
	}
	window := int(windowF)
	if len(values) < window {
		return false
	}

	tail := values[len(values)-window:]
	var computed float64
	switch op {
	case ast.OperatorMovingAverage:
		computed = sum(tail) / float64(window)
	case ast.OperatorMovingSum:
		computed = sum(tail)
	case ast.OperatorMovingMax:
		computed = tail[0]
		for _, v := range tail[1:] {
			if v > computed {
				computed = v
			}
		}
	case ast.OperatorMovingMin:
		computed = tail[0]
		for _, v := range tail[1:] {
			if v < computed {
				computed = v
			}
		}
	}

	return compareResult(computed, expected)
}

// resolveTime resolves a time reference from an operand: the literal "now"
// (the context's pinned reference time), a field path into the context, or a
// date value.
func (e *Evaluator) resolveTime(dctx *decision.Context, ref interface{}) (time.Time, bool) {
	str, isString := ref.(string)
	if isString {
		if str == "now" {
			return dctx.Now(), true
		}
		if v, found := dctx.LookupSegments(e.paths.get(str)); found {
			return e.asTime(v)
		}
	}
	return e.asTime(ref)
}

// dayNames maps weekday names and abbreviations to time.Weekday.
var dayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// matchesDayOfWeek matches a weekday against a name, an abbreviation, a 0-6
// number (0 = Sunday), or a list of any of those.
func matchesDayOfWeek(day time.Weekday, expected interface{}) bool {
	switch value := expected.(type) {
	case string:
		want, ok := dayNames[strings.ToLower(value)]
		return ok && want == day
	case []interface{}:
		for _, item := range value {
			if matchesDayOfWeek(day, item) {
				return true
			}
		}
		return false
	default:
		if n, ok := toFloat(expected); ok {
			return isWholeNumber(n) && n >= 0 && n <= 6 && time.Weekday(int(n)) == day
		}
		return false
	}
}
