// Package condition implements the fail-closed RDL condition interpreter.
//
// Evaluate walks a condition AST against an immutable decision context and
// returns a plain boolean. The contract is deliberately strict: no error is
// ever returned for business-logic reasons. A mistyped operand, a malformed
// regex, an unparsable date, an out-of-domain math input, or a missing field
// all evaluate to false. Only the boolean crosses the boundary.
//
// # Operator families
//
//   - comparison: eq, neq, gt, gte, lt, lte, in, present, blank
//   - string: contains, starts_with, ends_with, matches
//   - numeric: between, modulo
//   - math: trigonometry, roots, powers, logarithms, rounding, factorial,
//     gcd, lcm; results compared with an absolute epsilon of 1e-10
//   - stats: sum, average/mean, median, stddev/variance, percentile, count
//     over numeric arrays, with direct values or min/max/gt/lt/gte/lte/eq
//     parameter maps
//   - datetime: absolute and relative date tests, durations, date
//     arithmetic, component extraction, rates, moving windows
//   - financial: compound_interest, present_value, future_value, payment
//   - collection: contains_all, contains_any, intersects, subset_of
//     (set-based membership)
//   - geospatial: within_radius (Haversine), in_polygon (ray casting)
//
// # Caching
//
// Compiled regexes, split field paths, and parsed dates are pure functions
// of their string input, so the evaluator memoizes them behind read-mostly
// caches: lock-free-ish concurrent reads under an RLock with a narrow write
// lock on a miss (read, check, lock, recheck, write). One evaluator instance
// is safe for unlimited concurrent Evaluate calls.
package condition
