// Package errors provides rich error types for RDL parsing and validation.
//
// Parsing and validation accumulate errors into an ErrorList instead of
// failing on the first problem, so a single pass over a ruleset document
// reports everything that is wrong with it. Each error carries its source
// location and an optional suggested fix.
package errors
