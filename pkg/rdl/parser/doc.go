// Package parser parses RDL ruleset documents from YAML into ASTs.
//
// Parsing is a two-phase process: the YAML is first decoded into intermediate
// yaml* structures that mirror the document layout, then a builder transforms
// them into ast nodes, accumulating structural errors with source locations
// along the way. The parser performs structural validation only; semantic
// validation (operator names, weight bounds, operand shapes) is the job of
// the validator package.
//
// # Document layout
//
//	rdl_version: "1"
//	name: loan-screening
//	version: "1.0.0"
//	rules:
//	  - id: adult-applicant
//	    priority: 10
//	    if:
//	      all:
//	        - field: applicant.age
//	          operator: between
//	          value: [18, 65]
//	    then:
//	      decision: approve
//	      weight: 0.8
//	      reason: applicant is in the accepted age band
//
// Conditions are a single field test, an array of tests (implicit all), or a
// logical combinator (all/any) over child conditions.
package parser
