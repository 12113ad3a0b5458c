// Package classify decides whether free launcher text looks like something
// qalc can compute. It never runs the engine and has no state.
package classify

import (
	"regexp"
	"slices"
	"strings"
)

var (
	basicExpressionChars = regexp.MustCompile(`^[0-9.,+\-*/^()\[\]{}Ee&|~\s]+$`)

	functionCall = regexp.MustCompile(alt(functions) + `\(`)

	// Only the head of the query has to look like "<number> <unit>";
	// whatever follows (" to miles", "/h", "2") is left to the engine.
	// Units may be chained ("kWh", "Nm") but must not run into more letters.
	unitConversion = regexp.MustCompile(
		`^-?\d+[\d.\-*^Ee]*\s*` + unitPattern() + `+s?(?:[^A-Za-z]|$)`)

	baseConversion = regexp.MustCompile(
		`^(?:(?:0[BbOo])?[0-9]+|0[Xx][0-9A-Fa-f]+)(?:\s+to\s+` + alt(radixNames) + `)?$`)
)

// Check is a single named heuristic.
type Check struct {
	Name  string
	Match func(query string) bool
}

var checks = []Check{
	{Name: "arithmetic", Match: IsArithmetic},
	{Name: "constant", Match: IsConstant},
	{Name: "function", Match: HasFunctionCall},
	{Name: "unit", Match: IsUnitConversion},
	{Name: "base", Match: IsBaseConversion},
}

// ShouldEvaluate reports whether an ambient (keyword-less) query is worth
// sending to the engine. query must already be trimmed.
func ShouldEvaluate(query string) bool {
	for _, c := range checks {
		if c.Match(query) {
			return true
		}
	}
	return false
}

// Matches returns the names of every check that accepts query.
func Matches(query string) []string {
	var names []string
	for _, c := range checks {
		if c.Match(query) {
			names = append(names, c.Name)
		}
	}
	return names
}

// IsArithmetic accepts strings made only of digits, operators, brackets and
// exponent markers, with at least one digit.
func IsArithmetic(query string) bool {
	return basicExpressionChars.MatchString(query) && containsASCIIDigit(query)
}

// IsConstant accepts the bare name of a known constant.
func IsConstant(query string) bool {
	return slices.Contains(constants, query)
}

// HasFunctionCall accepts any string containing a known function name
// immediately followed by "(".
func HasFunctionCall(query string) bool {
	return functionCall.MatchString(query)
}

// IsUnitConversion accepts strings that start with a number and a unit.
func IsUnitConversion(query string) bool {
	return unitConversion.MatchString(query)
}

// IsBaseConversion accepts a plain, 0b/0o or 0x integer literal, optionally
// followed by "to <radix>".
func IsBaseConversion(query string) bool {
	return baseConversion.MatchString(query)
}

func containsASCIIDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
