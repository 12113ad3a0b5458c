package classify

import (
	"slices"
	"strings"
)

// constants are qalc constant names. Matched exactly and case-sensitively.
var constants = []string{"e", "pi", "tau", "phi", "c", "avogadro", "boltzmann"}

// functions are regex fragments for function names that must be directly
// followed by "(" to count as a call.
var functions = []string{
	"abs", "min", "max", "floor", "ceil", "sgn", "round",
	"pow", "sqrt", "cbrt",
	"exp", "ln", "log", "log2", "log10",
	"(?:a|arc)?(?:sin|cos|tan|csc|sec|cot)h?",
	"integrate", "diff",
	"sum", "product",
	"mean", "median", "mode", "stdevp?",
	"dot", "cross",
	"bin", "hex", "oct",
}

// siPrefix is the optional single-letter SI prefix in front of siUnits.
const siPrefix = "[nμumckMGTPEZY]"

// siUnits are SI base and derived unit symbols that accept siPrefix.
var siUnits = []string{
	// base
	"[smgAK]", "sec", "mol", "cd",
	// derived
	"[LlNJWTVCF]", "liter", "litre", "Hz", "hertz", "Pa", "pascal", "bar", "ohm",
}

// siLongPrefixes and siLongUnits cover spelled-out forms like "kilometer".
var siLongPrefixes = []string{
	"yotta", "zetta", "exa", "peta", "tera", "giga", "mega", "kilo", "hecto", "deca",
	"deci", "centi", "milli", "micro", "nano", "pico", "femto", "atto", "zepto", "yocto",
}

var siLongUnits = []string{
	"meter", "metre", "gram", "second", "ampere", "kelvin", "mole", "candela",
	"liter", "litre", "newton", "joule", "watt", "volt", "tesla", "coulomb", "farad",
	"hertz", "pascal", "ohm",
}

// unitGroup is a named set of whole-word unit fragments.
type unitGroup struct {
	name  string
	units []string
}

var unitGroups = []unitGroup{
	{"time", []string{"min", "minute", "h", "hr", "hour", "d", "day", "week", "month", "yr", "year"}},
	{"length", []string{"in", "inch(?:es)?", "ft", "foot", "feet", "yd", "yard", "mi", "mile", "ly", "pc", "parsec"}},
	{"speed", []string{"mph", "kph", "knot"}},
	{"area", []string{"ha", "acre"}},
	{"volume", []string{"floz", "cup", "gal", "gallon", "barrel"}},
	{"fuel economy", []string{"mpg"}},
	{"mass", []string{"oz", "lb", "pound", `k\s*lb`, "ton", "tonne"}},
	{"temperature", []string{"oC", "oF", "[Cc]elsius", "[Ff]ahrenheit"}},
	{"pressure", []string{"atm", "mmHg", "[Tt]orr"}},
	{"information", []string{"(?:[kMGTPEZY]i?)?B"}},
}

// radixNames are the targets accepted after "to" in a base conversion.
var radixNames = []string{"bin", "binary", "oct", "octal", "hex", "hexadecimal"}

func alt(parts []string) string {
	return "(?:" + strings.Join(parts, "|") + ")"
}

// unitPattern assembles the unit alternation from the tables above.
func unitPattern() string {
	return alt(Units())
}

// Constants returns the constant names IsConstant accepts.
func Constants() []string { return slices.Clone(constants) }

// Functions returns the function-name fragments HasFunctionCall looks for.
// Some entries are regular expressions rather than plain names.
func Functions() []string { return slices.Clone(functions) }

// Units returns the unit fragments IsUnitConversion accepts, prefixed forms
// first, as regular expressions.
func Units() []string {
	units := []string{
		siPrefix + "?" + alt(siUnits),
		alt(siLongPrefixes) + "?" + alt(siLongUnits),
	}
	for _, g := range unitGroups {
		units = append(units, g.units...)
	}
	return units
}
