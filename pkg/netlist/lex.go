package netlist

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MoleSir/reda/pkg/parse"
	"github.com/MoleSir/reda/pkg/unit"
)

// sp skips insignificant whitespace. Space, tab and CR never matter; a bare
// newline ends the current statement and is left in place, UNLESS it is
// immediately followed by '+', in which case the pair is a line continuation:
// both characters and any following space/tab run are consumed and skipping
// goes on.
func sp(input string) string {
	i := input
	for i != "" {
		switch i[0] {
		case ' ', '\t', '\r':
			i = i[1:]
		case '\n':
			if len(i) >= 2 && i[1] == '+' {
				i = i[2:]
				for i != "" && (i[0] == ' ' || i[0] == '\t') {
					i = i[1:]
				}
			} else {
				return i
			}
		default:
			return i
		}
	}
	return i
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// identifier: a letter or underscore followed by letters, digits, '_' or '.'.
func identifier(input string) (string, string, *parse.Error) {
	if input == "" || !(isAlpha(input[0]) || input[0] == '_') {
		return "", input, parse.NoMatch(input, "identifier")
	}
	n := 1
	for n < len(input) && (isAlpha(input[n]) || isDigit(input[n]) || input[n] == '_' || input[n] == '.') {
		n++
	}
	return input[:n], input[n:], nil
}

// node: one or more letters, digits, '_' or '.'. Unlike identifier a node
// name may start with a digit ("0" is ground).
func node(input string) (string, string, *parse.Error) {
	n := 0
	for n < len(input) && (isAlpha(input[n]) || isDigit(input[n]) || input[n] == '_' || input[n] == '.') {
		n++
	}
	if n == 0 {
		return "", input, parse.NoMatch(input, "node")
	}
	return input[:n], input[n:], nil
}

func unsignedInt(input string) (uint32, string, *parse.Error) {
	n := 0
	for n < len(input) && isDigit(input[n]) {
		n++
	}
	if n == 0 {
		return 0, input, parse.NoMatch(input, "unsigned_int")
	}
	v, err := strconv.ParseUint(input[:n], 10, 32)
	if err != nil {
		return 0, input, parse.NoMatch(input, "unsigned_int")
	}
	return uint32(v), input[n:], nil
}

// float: [-]digits[.digits*]. No exponent form, no leading dot.
func float(input string) (float64, string, *parse.Error) {
	n := 0
	if n < len(input) && input[n] == '-' {
		n++
	}
	start := n
	for n < len(input) && isDigit(input[n]) {
		n++
	}
	if n == start {
		return 0, input, parse.NoMatch(input, "float")
	}
	if n < len(input) && input[n] == '.' {
		n++
		for n < len(input) && isDigit(input[n]) {
			n++
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(input[:n], "."), 64)
	if err != nil {
		return 0, input, parse.NoMatch(input, "float")
	}
	return v, input[n:], nil
}

// tagNoCase consumes tag case-insensitively, or reports a recoverable
// mismatch labeled with the tag itself.
func tagNoCase(input, tag string) (string, *parse.Error) {
	rest, ok := foldPrefix(input, tag)
	if !ok {
		return input, parse.NoMatch(input, tag)
	}
	return rest, nil
}

// foldPrefix strips a case-insensitive prefix, rune by rune so that non-ASCII
// suffix letters match too.
func foldPrefix(s, prefix string) (string, bool) {
	for _, pr := range prefix {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || unicode.ToLower(r) != unicode.ToLower(pr) {
			return "", false
		}
		s = s[size:]
	}
	return s, true
}

// A scale table maps suffix spellings to decimal orders. Order is load
// bearing: longer spellings come first so that "meg" is not consumed as "m"
// leaving a stray "eg", and unit-letter-qualified spellings ("kV") come
// before the bare scales so the unit letter is not left behind.
type scaleTok struct {
	text  string
	scale unit.Suffix
}

var plainScales = []scaleTok{
	{"g", unit.Mega},
	{"meg", unit.Mega},
	{"k", unit.Kilo},
	{"m", unit.Milli},
	{"u", unit.Micro},
	{"n", unit.Nano},
	{"p", unit.Pico},
}

// scaleTable builds the table for one quantity: qualified spellings first,
// then the bare scales, then the bare unit letter meaning scale None.
func scaleTable(unitLetter string) []scaleTok {
	t := make([]scaleTok, 0, 2*len(plainScales)+1)
	for _, s := range plainScales {
		t = append(t, scaleTok{s.text + unitLetter, s.scale})
	}
	t = append(t, plainScales...)
	t = append(t, scaleTok{unitLetter, unit.None})
	return t
}

var (
	voltageScales     = scaleTable("V")
	currentScales     = scaleTable("A")
	resistanceScales  = scaleTable("Ω")
	capacitanceScales = scaleTable("F")
	inductanceScales  = scaleTable("H")
	timeScales        = scaleTable("s")
)

// suffixedNumber recognizes a float followed by an optional scale suffix
// drawn from table, first match wins.
func suffixedNumber(input, label string, table []scaleTok) (unit.Number, string, *parse.Error) {
	v, rest, err := float(input)
	if err != nil {
		return unit.Number{}, input, parse.NoMatch(input, label)
	}
	for _, s := range table {
		if r, ok := foldPrefix(rest, s.text); ok {
			return unit.N(v, s.scale), r, nil
		}
	}
	return unit.N(v, unit.None), rest, nil
}

func number(input string) (unit.Number, string, *parse.Error) {
	return suffixedNumber(input, "expect number", plainScales)
}

func voltageNumber(input string) (unit.Voltage, string, *parse.Error) {
	n, rest, err := suffixedNumber(input, "expect voltage number", voltageScales)
	return unit.Voltage(n), rest, err
}

func currentNumber(input string) (unit.Current, string, *parse.Error) {
	n, rest, err := suffixedNumber(input, "expect current number", currentScales)
	return unit.Current(n), rest, err
}

func resistanceNumber(input string) (unit.Resistance, string, *parse.Error) {
	n, rest, err := suffixedNumber(input, "expect resistance number", resistanceScales)
	return unit.Resistance(n), rest, err
}

func capacitanceNumber(input string) (unit.Capacitance, string, *parse.Error) {
	n, rest, err := suffixedNumber(input, "expect capacitance number", capacitanceScales)
	return unit.Capacitance(n), rest, err
}

func inductanceNumber(input string) (unit.Inductance, string, *parse.Error) {
	n, rest, err := suffixedNumber(input, "expect inductance number", inductanceScales)
	return unit.Inductance(n), rest, err
}

func timeNumber(input string) (unit.Time, string, *parse.Error) {
	n, rest, err := suffixedNumber(input, "expect time number", timeScales)
	return unit.Time(n), rest, err
}

func frequencyNumber(input string) (unit.Frequency, string, *parse.Error) {
	n, rest, err := number(input)
	return unit.Frequency(n), rest, err
}

func angleNumber(input string) (unit.Angle, string, *parse.Error) {
	n, rest, err := number(input)
	return unit.Angle(n), rest, err
}

// comment: '*' or ';' through end of line, newline consumed. Returns the
// comment text with surrounding whitespace trimmed.
func comment(input string) (string, string, *parse.Error) {
	if input == "" || (input[0] != '*' && input[0] != ';') {
		return "", input, parse.NoMatch(input, "comment")
	}
	rest := input[1:]
	for rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}
	text, after, found := strings.Cut(rest, "\n")
	if !found {
		after = ""
	}
	return strings.TrimRight(text, " \t\r"), after, nil
}
