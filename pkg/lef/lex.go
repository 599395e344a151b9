package lef

import (
	"strconv"
	"strings"

	"github.com/MoleSir/reda/pkg/parse"
)

// ws skips insignificant characters. The grammar is not line sensitive, so
// newlines count as plain whitespace here, unlike the netlist skipper.
func ws(input string) string {
	return strings.TrimLeft(input, " \t\r\n")
}

// lit matches a literal token after leading whitespace. LEF keywords are
// case sensitive.
func lit(input, tok string) (string, *parse.Error) {
	rest := ws(input)
	if !strings.HasPrefix(rest, tok) {
		return input, parse.NoMatch(rest, tok)
	}
	return rest[len(tok):], nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// identifier reads [A-Za-z_][A-Za-z0-9_]*. Dots are not name characters in
// LEF, unlike SPICE identifiers.
func identifier(input string) (string, string, *parse.Error) {
	rest := ws(input)
	if len(rest) == 0 || !(isAlpha(rest[0]) || rest[0] == '_') {
		return "", input, parse.NoMatch(rest, "identifier")
	}
	i := 1
	for i < len(rest) && (isAlpha(rest[i]) || isDigit(rest[i]) || rest[i] == '_') {
		i++
	}
	return rest[:i], rest[i:], nil
}

// qstring reads a double-quoted string. The first '"' after the opener
// terminates it; there is no escaping.
func qstring(input string) (string, string, *parse.Error) {
	rest := ws(input)
	if len(rest) == 0 || rest[0] != '"' {
		return "", input, parse.NoMatch(rest, "quoted string")
	}
	body, after, ok := strings.Cut(rest[1:], `"`)
	if !ok {
		return "", input, parse.NoMatch(rest, "closing quote")
	}
	return body, after, nil
}

func unsignedInt(input string) (uint32, string, *parse.Error) {
	rest := ws(input)
	i := 0
	for i < len(rest) && isDigit(rest[i]) {
		i++
	}
	if i == 0 {
		return 0, input, parse.NoMatch(rest, "unsigned integer")
	}
	n, err := strconv.ParseUint(rest[:i], 10, 32)
	if err != nil {
		return 0, input, parse.NoMatch(rest, "unsigned integer")
	}
	return uint32(n), rest[i:], nil
}

// float reads an optional '-', a digit run, and an optional fraction.
// Underscores may separate digits ("1_000" reads as 1000).
func float(input string) (float64, string, *parse.Error) {
	rest := ws(input)
	i := 0
	if i < len(rest) && rest[i] == '-' {
		i++
	}
	start := i
	for i < len(rest) && (isDigit(rest[i]) || rest[i] == '_') {
		i++
	}
	if i == start || !isDigit(rest[start]) {
		return 0, input, parse.NoMatch(rest, "float")
	}
	if i < len(rest) && rest[i] == '.' {
		i++
		for i < len(rest) && (isDigit(rest[i]) || rest[i] == '_') {
			i++
		}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(rest[:i], "_", ""), 64)
	if err != nil {
		return 0, input, parse.NoMatch(rest, "float")
	}
	return v, rest[i:], nil
}
