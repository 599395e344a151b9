// Package netlist parses SPICE circuit descriptions into the circuit data
// model. The grammar is line oriented: statements end at a bare newline and
// continue across "\n+" pairs. Parsing backtracks between statement kinds
// until one commits (its keyword or type-prefix letter matched); after the
// commit point any malformed field aborts the whole parse with a
// line-numbered diagnostic.
package netlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/parse"
)

// ParseFile reads and parses one SPICE file.
func ParseFile(path string) (*circuit.Netlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading netlist: %w", err)
	}
	return Parse(string(data))
}

// Parse parses a complete SPICE text into a netlist.
func Parse(full string) (*circuit.Netlist, error) {
	n := circuit.NewNetlist()
	input := full

	for strings.TrimSpace(input) != "" {
		input = skipBlankOrCommentLines(input)
		if input == "" {
			break
		}

		rest, err := statement(input, n)
		if err != nil {
			if err.Fatal() {
				return nil, fmt.Errorf("error at line %d:\n%s%w",
					parse.Line(full, err.Rest()), parse.Render(full, err), err)
			}
			return nil, fmt.Errorf("at line %d: unknown statement: %s: %w",
				parse.Line(full, input), parse.Preview(input), err)
		}
		input = rest
	}

	return n, nil
}

// statement parses one top-level statement into n. The order of the
// alternatives matters: elements and sources are tried before the dot
// commands, and the dot commands commit on their keyword.
func statement(input string, n *circuit.Netlist) (string, *parse.Error) {
	if c, rest, err := component(input); err == nil {
		n.AddComponent(c)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	if s, rest, err := source(input); err == nil {
		n.AddSource(s)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	if s, rest, err := simCommand(input); err == nil {
		n.AddSimulation(s)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	if m, rest, err := measureCommand(input); err == nil {
		n.AddMeasure(m)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	if inst, rest, err := instance(input); err == nil {
		n.Instances = append(n.Instances, inst)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	if s, rest, err := subckt(input); err == nil {
		n.AddSubckt(s)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	if m, rest, err := model(input); err == nil {
		n.AddModel(m)
		return rest, nil
	} else if err.Fatal() {
		return input, err
	}

	return input, parse.NoMatch(input, "statement")
}

// skipBlankOrCommentLines drops leading whitespace and comment lines until
// real statement text or end of input.
func skipBlankOrCommentLines(input string) string {
	for {
		input = strings.TrimLeft(input, " \t\r\n")
		if input == "" {
			return ""
		}
		if _, rest, err := comment(input); err == nil {
			input = rest
			continue
		}
		return input
	}
}
