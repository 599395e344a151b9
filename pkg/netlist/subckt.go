package netlist

import (
	"strings"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/parse"
)

// .SUBCKT name port1 port2 ... <body> .ENDS
// The body is consumed line by line: components and X instances only.
// Anything else before .ENDS is fatal, since the block header committed us.
func subckt(input string) (*circuit.Subckt, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), ".SUBCKT")
	if err != nil {
		return nil, input, err.Push(input, "subckt")
	}

	name, rest, err := identifier(sp(rest))
	if err != nil {
		return nil, input, parse.Promote(err).Push(rest, "declaration").Push(input, "subckt")
	}
	var ports []string
	for {
		p, r, err := node(sp(rest))
		if err != nil {
			break
		}
		ports = append(ports, p)
		rest = r
	}

	sub := &circuit.Subckt{Name: name, Ports: ports}
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if _, r, err := comment(rest); err == nil {
			rest = r
			continue
		}

		if len(rest) >= 5 && strings.EqualFold(rest[:5], ".ends") {
			if _, after, found := strings.Cut(rest, "\n"); found {
				rest = after
			} else {
				rest = ""
			}
			break
		}

		if c, r, err := component(rest); err == nil {
			sub.Components = append(sub.Components, c)
			rest = r
			continue
		} else if err.Fatal() {
			return nil, input, err.Push(input, "subckt")
		}

		if inst, r, err := instance(rest); err == nil {
			sub.Instances = append(sub.Instances, inst)
			rest = r
			continue
		} else if err.Fatal() {
			return nil, input, err.Push(input, "subckt")
		}

		return nil, input, parse.Fail(rest, "unknown line in subckt").Push(input, "subckt")
	}

	return sub, rest, nil
}

// Xname node1 node2 ... subckt_name
// The instance keeps its full name including the X; the last argument is the
// referenced definition, the rest are pin connections.
func instance(input string) (circuit.Instance, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Instance{}, input, err.Push(input, "instance")
	}
	if !hasPrefixLetter(name, 'X') {
		return circuit.Instance{}, input, parse.NoMatch(rest, "should begin with X").Push(input, "instance")
	}

	var args []string
	for {
		a, r, err := node(sp(rest))
		if err != nil {
			break
		}
		args = append(args, a)
		rest = r
	}
	if len(args) == 0 {
		return circuit.Instance{}, input, parse.Fail(rest, "missing subckt name").Push(input, "instance")
	}

	inst := circuit.Instance{
		Name:       name,
		Pins:       args[:len(args)-1],
		SubcktName: args[len(args)-1],
	}
	return inst, sp(rest), nil
}
