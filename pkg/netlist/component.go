package netlist

import (
	"strings"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/parse"
	"github.com/MoleSir/reda/pkg/unit"
)

// Each element production commits once the leading identifier carries the
// right type-prefix letter; from that point any malformed field is fatal.
// Until then a mismatch just means "not this element kind", and the caller
// tries the next alternative.

func component(input string) (circuit.Component, string, *parse.Error) {
	if c, rest, err := resistor(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := capacitor(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := inductor(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := diode(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := bjt(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := mosfet(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	return nil, input, parse.NoMatch(input, "component")
}

// hasPrefixLetter reports whether name begins with the upper or lower case
// form of the ASCII type-prefix letter.
func hasPrefixLetter(name string, letter byte) bool {
	return name != "" && (name[0] == letter || name[0] == letter|0x20)
}

// Rname N+ N- value
func resistor(input string) (circuit.Resistor, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Resistor{}, input, err.Push(input, "resistor")
	}
	if !hasPrefixLetter(name, 'R') {
		return circuit.Resistor{}, input, parse.NoMatch(rest, "should begin with R").Push(input, "resistor")
	}

	nodePos, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Resistor{}, input, parse.Promote(err).Push(input, "resistor")
	}
	nodeNeg, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Resistor{}, input, parse.Promote(err).Push(input, "resistor")
	}
	value, rest, err := resistanceNumber(sp(rest))
	if err != nil {
		return circuit.Resistor{}, input, parse.Promote(err).Push(input, "resistor")
	}

	r := circuit.Resistor{
		Name:       name[1:],
		NodePos:    nodePos,
		NodeNeg:    nodeNeg,
		Resistance: value,
	}
	return r, sp(rest), nil
}

// Cname N+ N- value
func capacitor(input string) (circuit.Capacitor, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Capacitor{}, input, err.Push(input, "capacitor")
	}
	if !hasPrefixLetter(name, 'C') {
		return circuit.Capacitor{}, input, parse.NoMatch(rest, "should begin with C").Push(input, "capacitor")
	}

	nodePos, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Capacitor{}, input, parse.Promote(err).Push(input, "capacitor")
	}
	nodeNeg, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Capacitor{}, input, parse.Promote(err).Push(input, "capacitor")
	}
	value, rest, err := capacitanceNumber(sp(rest))
	if err != nil {
		return circuit.Capacitor{}, input, parse.Promote(err).Push(input, "capacitor")
	}

	c := circuit.Capacitor{
		Name:        name[1:],
		NodePos:     nodePos,
		NodeNeg:     nodeNeg,
		Capacitance: value,
	}
	return c, sp(rest), nil
}

// Lname N+ N- value
func inductor(input string) (circuit.Inductor, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Inductor{}, input, err.Push(input, "inductor")
	}
	if !hasPrefixLetter(name, 'L') {
		return circuit.Inductor{}, input, parse.NoMatch(rest, "should begin with L").Push(input, "inductor")
	}

	nodePos, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Inductor{}, input, parse.Promote(err).Push(input, "inductor")
	}
	nodeNeg, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Inductor{}, input, parse.Promote(err).Push(input, "inductor")
	}
	value, rest, err := inductanceNumber(sp(rest))
	if err != nil {
		return circuit.Inductor{}, input, parse.Promote(err).Push(input, "inductor")
	}

	l := circuit.Inductor{
		Name:       name[1:],
		NodePos:    nodePos,
		NodeNeg:    nodeNeg,
		Inductance: value,
	}
	return l, sp(rest), nil
}

// Dname N+ N- MODname
func diode(input string) (circuit.Diode, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Diode{}, input, err.Push(input, "diode")
	}
	if !hasPrefixLetter(name, 'D') {
		return circuit.Diode{}, input, parse.NoMatch(rest, "should begin with D").Push(input, "diode")
	}

	nodePos, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Diode{}, input, parse.Promote(err).Push(input, "diode")
	}
	nodeNeg, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Diode{}, input, parse.Promote(err).Push(input, "diode")
	}
	modelName, rest, err := identifier(sp(rest))
	if err != nil {
		return circuit.Diode{}, input, parse.Promote(err).Push(input, "diode")
	}

	d := circuit.Diode{
		Name:      name[1:],
		NodePos:   nodePos,
		NodeNeg:   nodeNeg,
		ModelName: modelName,
	}
	return d, sp(rest), nil
}

// Qname NC NB NE model
func bjt(input string) (circuit.BJT, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.BJT{}, input, err.Push(input, "bjt")
	}
	if !hasPrefixLetter(name, 'Q') {
		return circuit.BJT{}, input, parse.NoMatch(rest, "should begin with Q").Push(input, "bjt")
	}

	collector, rest, err := node(sp(rest))
	if err != nil {
		return circuit.BJT{}, input, parse.Promote(err).Push(input, "bjt")
	}
	base, rest, err := node(sp(rest))
	if err != nil {
		return circuit.BJT{}, input, parse.Promote(err).Push(input, "bjt")
	}
	emitter, rest, err := node(sp(rest))
	if err != nil {
		return circuit.BJT{}, input, parse.Promote(err).Push(input, "bjt")
	}
	modelName, rest, err := identifier(sp(rest))
	if err != nil {
		return circuit.BJT{}, input, parse.Promote(err).Push(input, "bjt")
	}

	q := circuit.BJT{
		Name:      name[1:],
		Collector: collector,
		Base:      base,
		Emitter:   emitter,
		ModelName: modelName,
	}
	return q, sp(rest), nil
}

// Mname ND NG NS NB model [key=value ...]; L= and W= pairs are folded into
// the geometry fields, everything else lands in Params.
func mosfet(input string) (circuit.Mosfet, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Mosfet{}, input, err.Push(input, "mosfet")
	}
	if !hasPrefixLetter(name, 'M') {
		return circuit.Mosfet{}, input, parse.NoMatch(rest, "should begin with M").Push(input, "mosfet")
	}

	drain, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Mosfet{}, input, parse.Promote(err).Push(input, "mosfet")
	}
	gate, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Mosfet{}, input, parse.Promote(err).Push(input, "mosfet")
	}
	source, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Mosfet{}, input, parse.Promote(err).Push(input, "mosfet")
	}
	bulk, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Mosfet{}, input, parse.Promote(err).Push(input, "mosfet")
	}
	modelName, rest, err := identifier(sp(rest))
	if err != nil {
		return circuit.Mosfet{}, input, parse.Promote(err).Push(input, "mosfet")
	}

	var length, width *unit.Length
	params := map[string]unit.Number{}
	for {
		key, val, r, err := parameterPair(rest)
		if err != nil {
			break
		}
		rest = r
		switch strings.ToLower(key) {
		case "l":
			l := unit.Length(val)
			length = &l
		case "w":
			w := unit.Length(val)
			width = &w
		default:
			params[key] = val
		}
	}

	m, buildErr := circuit.NewMosfet(name[1:], drain, gate, source, bulk, modelName, length, width, params)
	if buildErr != nil {
		return circuit.Mosfet{}, input, parse.Fail(rest, "no w/l given").Push(input, "mosfet")
	}
	return m, sp(rest), nil
}

// .model <name> <kind> (<key=value ...>)
func model(input string) (circuit.Model, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), ".model")
	if err != nil {
		return circuit.Model{}, input, err.Push(input, "model")
	}
	name, rest, err := identifier(sp(rest))
	if err != nil {
		return circuit.Model{}, input, parse.Promote(err).Push(input, "model")
	}
	kind, rest, err := modelKind(sp(rest))
	if err != nil {
		return circuit.Model{}, input, parse.Promote(err).Push(input, "model")
	}

	rest2, err := tagNoCase(sp(rest), "(")
	if err != nil {
		return circuit.Model{}, input, parse.Promote(err).Push(input, "model")
	}
	rest = rest2

	params := map[string]unit.Number{}
	for {
		key, val, r, err := parameterPair(rest)
		if err != nil {
			break
		}
		params[key] = val
		rest = r
	}

	rest, err = tagNoCase(sp(rest), ")")
	if err != nil {
		return circuit.Model{}, input, parse.Promote(err).Push(input, "model")
	}

	return circuit.Model{Name: name, Kind: kind, Params: params}, sp(rest), nil
}

var modelKinds = []struct {
	tag  string
	kind circuit.ModelKind
}{
	{"NPN", circuit.ModelNPN},
	{"PNP", circuit.ModelPNP},
	{"D", circuit.ModelDiode},
	{"NMOS", circuit.ModelNMOS},
	{"PMOS", circuit.ModelPMOS},
}

func modelKind(input string) (circuit.ModelKind, string, *parse.Error) {
	for _, k := range modelKinds {
		if rest, ok := foldPrefix(input, k.tag); ok {
			return k.kind, rest, nil
		}
	}
	return 0, input, parse.NoMatch(input, "model kind")
}

// key=value where key is an identifier and value a plain number.
func parameterPair(input string) (string, unit.Number, string, *parse.Error) {
	key, rest, err := identifier(sp(input))
	if err != nil {
		return "", unit.Number{}, input, err
	}
	rest2, err := tagNoCase(sp(rest), "=")
	if err != nil {
		return "", unit.Number{}, input, err
	}
	val, rest, err := number(sp(rest2))
	if err != nil {
		return "", unit.Number{}, input, err
	}
	return key, val, sp(rest), nil
}
