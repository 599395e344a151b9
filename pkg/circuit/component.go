package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MoleSir/reda/pkg/unit"
)

// Component is one circuit element. Names are stored without the type-prefix
// letter ("R1 ..." yields a Resistor named "1"); node names are kept as plain
// text and never resolved against a netlist-wide table.
type Component interface {
	// Type returns the element prefix letter: R, C, L, D, Q or M.
	Type() string
	// Spice renders the element as a netlist line.
	Spice() string
}

type Resistor struct {
	Name       string
	NodePos    string
	NodeNeg    string
	Resistance unit.Resistance
}

type Capacitor struct {
	Name        string
	NodePos     string
	NodeNeg     string
	Capacitance unit.Capacitance
}

type Inductor struct {
	Name       string
	NodePos    string
	NodeNeg    string
	Inductance unit.Inductance
}

type Diode struct {
	Name      string
	NodePos   string
	NodeNeg   string
	ModelName string
}

type BJT struct {
	Name      string
	Collector string
	Base      string
	Emitter   string
	ModelName string
}

type Mosfet struct {
	Name      string
	Drain     string
	Gate      string
	Source    string
	Bulk      string
	ModelName string
	Length    unit.Length
	Width     unit.Length
	Params    map[string]unit.Number
}

// NewMosfet validates the one construction rule a MOSFET has: both channel
// length and width must have been resolved, either from explicit fields or
// from L=/W= parameter pairs.
func NewMosfet(name, drain, gate, source, bulk, modelName string, length, width *unit.Length, params map[string]unit.Number) (Mosfet, error) {
	if length == nil || width == nil {
		return Mosfet{}, fmt.Errorf("mosfet %s: no W/L given", name)
	}
	if params == nil {
		params = map[string]unit.Number{}
	}
	return Mosfet{
		Name:      name,
		Drain:     drain,
		Gate:      gate,
		Source:    source,
		Bulk:      bulk,
		ModelName: modelName,
		Length:    *length,
		Width:     *width,
		Params:    params,
	}, nil
}

func (Resistor) Type() string  { return "R" }
func (Capacitor) Type() string { return "C" }
func (Inductor) Type() string  { return "L" }
func (Diode) Type() string     { return "D" }
func (BJT) Type() string       { return "Q" }
func (Mosfet) Type() string    { return "M" }

func (r Resistor) Spice() string {
	return fmt.Sprintf("R%s %s %s %s", r.Name, r.NodePos, r.NodeNeg, r.Resistance)
}

func (c Capacitor) Spice() string {
	return fmt.Sprintf("C%s %s %s %s", c.Name, c.NodePos, c.NodeNeg, c.Capacitance)
}

func (l Inductor) Spice() string {
	return fmt.Sprintf("L%s %s %s %s", l.Name, l.NodePos, l.NodeNeg, l.Inductance)
}

func (d Diode) Spice() string {
	return fmt.Sprintf("D%s %s %s %s", d.Name, d.NodePos, d.NodeNeg, d.ModelName)
}

func (q BJT) Spice() string {
	return fmt.Sprintf("Q%s %s %s %s %s", q.Name, q.Collector, q.Base, q.Emitter, q.ModelName)
}

func (m Mosfet) Spice() string {
	var b strings.Builder
	fmt.Fprintf(&b, "M%s %s %s %s %s %s L=%s W=%s",
		m.Name, m.Drain, m.Gate, m.Source, m.Bulk, m.ModelName, m.Length, m.Width)
	keys := make([]string, 0, len(m.Params))
	for k := range m.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, m.Params[k])
	}
	return b.String()
}
