package circuit

import (
	"fmt"
	"strings"

	"github.com/MoleSir/reda/pkg/unit"
)

// Subckt is a .SUBCKT/.ENDS block: a named port list plus the components and
// instances of its body, in source order.
type Subckt struct {
	Name       string
	Ports      []string
	Components []Component
	Instances  []Instance
}

// Instance is an X line. SubcktName is a textual reference; resolving it
// against a Subckt definition is the caller's concern.
type Instance struct {
	Name       string
	Pins       []string
	SubcktName string
}

func (i Instance) Spice() string {
	parts := append([]string{i.Name}, i.Pins...)
	parts = append(parts, i.SubcktName)
	return strings.Join(parts, " ")
}

func (s *Subckt) Spice() string {
	var b strings.Builder
	fmt.Fprintf(&b, ".SUBCKT %s %s\n", s.Name, strings.Join(s.Ports, " "))
	for _, c := range s.Components {
		b.WriteString(c.Spice())
		b.WriteByte('\n')
	}
	for _, i := range s.Instances {
		b.WriteString(i.Spice())
		b.WriteByte('\n')
	}
	b.WriteString(".ENDS")
	return b.String()
}

func (s *Subckt) AddResistor(name, nodePos, nodeNeg string, r unit.Resistance) {
	s.Components = append(s.Components, Resistor{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Resistance: r})
}

func (s *Subckt) AddCapacitor(name, nodePos, nodeNeg string, c unit.Capacitance) {
	s.Components = append(s.Components, Capacitor{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Capacitance: c})
}

func (s *Subckt) AddInductor(name, nodePos, nodeNeg string, l unit.Inductance) {
	s.Components = append(s.Components, Inductor{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Inductance: l})
}

func (s *Subckt) AddMosfet(m Mosfet) {
	s.Components = append(s.Components, m)
}

func (s *Subckt) AddInstance(name string, pins []string, subcktName string) {
	s.Instances = append(s.Instances, Instance{Name: name, Pins: pins, SubcktName: subcktName})
}
