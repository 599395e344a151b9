package circuit

import (
	"strings"

	"github.com/MoleSir/reda/pkg/unit"
)

// Netlist is the parsed form of one SPICE file. Every slice keeps source
// order so that Spice() reproduces the input statement for statement.
type Netlist struct {
	Components  []Component
	Sources     []Source
	Simulations []SimCommand
	Measures    []MeasureCommand
	Subckts     []*Subckt
	Instances   []Instance
	Models      []Model
}

func NewNetlist() *Netlist {
	return &Netlist{}
}

func (n *Netlist) AddComponent(c Component) {
	n.Components = append(n.Components, c)
}

func (n *Netlist) AddResistor(name, nodePos, nodeNeg string, r unit.Resistance) {
	n.AddComponent(Resistor{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Resistance: r})
}

func (n *Netlist) AddCapacitor(name, nodePos, nodeNeg string, c unit.Capacitance) {
	n.AddComponent(Capacitor{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Capacitance: c})
}

func (n *Netlist) AddInductor(name, nodePos, nodeNeg string, l unit.Inductance) {
	n.AddComponent(Inductor{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Inductance: l})
}

func (n *Netlist) AddDiode(name, nodePos, nodeNeg, modelName string) {
	n.AddComponent(Diode{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, ModelName: modelName})
}

func (n *Netlist) AddBJT(name, collector, base, emitter, modelName string) {
	n.AddComponent(BJT{Name: name, Collector: collector, Base: base, Emitter: emitter, ModelName: modelName})
}

func (n *Netlist) AddMosfet(m Mosfet) {
	n.AddComponent(m)
}

func (n *Netlist) AddSource(s Source) {
	n.Sources = append(n.Sources, s)
}

func (n *Netlist) AddVoltageSource(name, nodePos, nodeNeg string, value SourceValue) {
	n.AddSource(Source{Name: name, NodePos: nodePos, NodeNeg: nodeNeg, Value: value})
}

func (n *Netlist) AddSimulation(s SimCommand) {
	n.Simulations = append(n.Simulations, s)
}

func (n *Netlist) AddTran(step, stop unit.Time) {
	n.AddSimulation(TranCommand{Step: step, Stop: stop})
}

func (n *Netlist) AddAc(sweep AcSweep, points int, fStart, fStop unit.Frequency) {
	n.AddSimulation(AcCommand{Sweep: sweep, Points: points, FStart: fStart, FStop: fStop})
}

func (n *Netlist) AddDc(srcName string, start, stop, step unit.Voltage) {
	n.AddSimulation(DcCommand{SrcName: srcName, Start: start, Stop: stop, Step: step})
}

func (n *Netlist) AddMeasure(m MeasureCommand) {
	n.Measures = append(n.Measures, m)
}

func (n *Netlist) AddSubckt(s *Subckt) {
	n.Subckts = append(n.Subckts, s)
}

func (n *Netlist) AddInstance(name string, pins []string, subcktName string) {
	n.Instances = append(n.Instances, Instance{Name: name, Pins: pins, SubcktName: subcktName})
}

func (n *Netlist) AddModel(m Model) {
	n.Models = append(n.Models, m)
}

// Subckt returns the definition with the given name, or nil.
func (n *Netlist) Subckt(name string) *Subckt {
	for _, s := range n.Subckts {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Model returns the card with the given name, or nil.
func (n *Netlist) Model(name string) *Model {
	for i := range n.Models {
		if n.Models[i].Name == name {
			return &n.Models[i]
		}
	}
	return nil
}

// Spice renders the netlist back to source text, one statement per line.
func (n *Netlist) Spice() string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	for _, s := range n.Subckts {
		line(s.Spice())
	}
	for _, m := range n.Models {
		line(m.Spice())
	}
	for _, c := range n.Components {
		line(c.Spice())
	}
	for _, s := range n.Sources {
		line(s.Spice())
	}
	for _, i := range n.Instances {
		line(i.Spice())
	}
	for _, s := range n.Simulations {
		line(s.Spice())
	}
	for _, m := range n.Measures {
		line(m.Spice())
	}
	return b.String()
}
