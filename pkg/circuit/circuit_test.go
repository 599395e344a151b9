package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoleSir/reda/pkg/unit"
)

func TestComponentSpice(t *testing.T) {
	// Names are stored without the type-prefix letter; Spice() re-adds it.
	r := Resistor{Name: "1", NodePos: "in", NodeNeg: "out", Resistance: unit.Resistance(unit.N(1, unit.Kilo))}
	assert.Equal(t, "R1 in out 1k", r.Spice())

	c := Capacitor{Name: "1", NodePos: "out", NodeNeg: "0", Capacitance: unit.Capacitance(unit.N(10, unit.Pico))}
	assert.Equal(t, "C1 out 0 10pF", c.Spice())

	d := Diode{Name: "1", NodePos: "a", NodeNeg: "k", ModelName: "d1n4148"}
	assert.Equal(t, "D1 a k d1n4148", d.Spice())
}

func TestNewMosfet(t *testing.T) {
	l := unit.Length(unit.N(0.18, unit.Micro))
	w := unit.Length(unit.N(1, unit.Micro))
	m, err := NewMosfet("1", "d", "g", "s", "b", "nch", &l, &w, nil)
	require.NoError(t, err)
	assert.Equal(t, "M1 d g s b nch L=0.18u W=1u", m.Spice())

	_, err = NewMosfet("2", "d", "g", "s", "b", "nch", nil, &w, nil)
	assert.Error(t, err)
}

func TestSourceSpice(t *testing.T) {
	v := Source{Name: "1", NodePos: "1", NodeNeg: "0",
		Value: DcVoltage{Value: unit.Voltage(unit.N(5, unit.None))}}
	assert.Equal(t, "V1 1 0 DC 5V", v.Spice())

	i := Source{Name: "in", NodePos: "2", NodeNeg: "0",
		Value: DcCurrent{Value: unit.Current(unit.N(1, unit.Milli))}}
	assert.Equal(t, "Iin 2 0 DC 1mA", i.Spice())

	p := Pulse{
		V1:     unit.Voltage(unit.N(1.8, unit.None)),
		Rise:   unit.Time{Value: 1, Suffix: unit.Nano},
		Fall:   unit.Time{Value: 1, Suffix: unit.Nano},
		Width:  unit.Time{Value: 4, Suffix: unit.Nano},
		Period: unit.Time{Value: 10, Suffix: unit.Nano},
	}
	assert.Equal(t, "PULSE(0V 1.8V 0s 1ns 1ns 4ns 10ns)", p.Spice())
}

func TestPwlVoltageAt(t *testing.T) {
	p := Pwl{Points: []PwlPoint{
		{Time: unit.Time{Value: 0}, Voltage: unit.Voltage{Value: 0}},
		{Time: unit.Time{Value: 10, Suffix: unit.Nano}, Voltage: unit.Voltage{Value: 1}},
	}}
	assert.InDelta(t, 0.5, p.VoltageAt(unit.Time{Value: 5, Suffix: unit.Nano}).Float64(), 1e-12)
	// Past the last point holds the last value.
	assert.InDelta(t, 1.0, p.VoltageAt(unit.Time{Value: 20, Suffix: unit.Nano}).Float64(), 1e-12)
}

func TestPulseVoltageAt(t *testing.T) {
	clk := Clock(unit.Voltage{Value: 1.0}, unit.Time{Value: 10, Suffix: unit.Nano}, unit.Time{Value: 1, Suffix: unit.Nano})
	// Mid-plateau of the first cycle.
	assert.InDelta(t, 1.0, clk.VoltageAt(unit.Time{Value: 3, Suffix: unit.Nano}).Float64(), 1e-12)
	// The waveform repeats each period.
	assert.InDelta(t, 1.0, clk.VoltageAt(unit.Time{Value: 13, Suffix: unit.Nano}).Float64(), 1e-12)
}

func TestSimCommandSpice(t *testing.T) {
	dc := DcCommand{SrcName: "V1", Start: unit.Voltage{Value: 0}, Stop: unit.Voltage{Value: 5}, Step: unit.Voltage{Value: 0.1}}
	assert.Equal(t, ".DC V1 0V 5V 0.1V", dc.Spice())

	ac := DecadeSweep(10, unit.Frequency{Value: 1}, unit.Frequency{Value: 1, Suffix: unit.Mega})
	assert.Equal(t, ".AC DEC 10 1 1Meg", ac.Spice())

	tran := TranCommand{Step: unit.Time{Value: 1, Suffix: unit.Nano}, Stop: unit.Time{Value: 100, Suffix: unit.Nano}}
	assert.Equal(t, ".TRAN 1ns 100ns", tran.Spice())

	start := unit.Time{Value: 10, Suffix: unit.Nano}
	tran.Start = &start
	tran.UIC = true
	assert.Equal(t, ".TRAN 1ns 100ns 10ns UIC", tran.Spice())
}

func TestMeasureSpice(t *testing.T) {
	vout := OutputVariable{Kind: VoltageVar, Node1: "out"}
	rise := MeasureRise{
		Name:     "tdlay",
		Analysis: AnalysisTran,
		Trig:     TrigTarg{Variable: OutputVariable{Kind: VoltageVar, Node1: "in"}, Value: unit.N(0.9, unit.None), Edge: EdgeRise, Number: 1},
		Targ:     TrigTarg{Variable: vout, Value: unit.N(0.9, unit.None), Edge: EdgeFall, Number: 1},
	}
	assert.Equal(t, ".MEAS TRAN tdlay TRIG V(in) VAL=0.9 RISE=1 TARG V(out) VAL=0.9 FALL=1", rise.Spice())

	stat := MeasureBasicStat{
		Name: "vavg", Analysis: AnalysisTran, Stat: StatAvg, Variable: vout,
		From: unit.Time{Value: 0}, To: unit.Time{Value: 10, Suffix: unit.Nano},
	}
	assert.Equal(t, ".MEAS TRAN vavg AVG V(out) FROM=0s TO=10ns", stat.Spice())

	fw := MeasureFindWhen{
		Name: "vq", Analysis: AnalysisTran, Variable: vout,
		When: FindWhenCondition{Variable: OutputVariable{Kind: VoltageVar, Node1: "in"}, Value: unit.N(0.5, unit.None)},
	}
	assert.Equal(t, ".MEAS TRAN vq FIND V(out) WHEN V(in)=0.5", fw.Spice())
}

func TestNetlistBuild(t *testing.T) {
	n := NewNetlist()
	n.AddResistor("1", "in", "out", unit.Resistance(unit.N(1, unit.Kilo)))
	n.AddVoltageSource("1", "in", "0", DcVoltage{Value: unit.Voltage{Value: 5}})
	n.AddSimulation(TranCommand{Step: unit.Time{Value: 1, Suffix: unit.Nano}, Stop: unit.Time{Value: 1, Suffix: unit.Micro}})

	sub := &Subckt{Name: "inv", Ports: []string{"a", "y", "vdd", "gnd"}}
	sub.AddResistor("l", "vdd", "y", unit.Resistance(unit.N(10, unit.Kilo)))
	n.AddSubckt(sub)
	n.AddInstance("1", []string{"in", "out", "vdd", "0"}, "inv")

	require.NotNil(t, n.Subckt("inv"))
	assert.Nil(t, n.Subckt("nand"))

	text := n.Spice()
	assert.Contains(t, text, ".SUBCKT inv a y vdd gnd\nRl vdd y 10k\n.ENDS")
	assert.Contains(t, text, "R1 in out 1k")
	assert.Contains(t, text, "V1 in 0 DC 5V")
	assert.Contains(t, text, ".TRAN 1ns 1us")
}

func TestModelSpice(t *testing.T) {
	m := Model{Name: "nch", Kind: ModelNMOS, Params: map[string]unit.Number{
		"VTO": unit.N(0.7, unit.None),
		"KP":  unit.N(120, unit.Micro),
	}}
	assert.Equal(t, ".MODEL nch NMOS (KP=120u VTO=0.7)", m.Spice())

	bare := Model{Name: "sw", Kind: ModelNPN}
	assert.Equal(t, ".MODEL sw NPN", bare.Spice())
}
