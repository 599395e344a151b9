package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/unit"
)

func TestComponentValue(t *testing.T) {
	r := circuit.Resistor{Name: "1", NodePos: "a", NodeNeg: "b",
		Resistance: unit.Resistance(unit.N(1.5, unit.Kilo))}
	assert.Equal(t, "1.500 kOhm", componentValue(r))

	c := circuit.Capacitor{Name: "1", NodePos: "a", NodeNeg: "b",
		Capacitance: unit.Capacitance(unit.N(10, unit.Pico))}
	assert.Equal(t, "10.000 pF", componentValue(c))

	d := circuit.Diode{Name: "1", NodePos: "a", NodeNeg: "k", ModelName: "d1"}
	assert.Equal(t, "", componentValue(d))
}

func TestSimValue(t *testing.T) {
	tr := circuit.TranCommand{
		Step: unit.Time(unit.N(1, unit.Nano)),
		Stop: unit.Time(unit.N(100, unit.Nano)),
	}
	assert.Equal(t, "100.000 ns", simValue(tr))

	ac := circuit.DecadeSweep(10, unit.Frequency(unit.Num(1)), unit.Frequency(unit.N(1, unit.Mega)))
	assert.Equal(t, "  1.000 Hz  ..   1.000 MHz", simValue(ac))
}
