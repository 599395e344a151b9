package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/unit"
)

// rampRecord samples v(out)=t and i(V1)=t/10 at t=0..4s.
func rampRecord() *TranRecord {
	r := NewTranRecord()
	for i := 0; i <= 4; i++ {
		t := float64(i)
		r.Record(unit.Time(unit.Num(t)),
			map[string]unit.Voltage{"out": unit.Voltage(unit.Num(t))},
			map[string]unit.Current{"V1": unit.Current(unit.Num(t / 10))})
	}
	return r
}

// squareRecord samples v(out) alternating 0,5,0,5,0 at t=0..4s.
func squareRecord() *TranRecord {
	r := NewTranRecord()
	levels := []float64{0, 5, 0, 5, 0}
	for i, v := range levels {
		r.Record(unit.Time(unit.Num(float64(i))),
			map[string]unit.Voltage{"out": unit.Voltage(unit.Num(v))},
			nil)
	}
	return r
}

func vOut() circuit.OutputVariable {
	return circuit.OutputVariable{Kind: circuit.VoltageVar, Node1: "out"}
}

func TestVoltageAt(t *testing.T) {
	r := rampRecord()
	v, err := r.VoltageAt("out", unit.Time(unit.Num(2.5)))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v.Float64(), 1e-12)

	_, err = r.VoltageAt("out", unit.Time(unit.Num(5)))
	assert.Error(t, err)
	_, err = r.VoltageAt("missing", unit.Time(unit.Num(1)))
	assert.Error(t, err)
}

func TestCurrentAt(t *testing.T) {
	r := rampRecord()
	c, err := r.CurrentAt("V1", unit.Time(unit.Num(3)))
	require.NoError(t, err)
	assert.InDelta(t, 0.3, c.Float64(), 1e-12)
}

func TestMeasureRise(t *testing.T) {
	r := rampRecord()
	m := circuit.MeasureRise{
		Name: "tramp",
		Trig: circuit.TrigTarg{Variable: vOut(), Value: unit.Num(1), Edge: circuit.EdgeRise, Number: 1},
		Targ: circuit.TrigTarg{Variable: vOut(), Value: unit.Num(3), Edge: circuit.EdgeRise, Number: 1},
	}
	v, err := Evaluate(m, r)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)
}

func TestMeasureEdgeCounting(t *testing.T) {
	r := squareRecord()
	rise2 := circuit.TrigTarg{Variable: vOut(), Value: unit.Num(2.5), Edge: circuit.EdgeRise, Number: 2}
	tc, err := crossing(r, rise2)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, tc, 1e-12)

	fall1 := circuit.TrigTarg{Variable: vOut(), Value: unit.Num(2.5), Edge: circuit.EdgeFall, Number: 1}
	tc, err = crossing(r, fall1)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, tc, 1e-12)

	rise3 := circuit.TrigTarg{Variable: vOut(), Value: unit.Num(2.5), Edge: circuit.EdgeRise, Number: 3}
	_, err = crossing(r, rise3)
	assert.Error(t, err)
}

func TestMeasureBasicStats(t *testing.T) {
	r := rampRecord()
	window := func(f circuit.StatFunc) circuit.MeasureBasicStat {
		return circuit.MeasureBasicStat{
			Name:     "stat",
			Stat:     f,
			Variable: vOut(),
			From:     unit.Time(unit.Num(0)),
			To:       unit.Time(unit.Num(4)),
		}
	}

	v, err := Evaluate(window(circuit.StatAvg), r)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	v, err = Evaluate(window(circuit.StatMax), r)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	v, err = Evaluate(window(circuit.StatPp), r)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	v, err = Evaluate(window(circuit.StatIntegrate), r)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, v, 1e-12)

	v, err = Evaluate(window(circuit.StatDeriv), r)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)

	// Trapezoidal RMS over the squared samples 0,1,4,9,16: sqrt(22/4).
	v, err = Evaluate(window(circuit.StatRms), r)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5.5), v, 1e-12)
}

func TestMeasureWindowClipping(t *testing.T) {
	r := rampRecord()
	m := circuit.MeasureBasicStat{
		Name:     "clip",
		Stat:     circuit.StatMin,
		Variable: vOut(),
		From:     unit.Time(unit.Num(2)),
		To:       unit.Time(unit.Num(4)),
	}
	v, err := Evaluate(m, r)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	m.From = unit.Time(unit.Num(10))
	m.To = unit.Time(unit.Num(20))
	_, err = Evaluate(m, r)
	assert.Error(t, err)
}

func TestMeasureFindWhen(t *testing.T) {
	r := rampRecord()
	m := circuit.MeasureFindWhen{
		Name:     "iat2",
		Variable: circuit.OutputVariable{Kind: circuit.CurrentVar, Element: "V1"},
		When:     circuit.FindWhenCondition{Variable: vOut(), Value: unit.Num(2)},
	}
	v, err := Evaluate(m, r)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, v, 1e-12)

	m.When.Value = unit.Num(100)
	_, err = Evaluate(m, r)
	assert.Error(t, err)
}

func TestMeasureDifferentialProbe(t *testing.T) {
	r := NewTranRecord()
	for i := 0; i <= 2; i++ {
		t64 := float64(i)
		r.Record(unit.Time(unit.Num(t64)), map[string]unit.Voltage{
			"a": unit.Voltage(unit.Num(t64 * 2)),
			"b": unit.Voltage(unit.Num(t64)),
		}, nil)
	}
	m := circuit.MeasureBasicStat{
		Name:     "diff",
		Stat:     circuit.StatMax,
		Variable: circuit.OutputVariable{Kind: circuit.VoltageVar, Node1: "a", Node2: "b"},
		From:     unit.Time(unit.Num(0)),
		To:       unit.Time(unit.Num(2)),
	}
	v, err := Evaluate(m, r)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)
}
