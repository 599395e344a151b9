// Package analysis evaluates .MEAS commands against recorded transient
// waveforms.
package analysis

import (
	"fmt"

	"github.com/MoleSir/reda/pkg/unit"
)

// TranRecord holds one transient run: a shared time axis plus per-node
// voltage and per-branch current series, all the same length.
type TranRecord struct {
	Time     []unit.Time
	Nodes    map[string][]unit.Voltage
	Branches map[string][]unit.Current
}

func NewTranRecord() *TranRecord {
	return &TranRecord{
		Nodes:    make(map[string][]unit.Voltage),
		Branches: make(map[string][]unit.Current),
	}
}

// Record appends one sample point. Callers must supply the same keys every
// step; series missing from earlier points are not back-filled.
func (r *TranRecord) Record(t unit.Time, nodes map[string]unit.Voltage, branches map[string]unit.Current) {
	r.Time = append(r.Time, t)
	for name, v := range nodes {
		r.Nodes[name] = append(r.Nodes[name], v)
	}
	for name, c := range branches {
		r.Branches[name] = append(r.Branches[name], c)
	}
}

// VoltageAt linearly interpolates a node voltage at time t.
func (r *TranRecord) VoltageAt(node string, t unit.Time) (unit.Voltage, error) {
	series, ok := r.Nodes[node]
	if !ok {
		return unit.Voltage{}, fmt.Errorf("unknown node %q", node)
	}
	vals := make([]float64, len(series))
	for i, v := range series {
		vals[i] = v.Float64()
	}
	v, err := interp(r.times(), vals, t.Float64())
	if err != nil {
		return unit.Voltage{}, fmt.Errorf("node %s: %w", node, err)
	}
	return unit.Voltage(unit.Num(v)), nil
}

// CurrentAt linearly interpolates a branch current at time t.
func (r *TranRecord) CurrentAt(branch string, t unit.Time) (unit.Current, error) {
	series, ok := r.Branches[branch]
	if !ok {
		return unit.Current{}, fmt.Errorf("unknown element %q", branch)
	}
	vals := make([]float64, len(series))
	for i, c := range series {
		vals[i] = c.Float64()
	}
	v, err := interp(r.times(), vals, t.Float64())
	if err != nil {
		return unit.Current{}, fmt.Errorf("element %s: %w", branch, err)
	}
	return unit.Current(unit.Num(v)), nil
}

func (r *TranRecord) times() []float64 {
	ts := make([]float64, len(r.Time))
	for i, t := range r.Time {
		ts[i] = t.Float64()
	}
	return ts
}

// interp linearly interpolates vals over times at t. times must be ascending.
func interp(times, vals []float64, t float64) (float64, error) {
	if len(times) == 0 || len(vals) < len(times) {
		return 0, fmt.Errorf("empty record")
	}
	if t < times[0] || t > times[len(times)-1] {
		return 0, fmt.Errorf("time %g outside record [%g, %g]", t, times[0], times[len(times)-1])
	}
	for i := 1; i < len(times); i++ {
		if t > times[i] {
			continue
		}
		t0, t1 := times[i-1], times[i]
		if t1 == t0 {
			return vals[i], nil
		}
		k := (t - t0) / (t1 - t0)
		return vals[i-1] + k*(vals[i]-vals[i-1]), nil
	}
	return vals[len(times)-1], nil
}
