package analysis

import (
	"fmt"
	"math"

	"github.com/MoleSir/reda/pkg/circuit"
)

// Evaluate computes one .MEAS command over a transient record.
func Evaluate(m circuit.MeasureCommand, r *TranRecord) (float64, error) {
	switch m := m.(type) {
	case circuit.MeasureRise:
		tTrig, err := crossing(r, m.Trig)
		if err != nil {
			return 0, fmt.Errorf("measure %s: TRIG: %w", m.Name, err)
		}
		tTarg, err := crossing(r, m.Targ)
		if err != nil {
			return 0, fmt.Errorf("measure %s: TARG: %w", m.Name, err)
		}
		return tTarg - tTrig, nil
	case circuit.MeasureBasicStat:
		return basicStat(r, m)
	case circuit.MeasureFindWhen:
		return findWhen(r, m)
	}
	return 0, fmt.Errorf("measure %s: unsupported form", m.MeasureName())
}

// series resolves an output variable to its sample values. A two-node voltage
// probe is the pointwise difference of the node series.
func series(r *TranRecord, v circuit.OutputVariable) ([]float64, error) {
	if v.Kind == circuit.CurrentVar {
		s, ok := r.Branches[v.Element]
		if !ok {
			return nil, fmt.Errorf("unknown element %q", v.Element)
		}
		vals := make([]float64, len(s))
		for i, c := range s {
			vals[i] = c.Float64()
		}
		return vals, nil
	}
	s1, ok := r.Nodes[v.Node1]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", v.Node1)
	}
	vals := make([]float64, len(s1))
	for i, val := range s1 {
		vals[i] = val.Float64()
	}
	if v.Node2 != "" {
		s2, ok := r.Nodes[v.Node2]
		if !ok {
			return nil, fmt.Errorf("unknown node %q", v.Node2)
		}
		for i := range vals {
			if i < len(s2) {
				vals[i] -= s2[i].Float64()
			}
		}
	}
	return vals, nil
}

// crossing finds the time of the n-th rising or falling crossing of the
// condition value, linearly interpolated between the bracketing samples.
func crossing(r *TranRecord, c circuit.TrigTarg) (float64, error) {
	vals, err := series(r, c.Variable)
	if err != nil {
		return 0, err
	}
	times := r.times()
	val := c.Value.Float64()
	count := 0
	for i := 1; i < len(vals) && i < len(times); i++ {
		prev, cur := vals[i-1], vals[i]
		var hit bool
		if c.Edge == circuit.EdgeFall {
			hit = prev > val && cur <= val
		} else {
			hit = prev < val && cur >= val
		}
		if !hit {
			continue
		}
		count++
		if count == c.Number {
			return crossTime(times[i-1], times[i], prev, cur, val), nil
		}
	}
	return 0, fmt.Errorf("%s crossing %d of %s not found", c.Edge, c.Number, c.Value)
}

func crossTime(t0, t1, v0, v1, val float64) float64 {
	if v1 == v0 {
		return t0
	}
	return t0 + (val-v0)/(v1-v0)*(t1-t0)
}

func basicStat(r *TranRecord, m circuit.MeasureBasicStat) (float64, error) {
	vals, err := series(r, m.Variable)
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", m.Name, err)
	}
	times := r.times()
	from, to := m.From.Float64(), m.To.Float64()
	var wt, wv []float64
	for i := 0; i < len(times) && i < len(vals); i++ {
		if times[i] < from || times[i] > to {
			continue
		}
		wt = append(wt, times[i])
		wv = append(wv, vals[i])
	}
	if len(wt) == 0 {
		return 0, fmt.Errorf("measure %s: no samples in [%s, %s]", m.Name, m.From, m.To)
	}
	dur := wt[len(wt)-1] - wt[0]

	switch m.Stat {
	case circuit.StatMin:
		min := wv[0]
		for _, v := range wv {
			min = math.Min(min, v)
		}
		return min, nil
	case circuit.StatMax:
		max := wv[0]
		for _, v := range wv {
			max = math.Max(max, v)
		}
		return max, nil
	case circuit.StatPp:
		min, max := wv[0], wv[0]
		for _, v := range wv {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		return max - min, nil
	case circuit.StatAvg:
		if dur == 0 {
			return wv[0], nil
		}
		return trapezoid(wt, wv) / dur, nil
	case circuit.StatRms:
		if dur == 0 {
			return math.Abs(wv[0]), nil
		}
		sq := make([]float64, len(wv))
		for i, v := range wv {
			sq[i] = v * v
		}
		return math.Sqrt(trapezoid(wt, sq) / dur), nil
	case circuit.StatDeriv:
		if dur == 0 {
			return 0, fmt.Errorf("measure %s: zero-length window", m.Name)
		}
		return (wv[len(wv)-1] - wv[0]) / dur, nil
	case circuit.StatIntegrate:
		return trapezoid(wt, wv), nil
	}
	return 0, fmt.Errorf("measure %s: unknown statistic", m.Name)
}

func trapezoid(times, vals []float64) float64 {
	sum := 0.0
	for i := 1; i < len(times); i++ {
		sum += (vals[i] + vals[i-1]) / 2 * (times[i] - times[i-1])
	}
	return sum
}

// findWhen samples the FIND variable at the first time the WHEN variable
// crosses its value, in either direction.
func findWhen(r *TranRecord, m circuit.MeasureFindWhen) (float64, error) {
	when, err := series(r, m.When.Variable)
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", m.Name, err)
	}
	target, err := series(r, m.Variable)
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", m.Name, err)
	}
	times := r.times()
	val := m.When.Value.Float64()
	for i := 1; i < len(when) && i < len(times); i++ {
		prev, cur := when[i-1], when[i]
		if (prev < val && cur >= val) || (prev > val && cur <= val) {
			t := crossTime(times[i-1], times[i], prev, cur, val)
			return interp(times, target, t)
		}
	}
	return 0, fmt.Errorf("measure %s: %s never crosses %s",
		m.Name, m.When.Variable.Spice(), m.When.Value)
}
