package netlist

import (
	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/parse"
	"github.com/MoleSir/reda/pkg/unit"
)

// V<name> N+ N- <value> or I<name> N+ N- <value>. The prefix letter picks
// which flavor of DC/AC value applies; SIN, PWL and PULSE are shared.
func source(input string) (circuit.Source, string, *parse.Error) {
	name, rest, err := identifier(sp(input))
	if err != nil {
		return circuit.Source{}, input, err.Push(input, "source")
	}

	var voltageKind bool
	switch {
	case hasPrefixLetter(name, 'V'):
		voltageKind = true
	case hasPrefixLetter(name, 'I'):
		voltageKind = false
	default:
		return circuit.Source{}, input, parse.NoMatch(rest, "source must begin with V or I").Push(input, "source")
	}

	nodePos, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Source{}, input, parse.Promote(err).Push(rest, "node_pos").Push(input, "source")
	}
	nodeNeg, rest, err := node(sp(rest))
	if err != nil {
		return circuit.Source{}, input, parse.Promote(err).Push(rest, "node_neg").Push(input, "source")
	}
	value, rest, err := sourceValue(sp(rest), voltageKind)
	if err != nil {
		return circuit.Source{}, input, parse.Promote(err).Push(input, "source")
	}

	s := circuit.Source{
		Name:    name[1:],
		NodePos: nodePos,
		NodeNeg: nodeNeg,
		Value:   value,
	}
	return s, sp(rest), nil
}

func sourceValue(input string, voltageKind bool) (circuit.SourceValue, string, *parse.Error) {
	if voltageKind {
		if v, rest, err := dcVoltage(input); err == nil || err.Fatal() {
			return v, rest, err
		}
		if v, rest, err := acVoltage(input); err == nil || err.Fatal() {
			return v, rest, err
		}
	} else {
		if v, rest, err := dcCurrent(input); err == nil || err.Fatal() {
			return v, rest, err
		}
		if v, rest, err := acCurrent(input); err == nil || err.Fatal() {
			return v, rest, err
		}
	}
	if v, rest, err := sinValue(input); err == nil || err.Fatal() {
		return v, rest, err
	}
	if v, rest, err := pwlValue(input); err == nil || err.Fatal() {
		return v, rest, err
	}
	if v, rest, err := pulseValue(input); err == nil || err.Fatal() {
		return v, rest, err
	}
	return nil, input, parse.NoMatch(input, "source_value")
}

// dcKeyword consumes an optional "DC=" or "DC" marker. With the marker
// present the value is committed; a bare number stays recoverable so the
// other value forms get their turn.
func dcKeyword(input string) (string, bool) {
	if rest, err := tagNoCase(input, "DC="); err == nil {
		return sp(rest), true
	}
	if rest, err := tagNoCase(input, "DC"); err == nil {
		return sp(rest), true
	}
	return input, false
}

func dcVoltage(input string) (circuit.DcVoltage, string, *parse.Error) {
	rest, keyword := dcKeyword(sp(input))
	v, rest, err := voltageNumber(sp(rest))
	if err != nil {
		if keyword {
			err = parse.Promote(err)
		}
		return circuit.DcVoltage{}, input, err.Push(input, "dc")
	}
	return circuit.DcVoltage{Value: v}, sp(rest), nil
}

func dcCurrent(input string) (circuit.DcCurrent, string, *parse.Error) {
	rest, keyword := dcKeyword(sp(input))
	v, rest, err := currentNumber(sp(rest))
	if err != nil {
		if keyword {
			err = parse.Promote(err)
		}
		return circuit.DcCurrent{}, input, err.Push(input, "dc")
	}
	return circuit.DcCurrent{Value: v}, sp(rest), nil
}

func acKeyword(input string) (string, bool) {
	if rest, err := tagNoCase(input, "AC="); err == nil {
		return sp(rest), true
	}
	if rest, err := tagNoCase(input, "AC"); err == nil {
		return sp(rest), true
	}
	return input, false
}

func acVoltage(input string) (circuit.AcVoltage, string, *parse.Error) {
	rest, keyword := acKeyword(sp(input))
	mag, rest, err := voltageNumber(sp(rest))
	if err == nil {
		var phase unit.Angle
		phase, rest, err = angleNumber(sp(rest))
		if err == nil {
			return circuit.AcVoltage{Magnitude: mag, PhaseDeg: phase}, sp(rest), nil
		}
	}
	if keyword {
		err = parse.Promote(err)
	}
	return circuit.AcVoltage{}, input, err.Push(input, "ac voltage")
}

func acCurrent(input string) (circuit.AcCurrent, string, *parse.Error) {
	rest, keyword := acKeyword(sp(input))
	mag, rest, err := currentNumber(sp(rest))
	if err == nil {
		var phase unit.Angle
		phase, rest, err = angleNumber(sp(rest))
		if err == nil {
			return circuit.AcCurrent{Magnitude: mag, PhaseDeg: phase}, sp(rest), nil
		}
	}
	if keyword {
		err = parse.Promote(err)
	}
	return circuit.AcCurrent{}, input, err.Push(input, "ac current")
}

// SIN(VO VA FREQ <TD <THETA <PHASE>>>)
func sinValue(input string) (circuit.Sin, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), "SIN")
	if err != nil {
		return circuit.Sin{}, input, err.Push(input, "SIN")
	}
	rest, err = tagNoCase(sp(rest), "(")
	if err != nil {
		return circuit.Sin{}, input, parse.Promote(err).Push(input, "SIN")
	}

	offset, rest, err := voltageNumber(sp(rest))
	if err != nil {
		return circuit.Sin{}, input, parse.Promote(err).Push(rest, "vo").Push(input, "SIN")
	}
	amplitude, rest, err := voltageNumber(sp(rest))
	if err != nil {
		return circuit.Sin{}, input, parse.Promote(err).Push(rest, "va").Push(input, "SIN")
	}
	freq, rest, err := frequencyNumber(sp(rest))
	if err != nil {
		return circuit.Sin{}, input, parse.Promote(err).Push(rest, "freq").Push(input, "SIN")
	}

	s := circuit.Sin{Offset: offset, Amplitude: amplitude, Freq: freq}
	if v, r, err := timeNumber(sp(rest)); err == nil {
		s.Delay = v
		rest = r
		if v, r, err := frequencyNumber(sp(rest)); err == nil {
			s.Damping = v
			rest = r
			if v, r, err := number(sp(rest)); err == nil {
				s.PhaseDeg = v
				rest = r
			}
		}
	}

	rest, err = tagNoCase(sp(rest), ")")
	if err != nil {
		return circuit.Sin{}, input, parse.Promote(err).Push(input, "SIN")
	}
	return s, sp(rest), nil
}

// PWL(T1 V1 T2 V2 ...)
func pwlValue(input string) (circuit.Pwl, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), "PWL")
	if err != nil {
		return circuit.Pwl{}, input, err.Push(input, "PWL")
	}
	rest, err = tagNoCase(sp(rest), "(")
	if err != nil {
		return circuit.Pwl{}, input, parse.Promote(err).Push(input, "PWL")
	}

	var points []circuit.PwlPoint
	for {
		t, r, err := timeNumber(sp(rest))
		if err != nil {
			return circuit.Pwl{}, input, parse.Promote(err).Push(input, "PWL")
		}
		v, r, err := voltageNumber(sp(r))
		if err != nil {
			return circuit.Pwl{}, input, parse.Promote(err).Push(input, "PWL")
		}
		points = append(points, circuit.PwlPoint{Time: t, Voltage: v})
		rest = r

		if r, err := tagNoCase(sp(rest), ")"); err == nil {
			rest = r
			break
		}
	}
	return circuit.Pwl{Points: points}, sp(rest), nil
}

// PULSE(V0 V1 TD TR TF TW TO)
func pulseValue(input string) (circuit.Pulse, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), "PULSE")
	if err != nil {
		return circuit.Pulse{}, input, err.Push(input, "PULSE")
	}
	rest, err = tagNoCase(sp(rest), "(")
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(input, "PULSE")
	}

	var p circuit.Pulse
	p.V0, rest, err = voltageNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "v0").Push(input, "PULSE")
	}
	p.V1, rest, err = voltageNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "v1").Push(input, "PULSE")
	}
	p.Delay, rest, err = timeNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "td").Push(input, "PULSE")
	}
	p.Rise, rest, err = timeNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "tr").Push(input, "PULSE")
	}
	p.Fall, rest, err = timeNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "tf").Push(input, "PULSE")
	}
	p.Width, rest, err = timeNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "tw").Push(input, "PULSE")
	}
	p.Period, rest, err = timeNumber(sp(rest))
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(rest, "to").Push(input, "PULSE")
	}

	rest, err = tagNoCase(sp(rest), ")")
	if err != nil {
		return circuit.Pulse{}, input, parse.Promote(err).Push(input, "PULSE")
	}
	return p, sp(rest), nil
}
