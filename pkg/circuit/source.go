package circuit

import (
	"fmt"
	"math"
	"strings"

	"github.com/MoleSir/reda/pkg/unit"
)

// Source is an independent voltage or current source line.
type Source struct {
	Name    string
	NodePos string
	NodeNeg string
	Value   SourceValue
}

// SourceValue is the value clause of a source line: one of DC, AC, SIN, PWL
// or PULSE, in a voltage or current flavor where the distinction matters.
type SourceValue interface {
	// Kind returns V for voltage-driven values and I for current-driven ones.
	Kind() string
	// Spice renders the value clause.
	Spice() string
}

type DcVoltage struct {
	Value unit.Voltage
}

type DcCurrent struct {
	Value unit.Current
}

type AcVoltage struct {
	Magnitude unit.Voltage
	PhaseDeg  unit.Angle
}

type AcCurrent struct {
	Magnitude unit.Current
	PhaseDeg  unit.Angle
}

// Sin is an exponentially damped sine: offset, amplitude, frequency, then
// optional delay, damping and phase.
type Sin struct {
	Offset    unit.Voltage
	Amplitude unit.Voltage
	Freq      unit.Frequency
	Delay     unit.Time
	Damping   unit.Frequency
	PhaseDeg  unit.Number
}

type PwlPoint struct {
	Time    unit.Time
	Voltage unit.Voltage
}

// Pwl is a piecewise-linear waveform. Points are kept exactly as they
// appeared in the source, in order, even when the times are not increasing.
type Pwl struct {
	Points []PwlPoint
}

type Pulse struct {
	V0     unit.Voltage
	V1     unit.Voltage
	Delay  unit.Time
	Rise   unit.Time
	Fall   unit.Time
	Width  unit.Time
	Period unit.Time
}

func (DcVoltage) Kind() string { return "V" }
func (DcCurrent) Kind() string { return "I" }
func (AcVoltage) Kind() string { return "V" }
func (AcCurrent) Kind() string { return "I" }
func (Sin) Kind() string       { return "V" }
func (Pwl) Kind() string       { return "V" }
func (Pulse) Kind() string     { return "V" }

func (d DcVoltage) Spice() string { return fmt.Sprintf("DC %s", d.Value) }
func (d DcCurrent) Spice() string { return fmt.Sprintf("DC %s", d.Value) }

func (a AcVoltage) Spice() string { return fmt.Sprintf("AC %s %s", a.Magnitude, a.PhaseDeg) }
func (a AcCurrent) Spice() string { return fmt.Sprintf("AC %s %s", a.Magnitude, a.PhaseDeg) }

func (s Sin) Spice() string {
	return fmt.Sprintf("SIN(%s %s %s %s %s %s)",
		s.Offset, s.Amplitude, s.Freq, s.Delay, s.Damping, s.PhaseDeg)
}

func (p Pwl) Spice() string {
	var b strings.Builder
	b.WriteString("PWL(")
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s %s", pt.Time, pt.Voltage)
	}
	b.WriteByte(')')
	return b.String()
}

func (p Pulse) Spice() string {
	return fmt.Sprintf("PULSE(%s %s %s %s %s %s %s)",
		p.V0, p.V1, p.Delay, p.Rise, p.Fall, p.Width, p.Period)
}

func (s Source) Spice() string {
	return fmt.Sprintf("%s%s %s %s %s", s.Value.Kind(), s.Name, s.NodePos, s.NodeNeg, s.Value.Spice())
}

// SinWave builds a plain A*sin(2*pi*f*t) source value.
func SinWave(amplitude unit.Voltage, freq unit.Frequency) Sin {
	return Sin{Amplitude: amplitude, Freq: freq}
}

// Clock builds a symmetric pulse train with the given supply, period and
// slew time.
func Clock(vdd unit.Voltage, period, slew unit.Time) Pulse {
	width := (period.Float64() - 2*slew.Float64()) / 2
	return Pulse{
		V1:     vdd,
		Rise:   slew,
		Fall:   slew,
		Width:  unit.Time{Value: width},
		Period: period,
	}
}

// VoltageAt evaluates the sine at time t.
func (s Sin) VoltageAt(t unit.Time) unit.Voltage {
	if t.Float64() < s.Delay.Float64() {
		return s.Offset
	}
	td := t.Float64() - s.Delay.Float64()
	envelope := math.Exp(-s.Damping.Float64() * td)
	omega := 2 * math.Pi * s.Freq.Float64()
	sine := math.Sin(omega*td + unit.Number(s.PhaseDeg).Float64()/360)
	return unit.Voltage{Value: s.Offset.Float64() + s.Amplitude.Float64()*envelope*sine}
}

// VoltageAt evaluates the pulse train at time t.
func (p Pulse) VoltageAt(t unit.Time) unit.Voltage {
	if t.Float64() <= p.Delay.Float64() {
		return p.V0
	}
	cycle := math.Mod(t.Float64()-p.Delay.Float64(), p.Period.Float64())
	v0, v1 := p.V0.Float64(), p.V1.Float64()
	delta := v1 - v0
	rise, fall, width := p.Rise.Float64(), p.Fall.Float64(), p.Width.Float64()
	switch {
	case cycle < 0:
		return p.V0
	case cycle < rise:
		return unit.Voltage{Value: v0 + delta*cycle/rise}
	case cycle < rise+width:
		return p.V1
	case cycle < rise+width+fall:
		return unit.Voltage{Value: v1 - delta*(cycle-rise-width)/fall}
	default:
		return p.V0
	}
}

// VoltageAt interpolates the waveform at time t linearly between the two
// bracketing points, clamping to the last point past the end.
func (p Pwl) VoltageAt(t unit.Time) unit.Voltage {
	n := len(p.Points)
	if n == 0 {
		return unit.Voltage{}
	}
	if n == 1 {
		return p.Points[0].Voltage
	}
	tq := t.Float64()
	for i := 0; i < n-1; i++ {
		t0, v0 := p.Points[i].Time.Float64(), p.Points[i].Voltage.Float64()
		t1, v1 := p.Points[i+1].Time.Float64(), p.Points[i+1].Voltage.Float64()
		if t0 <= tq && tq <= t1 {
			ratio := (tq - t0) / (t1 - t0)
			return unit.Voltage{Value: v0 + ratio*(v1-v0)}
		}
	}
	return p.Points[n-1].Voltage
}
