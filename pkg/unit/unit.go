// Package unit provides the numeric currency of the SPICE and LEF parsers:
// a float magnitude paired with a decimal scale suffix, plus thin quantity
// types (Voltage, Time, ...) so values of different physical kinds do not mix
// silently. The suffix is kept as parsed so a value can be printed back
// exactly as it appeared in the source.
package unit

import (
	"math"
	"strconv"
)

// Suffix is a decimal order-of-magnitude marker (k, m, u, ...).
type Suffix int

const (
	None Suffix = iota
	Mega
	Kilo
	Milli
	Micro
	Nano
	Pico
)

// Scale returns the multiplier the suffix applies to a magnitude.
func (s Suffix) Scale() float64 {
	switch s {
	case Mega:
		return 1e6
	case Kilo:
		return 1e3
	case Milli:
		return 1e-3
	case Micro:
		return 1e-6
	case Nano:
		return 1e-9
	case Pico:
		return 1e-12
	default:
		return 1
	}
}

// String renders the SPICE spelling of the suffix. Mega is spelled "Meg"
// because a bare "M" reads back as milli.
func (s Suffix) String() string {
	switch s {
	case Mega:
		return "Meg"
	case Kilo:
		return "k"
	case Milli:
		return "m"
	case Micro:
		return "u"
	case Nano:
		return "n"
	case Pico:
		return "p"
	default:
		return ""
	}
}

// Number is a magnitude with its scale suffix, e.g. {1.5, Kilo} for "1.5k".
type Number struct {
	Value  float64
	Suffix Suffix
}

// N builds a Number from a magnitude and suffix.
func N(value float64, suffix Suffix) Number {
	return Number{Value: value, Suffix: suffix}
}

// Num builds an unscaled Number.
func Num(value float64) Number {
	return Number{Value: value}
}

// Float64 collapses the number to a plain float in base units.
func (n Number) Float64() float64 {
	return n.Value * n.Suffix.Scale()
}

func (n Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64) + n.Suffix.String()
}

// Add returns the sum in base units, with no suffix.
func (n Number) Add(o Number) Number {
	return Number{Value: n.Float64() + o.Float64()}
}

// Sub returns the difference in base units, with no suffix.
func (n Number) Sub(o Number) Number {
	return Number{Value: n.Float64() - o.Float64()}
}

// Mul scales the magnitude, keeping the suffix.
func (n Number) Mul(k float64) Number {
	return Number{Value: n.Value * k, Suffix: n.Suffix}
}

// Div returns the dimensionless ratio of the two values.
func (n Number) Div(o Number) float64 {
	return n.Float64() / o.Float64()
}

// Cmp compares in base units: -1, 0 or 1.
func (n Number) Cmp(o Number) int {
	a, b := n.Float64(), o.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Close reports whether the two values agree in base units within eps.
func (n Number) Close(o Number, eps float64) bool {
	return math.Abs(n.Float64()-o.Float64()) <= eps
}

// Quantity types. Each is a distinct type over Number so a Time cannot be
// handed where a Voltage is expected; String appends the unit letter the
// netlist lexer recognizes, so re-emitted values parse back losslessly.
// Resistance, Frequency, Angle and Length print bare (the lexer accepts no
// trailing letter for them that is also safe to emit).
type (
	Voltage     Number
	Current     Number
	Resistance  Number
	Capacitance Number
	Inductance  Number
	Time        Number
	Frequency   Number
	Angle       Number
	Length      Number
)

func (v Voltage) Float64() float64     { return Number(v).Float64() }
func (c Current) Float64() float64     { return Number(c).Float64() }
func (r Resistance) Float64() float64  { return Number(r).Float64() }
func (c Capacitance) Float64() float64 { return Number(c).Float64() }
func (l Inductance) Float64() float64  { return Number(l).Float64() }
func (t Time) Float64() float64        { return Number(t).Float64() }
func (f Frequency) Float64() float64   { return Number(f).Float64() }
func (a Angle) Float64() float64       { return Number(a).Float64() }
func (l Length) Float64() float64      { return Number(l).Float64() }

func (v Voltage) String() string     { return Number(v).String() + "V" }
func (c Current) String() string     { return Number(c).String() + "A" }
func (r Resistance) String() string  { return Number(r).String() }
func (c Capacitance) String() string { return Number(c).String() + "F" }
func (l Inductance) String() string  { return Number(l).String() + "H" }
func (t Time) String() string        { return Number(t).String() + "s" }
func (f Frequency) String() string   { return Number(f).String() }
func (a Angle) String() string       { return Number(a).String() }
func (l Length) String() string      { return Number(l).String() }
