package circuit

import (
	"fmt"

	"github.com/MoleSir/reda/pkg/unit"
)

type AnalysisType int

const (
	AnalysisTran AnalysisType = iota
	AnalysisAc
	AnalysisDc
)

func (a AnalysisType) String() string {
	switch a {
	case AnalysisAc:
		return "AC"
	case AnalysisDc:
		return "DC"
	default:
		return "TRAN"
	}
}

// OutputKind tells a voltage probe V(n1[,n2]) from a current probe I(elem).
type OutputKind int

const (
	VoltageVar OutputKind = iota
	CurrentVar
)

// OutputSuffix marks which complex component of the probe is requested. It is
// sniffed from the trailing letters of the probe text, which is otherwise
// kept verbatim.
type OutputSuffix int

const (
	NoSuffix OutputSuffix = iota
	Magnitude
	Decibel
	Phase
	Real
	Imag
)

// OutputVariable names a probed quantity. Node2 is empty for ground-referenced
// voltages; Element is set only for current probes.
type OutputVariable struct {
	Kind    OutputKind
	Node1   string
	Node2   string
	Element string
	Suffix  OutputSuffix
}

func (v OutputVariable) Spice() string {
	if v.Kind == CurrentVar {
		return fmt.Sprintf("I(%s)", v.Element)
	}
	if v.Node2 != "" {
		return fmt.Sprintf("V(%s,%s)", v.Node1, v.Node2)
	}
	return fmt.Sprintf("V(%s)", v.Node1)
}

type EdgeType int

const (
	EdgeRise EdgeType = iota
	EdgeFall
)

func (e EdgeType) String() string {
	if e == EdgeFall {
		return "FALL"
	}
	return "RISE"
}

// TrigTarg is one side of a .MEAS TRIG/TARG pair: cross value on the n-th
// rising or falling edge.
type TrigTarg struct {
	Variable OutputVariable
	Value    unit.Number
	Edge     EdgeType
	Number   int
}

func (c TrigTarg) Spice() string {
	return fmt.Sprintf("%s VAL=%s %s=%d", c.Variable.Spice(), c.Value, c.Edge, c.Number)
}

type StatFunc int

const (
	StatAvg StatFunc = iota
	StatRms
	StatMin
	StatMax
	StatPp
	StatDeriv
	StatIntegrate
)

func (f StatFunc) String() string {
	switch f {
	case StatRms:
		return "RMS"
	case StatMin:
		return "MIN"
	case StatMax:
		return "MAX"
	case StatPp:
		return "PP"
	case StatDeriv:
		return "DERIV"
	case StatIntegrate:
		return "INTEGRATE"
	default:
		return "AVG"
	}
}

// MeasureCommand is one .MEAS line.
type MeasureCommand interface {
	MeasureName() string
	Spice() string
}

// MeasureRise measures the distance between a trigger and a target crossing.
type MeasureRise struct {
	Name     string
	Analysis AnalysisType
	Trig     TrigTarg
	Targ     TrigTarg
}

// MeasureBasicStat applies a statistic to a variable over a time window.
type MeasureBasicStat struct {
	Name     string
	Analysis AnalysisType
	Stat     StatFunc
	Variable OutputVariable
	From     unit.Time
	To       unit.Time
}

// MeasureFindWhen samples one variable at the moment another crosses a value.
type MeasureFindWhen struct {
	Name     string
	Analysis AnalysisType
	Variable OutputVariable
	When     FindWhenCondition
}

type FindWhenCondition struct {
	Variable OutputVariable
	Value    unit.Number
}

func (m MeasureRise) MeasureName() string      { return m.Name }
func (m MeasureBasicStat) MeasureName() string { return m.Name }
func (m MeasureFindWhen) MeasureName() string  { return m.Name }

func (m MeasureRise) Spice() string {
	return fmt.Sprintf(".MEAS %s %s TRIG %s TARG %s", m.Analysis, m.Name, m.Trig.Spice(), m.Targ.Spice())
}

func (m MeasureBasicStat) Spice() string {
	return fmt.Sprintf(".MEAS %s %s %s %s FROM=%s TO=%s",
		m.Analysis, m.Name, m.Stat, m.Variable.Spice(), m.From, m.To)
}

func (m MeasureFindWhen) Spice() string {
	return fmt.Sprintf(".MEAS %s %s FIND %s WHEN %s=%s",
		m.Analysis, m.Name, m.Variable.Spice(), m.When.Variable.Spice(), m.When.Value)
}
