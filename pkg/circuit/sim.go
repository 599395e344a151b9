package circuit

import (
	"fmt"
	"strings"

	"github.com/MoleSir/reda/pkg/unit"
)

// SimCommand is one simulation-control line: .DC, .AC or .TRAN.
type SimCommand interface {
	Spice() string
}

// DcCommand sweeps the named source. The source name is kept textual and is
// not resolved against the netlist.
type DcCommand struct {
	SrcName string
	Start   unit.Voltage
	Stop    unit.Voltage
	Step    unit.Voltage
}

type AcSweep int

const (
	SweepLin AcSweep = iota
	SweepDec
	SweepOct
)

func (s AcSweep) String() string {
	switch s {
	case SweepDec:
		return "DEC"
	case SweepOct:
		return "OCT"
	default:
		return "LIN"
	}
}

type AcCommand struct {
	Sweep  AcSweep
	Points int
	FStart unit.Frequency
	FStop  unit.Frequency
}

// TranCommand holds .TRAN parameters; Start and Max are nil when absent.
type TranCommand struct {
	Step  unit.Time
	Stop  unit.Time
	Start *unit.Time
	Max   *unit.Time
	UIC   bool
}

func (d DcCommand) Spice() string {
	return fmt.Sprintf(".DC %s %s %s %s", d.SrcName, d.Start, d.Stop, d.Step)
}

func (a AcCommand) Spice() string {
	return fmt.Sprintf(".AC %s %d %s %s", a.Sweep, a.Points, a.FStart, a.FStop)
}

func (t TranCommand) Spice() string {
	var b strings.Builder
	fmt.Fprintf(&b, ".TRAN %s %s", t.Step, t.Stop)
	if t.Start != nil {
		fmt.Fprintf(&b, " %s", *t.Start)
		if t.Max != nil {
			fmt.Fprintf(&b, " %s", *t.Max)
		}
	}
	if t.UIC {
		b.WriteString(" UIC")
	}
	return b.String()
}

// LinearSweep builds a .AC LIN command.
func LinearSweep(points int, fStart, fStop unit.Frequency) AcCommand {
	return AcCommand{Sweep: SweepLin, Points: points, FStart: fStart, FStop: fStop}
}

// DecadeSweep builds a .AC DEC command.
func DecadeSweep(points int, fStart, fStop unit.Frequency) AcCommand {
	return AcCommand{Sweep: SweepDec, Points: points, FStart: fStart, FStop: fStop}
}
