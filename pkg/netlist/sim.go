package netlist

import (
	"strings"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/parse"
)

func simCommand(input string) (circuit.SimCommand, string, *parse.Error) {
	if c, rest, err := dcCommand(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := acCommand(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	if c, rest, err := tranCommand(input); err == nil || err.Fatal() {
		return c, rest, err
	}
	return nil, input, parse.NoMatch(input, "sim_command")
}

// .DC SRCname START STOP STEP
func dcCommand(input string) (circuit.DcCommand, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), ".DC")
	if err != nil {
		return circuit.DcCommand{}, input, err.Push(input, "dc_command")
	}

	srcName, rest, err := identifier(sp(rest))
	if err != nil {
		return circuit.DcCommand{}, input, parse.Promote(err).Push(rest, "source_name").Push(input, "dc_command")
	}
	start, rest, err := voltageNumber(sp(rest))
	if err != nil {
		return circuit.DcCommand{}, input, parse.Promote(err).Push(rest, "start_value").Push(input, "dc_command")
	}
	stop, rest, err := voltageNumber(sp(rest))
	if err != nil {
		return circuit.DcCommand{}, input, parse.Promote(err).Push(rest, "stop_value").Push(input, "dc_command")
	}
	step, rest, err := voltageNumber(sp(rest))
	if err != nil {
		return circuit.DcCommand{}, input, parse.Promote(err).Push(rest, "step_value").Push(input, "dc_command")
	}

	return circuit.DcCommand{SrcName: srcName, Start: start, Stop: stop, Step: step}, sp(rest), nil
}

// .AC LIN|DEC|OCT NP FSTART FSTOP
func acCommand(input string) (circuit.AcCommand, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), ".AC")
	if err != nil {
		return circuit.AcCommand{}, input, err.Push(input, "ac_command")
	}

	var sweep circuit.AcSweep
	rest = sp(rest)
	switch {
	case tryTag(&rest, "LIN"):
		sweep = circuit.SweepLin
	case tryTag(&rest, "DEC"):
		sweep = circuit.SweepDec
	case tryTag(&rest, "OCT"):
		sweep = circuit.SweepOct
	default:
		return circuit.AcCommand{}, input, parse.Fail(rest, "sweep_type").Push(input, "ac_command")
	}

	points, rest, err := unsignedInt(sp(rest))
	if err != nil {
		return circuit.AcCommand{}, input, parse.Promote(err).Push(rest, "points").Push(input, "ac_command")
	}
	fStart, rest, err := frequencyNumber(sp(rest))
	if err != nil {
		return circuit.AcCommand{}, input, parse.Promote(err).Push(rest, "f_start").Push(input, "ac_command")
	}
	fStop, rest, err := frequencyNumber(sp(rest))
	if err != nil {
		return circuit.AcCommand{}, input, parse.Promote(err).Push(rest, "f_stop").Push(input, "ac_command")
	}

	return circuit.AcCommand{Sweep: sweep, Points: int(points), FStart: fStart, FStop: fStop}, sp(rest), nil
}

// tryTag consumes tag case-insensitively, advancing *rest on a match.
func tryTag(rest *string, tag string) bool {
	r, err := tagNoCase(*rest, tag)
	if err != nil {
		return false
	}
	*rest = r
	return true
}

// .TRAN TSTEP TSTOP <TSTART <TMAX>> <UIC>
func tranCommand(input string) (circuit.TranCommand, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), ".TRAN")
	if err != nil {
		return circuit.TranCommand{}, input, err.Push(input, "tran_command")
	}

	step, rest, err := timeNumber(sp(rest))
	if err != nil {
		return circuit.TranCommand{}, input, parse.Promote(err).Push(rest, "t_step").Push(input, "tran_command")
	}
	stop, rest, err := timeNumber(sp(rest))
	if err != nil {
		return circuit.TranCommand{}, input, parse.Promote(err).Push(rest, "t_stop").Push(input, "tran_command")
	}

	cmd := circuit.TranCommand{Step: step, Stop: stop}
	if v, r, err := timeNumber(sp(rest)); err == nil {
		cmd.Start = &v
		rest = r
		if v, r, err := timeNumber(sp(rest)); err == nil {
			cmd.Max = &v
			rest = r
		}
	}

	// A trailing word must be UIC; anything else is malformed, not a new
	// statement.
	if flag, r, err := identifier(sp(rest)); err == nil {
		if !strings.EqualFold(flag, "UIC") {
			return circuit.TranCommand{}, input, parse.Fail(r, "expected UIC or end of line").Push(input, "tran_command")
		}
		cmd.UIC = true
		rest = r
	}

	return cmd, sp(rest), nil
}
