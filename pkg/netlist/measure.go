package netlist

import (
	"strings"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/parse"
)

// .MEAS <analysis> <name> <form>, where form is one of the TRIG/TARG pair,
// a statistic over a window, or FIND/WHEN.
func measureCommand(input string) (circuit.MeasureCommand, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), ".MEAS")
	if err != nil {
		return nil, input, err.Push(input, "measure_command")
	}

	analysis, rest, err := analysisType(sp(rest))
	if err != nil {
		return nil, input, parse.Promote(err).Push(rest, "analysis_type").Push(input, "measure_command")
	}
	name, rest, err := identifier(sp(rest))
	if err != nil {
		return nil, input, parse.Promote(err).Push(rest, "measure_name").Push(input, "measure_command")
	}

	if m, r, err := measureRise(rest, name, analysis); err == nil || err.Fatal() {
		if err != nil {
			return nil, input, err.Push(input, "measure_command")
		}
		return m, r, nil
	}
	if m, r, err := measureBasicStat(rest, name, analysis); err == nil || err.Fatal() {
		if err != nil {
			return nil, input, err.Push(input, "measure_command")
		}
		return m, r, nil
	}
	if m, r, err := measureFindWhen(rest, name, analysis); err == nil || err.Fatal() {
		if err != nil {
			return nil, input, err.Push(input, "measure_command")
		}
		return m, r, nil
	}
	// The keyword matched, so an unrecognized form is fatal.
	return nil, input, parse.Fail(rest, "measure form").Push(input, "measure_command")
}

// TRIG V(1) VAL=.2 RISE=1 TARG V(1) VAL=.8 RISE=1
func measureRise(input, name string, analysis circuit.AnalysisType) (circuit.MeasureRise, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), "TRIG")
	if err != nil {
		return circuit.MeasureRise{}, input, err.Push(input, "measure_rise")
	}
	trig, rest, err := trigTargCondition(sp(rest))
	if err != nil {
		return circuit.MeasureRise{}, input, parse.Promote(err).Push(rest, "trigger_condition").Push(input, "measure_rise")
	}
	rest, err = tagNoCase(sp(rest), "TARG")
	if err != nil {
		return circuit.MeasureRise{}, input, parse.Promote(err).Push(input, "measure_rise")
	}
	targ, rest, err := trigTargCondition(sp(rest))
	if err != nil {
		return circuit.MeasureRise{}, input, parse.Promote(err).Push(rest, "target_condition").Push(input, "measure_rise")
	}

	return circuit.MeasureRise{Name: name, Analysis: analysis, Trig: trig, Targ: targ}, sp(rest), nil
}

// AVG V(1) FROM=10ns TO=55ns
func measureBasicStat(input, name string, analysis circuit.AnalysisType) (circuit.MeasureBasicStat, string, *parse.Error) {
	stat, rest, err := statFunc(sp(input))
	if err != nil {
		return circuit.MeasureBasicStat{}, input, err.Push(input, "measure_basic_stat")
	}
	variable, rest, err := outputVariable(sp(rest))
	if err != nil {
		return circuit.MeasureBasicStat{}, input, parse.Promote(err).Push(rest, "variable").Push(input, "measure_basic_stat")
	}

	rest, err = tagNoCase(sp(rest), "FROM=")
	if err != nil {
		return circuit.MeasureBasicStat{}, input, parse.Promote(err).Push(input, "measure_basic_stat")
	}
	from, rest, err := timeNumber(sp(rest))
	if err != nil {
		return circuit.MeasureBasicStat{}, input, parse.Promote(err).Push(rest, "FROM value").Push(input, "measure_basic_stat")
	}
	rest, err = tagNoCase(sp(rest), "TO=")
	if err != nil {
		return circuit.MeasureBasicStat{}, input, parse.Promote(err).Push(input, "measure_basic_stat")
	}
	to, rest, err := timeNumber(sp(rest))
	if err != nil {
		return circuit.MeasureBasicStat{}, input, parse.Promote(err).Push(rest, "TO value").Push(input, "measure_basic_stat")
	}

	m := circuit.MeasureBasicStat{Name: name, Analysis: analysis, Stat: stat, Variable: variable, From: from, To: to}
	return m, sp(rest), nil
}

// FIND I(Vmeas) WHEN V(1)=1V
func measureFindWhen(input, name string, analysis circuit.AnalysisType) (circuit.MeasureFindWhen, string, *parse.Error) {
	rest, err := tagNoCase(sp(input), "FIND")
	if err != nil {
		return circuit.MeasureFindWhen{}, input, err.Push(input, "measure_find_when")
	}
	variable, rest, err := outputVariable(sp(rest))
	if err != nil {
		return circuit.MeasureFindWhen{}, input, parse.Promote(err).Push(rest, "variable").Push(input, "measure_find_when")
	}
	rest, err = tagNoCase(sp(rest), "WHEN")
	if err != nil {
		return circuit.MeasureFindWhen{}, input, parse.Promote(err).Push(input, "measure_find_when")
	}

	condVar, rest, err := outputVariable(sp(rest))
	if err != nil {
		return circuit.MeasureFindWhen{}, input, parse.Promote(err).Push(rest, "condition").Push(input, "measure_find_when")
	}
	rest, err = tagNoCase(sp(rest), "=")
	if err != nil {
		return circuit.MeasureFindWhen{}, input, parse.Promote(err).Push(rest, "condition").Push(input, "measure_find_when")
	}
	value, rest, err := number(sp(rest))
	if err != nil {
		return circuit.MeasureFindWhen{}, input, parse.Promote(err).Push(rest, "condition").Push(input, "measure_find_when")
	}

	m := circuit.MeasureFindWhen{
		Name:     name,
		Analysis: analysis,
		Variable: variable,
		When:     circuit.FindWhenCondition{Variable: condVar, Value: value},
	}
	return m, sp(rest), nil
}

// V(1) VAL=.2 RISE=1
func trigTargCondition(input string) (circuit.TrigTarg, string, *parse.Error) {
	variable, rest, err := outputVariable(sp(input))
	if err != nil {
		return circuit.TrigTarg{}, input, err
	}
	rest, err = tagNoCase(sp(rest), "VAL=")
	if err != nil {
		return circuit.TrigTarg{}, input, err
	}
	value, rest, err := number(sp(rest))
	if err != nil {
		return circuit.TrigTarg{}, input, err
	}

	var edge circuit.EdgeType
	rest = sp(rest)
	switch {
	case tryTag(&rest, "RISE"):
		edge = circuit.EdgeRise
	case tryTag(&rest, "FALL"):
		edge = circuit.EdgeFall
	default:
		return circuit.TrigTarg{}, input, parse.NoMatch(rest, "RISE or FALL")
	}
	rest, err = tagNoCase(sp(rest), "=")
	if err != nil {
		return circuit.TrigTarg{}, input, err
	}
	num, rest, err := unsignedInt(sp(rest))
	if err != nil {
		return circuit.TrigTarg{}, input, err
	}

	c := circuit.TrigTarg{Variable: variable, Value: value, Edge: edge, Number: int(num)}
	return c, sp(rest), nil
}

var statFuncs = []struct {
	tag  string
	stat circuit.StatFunc
}{
	{"AVG", circuit.StatAvg},
	{"RMS", circuit.StatRms},
	{"MIN", circuit.StatMin},
	{"MAX", circuit.StatMax},
	{"PP", circuit.StatPp},
	{"DERIV", circuit.StatDeriv},
	{"INTEGRATE", circuit.StatIntegrate},
}

func statFunc(input string) (circuit.StatFunc, string, *parse.Error) {
	for _, f := range statFuncs {
		if rest, ok := foldPrefix(input, f.tag); ok {
			return f.stat, rest, nil
		}
	}
	return 0, input, parse.NoMatch(input, "stat_function")
}

// outputVariable: V(...) or I(...). The text between the parentheses is kept
// verbatim; the complex-component suffix is sniffed off its trailing letters.
// The check order M, DB, P, R, I is fixed: changing it would misclassify
// names where the checks overlap.
func outputVariable(input string) (circuit.OutputVariable, string, *parse.Error) {
	var kind circuit.OutputKind
	rest := sp(input)
	switch {
	case tryTag(&rest, "V"):
		kind = circuit.VoltageVar
	case tryTag(&rest, "I"):
		kind = circuit.CurrentVar
	default:
		return circuit.OutputVariable{}, input, parse.NoMatch(input, "output_variable")
	}

	rest, err := tagNoCase(sp(rest), "(")
	if err != nil {
		return circuit.OutputVariable{}, input, err
	}
	inner, after, found := strings.Cut(rest, ")")
	if !found {
		return circuit.OutputVariable{}, input, parse.NoMatch(rest, "output_variable")
	}
	rest = after

	var suffix circuit.OutputSuffix
	switch {
	case strings.HasSuffix(inner, "M"):
		suffix = circuit.Magnitude
	case strings.HasSuffix(inner, "DB"):
		suffix = circuit.Decibel
	case strings.HasSuffix(inner, "P"):
		suffix = circuit.Phase
	case strings.HasSuffix(inner, "R"):
		suffix = circuit.Real
	case strings.HasSuffix(inner, "I"):
		suffix = circuit.Imag
	default:
		suffix = circuit.NoSuffix
	}

	v := circuit.OutputVariable{Kind: kind, Suffix: suffix}
	if kind == circuit.VoltageVar {
		node1, node2, pair := strings.Cut(inner, ",")
		v.Node1 = strings.TrimSpace(node1)
		if pair {
			v.Node2 = strings.TrimSpace(node2)
		}
	} else {
		v.Element = inner
	}
	return v, sp(rest), nil
}

var analysisTypes = []struct {
	tag      string
	analysis circuit.AnalysisType
}{
	{"TRAN", circuit.AnalysisTran},
	{"AC", circuit.AnalysisAc},
	{"DC", circuit.AnalysisDc},
}

func analysisType(input string) (circuit.AnalysisType, string, *parse.Error) {
	for _, a := range analysisTypes {
		if rest, ok := foldPrefix(input, a.tag); ok {
			return a.analysis, rest, nil
		}
	}
	return 0, input, parse.NoMatch(input, "analysis type")
}
