package lef

import (
	"fmt"
	"os"
	"strings"

	"github.com/MoleSir/reda/pkg/parse"
)

// ParseFile reads a technology LEF file and parses it.
func ParseFile(path string) (*TechLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse parses a whole technology library. The parse either fully succeeds
// or fails with a line-numbered diagnostic; no partial library is returned.
func Parse(full string) (*TechLibrary, error) {
	lib, rest, perr := techLibrary(full)
	if perr != nil {
		return nil, fmt.Errorf("error at line %d:\n%s%w",
			parse.Line(full, perr.Rest()), parse.Render(full, perr), perr)
	}
	if tail := ws(rest); tail != "" {
		return nil, fmt.Errorf("at line %d: unexpected input: %s",
			parse.Line(full, tail), parse.Preview(tail))
	}
	return lib, nil
}

// techLibrary is the fixed header sequence followed by any number of LAYER
// blocks. The header statements are mandatory and ordered, so every failure
// here is final.
func techLibrary(input string) (*TechLibrary, string, *parse.Error) {
	lib := &TechLibrary{}
	rest := input
	var err *parse.Error
	if lib.Version, rest, err = version(rest); err != nil {
		return nil, input, parse.Promote(err)
	}
	if lib.BusBitChars, rest, err = busBitChars(rest); err != nil {
		return nil, input, parse.Promote(err)
	}
	if lib.DividerChar, rest, err = dividerChar(rest); err != nil {
		return nil, input, parse.Promote(err)
	}
	if lib.Units, rest, err = unitsBlock(rest); err != nil {
		return nil, input, parse.Promote(err)
	}
	if lib.ManufacturingGrid, rest, err = floatClause(rest, "MANUFACTURINGGRID"); err != nil {
		return nil, input, err
	}
	if lib.UseMinSpacing, rest, err = useMinSpacing(rest); err != nil {
		return nil, input, err
	}
	for {
		l, r, lerr := layer(rest)
		if lerr != nil {
			if lerr.Fatal() {
				return nil, input, lerr
			}
			break
		}
		lib.Layers = append(lib.Layers, l)
		rest = r
	}
	return lib, rest, nil
}

func version(input string) (float64, string, *parse.Error) {
	rest, err := lit(input, "VERSION")
	if err != nil {
		return 0, input, err
	}
	v, rest, verr := float(rest)
	if verr != nil {
		return 0, input, parse.Promote(verr).Push(input, "VERSION")
	}
	rest, err = lit(rest, ";")
	if err != nil {
		return 0, input, parse.Promote(err).Push(input, "VERSION")
	}
	return v, rest, nil
}

func busBitChars(input string) (string, string, *parse.Error) {
	rest, err := lit(input, "BUSBITCHARS")
	if err != nil {
		return "", input, err
	}
	v, after, qerr := qstring(rest)
	if qerr != nil {
		return "", input, parse.Promote(qerr).Push(input, "BUSBITCHARS")
	}
	switch v {
	case "[]", "{}", "<>":
	default:
		return "", input, parse.Fail(ws(rest), "bus bit chars")
	}
	after, err = lit(after, ";")
	if err != nil {
		return "", input, parse.Promote(err).Push(input, "BUSBITCHARS")
	}
	return v, after, nil
}

func dividerChar(input string) (string, string, *parse.Error) {
	rest, err := lit(input, "DIVIDERCHAR")
	if err != nil {
		return "", input, err
	}
	v, after, qerr := qstring(rest)
	if qerr != nil {
		return "", input, parse.Promote(qerr).Push(input, "DIVIDERCHAR")
	}
	switch v {
	case "/", `\`, "%", "$":
	default:
		return "", input, parse.Fail(ws(rest), "divider char")
	}
	after, err = lit(after, ";")
	if err != nil {
		return "", input, parse.Promote(err).Push(input, "DIVIDERCHAR")
	}
	return v, after, nil
}

// unitsBlock accepts only the DATABASE MICRONS clause inside UNITS.
func unitsBlock(input string) (Units, string, *parse.Error) {
	var u Units
	rest, err := lit(input, "UNITS")
	if err != nil {
		return u, input, err
	}
	for _, tok := range []string{"DATABASE", "MICRONS"} {
		if rest, err = lit(rest, tok); err != nil {
			return u, input, parse.Promote(err).Push(input, "UNITS")
		}
	}
	n, rest, uerr := unsignedInt(rest)
	if uerr != nil {
		return u, input, parse.Promote(uerr).Push(input, "UNITS")
	}
	for _, tok := range []string{";", "END", "UNITS"} {
		if rest, err = lit(rest, tok); err != nil {
			return u, input, parse.Promote(err).Push(input, "UNITS")
		}
	}
	u.DatabaseMicrons = &n
	return u, rest, nil
}

func useMinSpacing(input string) (*UseMinSpacing, string, *parse.Error) {
	rest, err := lit(input, "USEMINSPACING")
	if err != nil {
		return nil, input, nil
	}
	// TODO: map OFF to MinSpacingOff; both values read back as On today.
	v := MinSpacingOn
	if r, e := lit(rest, "ON"); e == nil {
		rest = r
	} else if r, e := lit(rest, "OFF"); e == nil {
		rest = r
	} else {
		return nil, input, parse.Fail(ws(rest), "ON or OFF")
	}
	rest, err = lit(rest, ";")
	if err != nil {
		return nil, input, parse.Promote(err).Push(input, "USEMINSPACING")
	}
	return &v, rest, nil
}

// floatClause reads an optional `<keyword> <float> ;` statement, returning
// nil without consuming input when the keyword is absent.
func floatClause(input, keyword string) (*float64, string, *parse.Error) {
	rest, err := lit(input, keyword)
	if err != nil {
		return nil, input, nil
	}
	v, rest, ferr := float(rest)
	if ferr != nil {
		return nil, input, parse.Promote(ferr).Push(input, keyword)
	}
	rest, err = lit(rest, ";")
	if err != nil {
		return nil, input, parse.Promote(err).Push(input, keyword)
	}
	return &v, rest, nil
}

// maskClause reads an optional `MASK <uint> ;` statement.
func maskClause(input string) (*uint32, string, *parse.Error) {
	rest, err := lit(input, "MASK")
	if err != nil {
		return nil, input, nil
	}
	n, rest, uerr := unsignedInt(rest)
	if uerr != nil {
		return nil, input, parse.Promote(uerr).Push(input, "MASK")
	}
	rest, err = lit(rest, ";")
	if err != nil {
		return nil, input, parse.Promote(err).Push(input, "MASK")
	}
	return &n, rest, nil
}

// blockEnd reads `END <name>` and checks the name against the block opener.
// A mismatch is always fatal; nothing backtracks out of a block end.
func blockEnd(input, name string) (string, *parse.Error) {
	rest, err := lit(input, "END")
	if err != nil {
		return input, parse.Promote(err).Push(input, "block end")
	}
	got, rest, ierr := identifier(rest)
	if ierr != nil {
		return input, parse.Promote(ierr).Push(input, "block end")
	}
	if got != name {
		return input, parse.Fail(ws(input), "un match end name")
	}
	return rest, nil
}

// layer reads one `LAYER <name> TYPE <type> ;` header and dispatches on the
// type token. The token is compared case-sensitively; anything outside the
// five known kinds is fatal.
func layer(input string) (Layer, string, *parse.Error) {
	rest, err := lit(input, "LAYER")
	if err != nil {
		return nil, input, err
	}
	name, rest, ierr := identifier(rest)
	if ierr != nil {
		return nil, input, parse.Promote(ierr).Push(input, "layer name")
	}
	if rest, err = lit(rest, "TYPE"); err != nil {
		return nil, input, parse.Promote(err).Push(input, "layer")
	}
	typ, rest, ierr := identifier(rest)
	if ierr != nil {
		return nil, input, parse.Promote(ierr).Push(input, "layer type")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return nil, input, parse.Promote(err).Push(input, "layer")
	}

	var l Layer
	var body *parse.Error
	switch typ {
	case "CUT":
		l, rest, body = cutLayer(rest, name)
	case "IMPLANT":
		l, rest, body = implantLayer(rest, name)
	case "ROUTING":
		l, rest, body = routingLayer(rest, name)
	case "MASTERSLICE":
		l, rest, body = specialLayer(rest, name, true)
	case "OVERLAP":
		l, rest, body = specialLayer(rest, name, false)
	default:
		return nil, input, parse.Fail(rest, "layer type")
	}
	if body != nil {
		return nil, input, parse.Promote(body).Push(input, "layer "+name)
	}
	return l, rest, nil
}

func cutLayer(input, name string) (Layer, string, *parse.Error) {
	l := &CutLayer{Name: name}
	rest := input
	var err *parse.Error
	if l.Mask, rest, err = maskClause(rest); err != nil {
		return nil, input, err
	}
	for {
		s, r, serr := cutSpacing(rest)
		if serr != nil {
			if serr.Fatal() {
				return nil, input, serr
			}
			break
		}
		l.Spacing = append(l.Spacing, s)
		rest = r
	}
	if l.Width, rest, err = floatClause(rest, "WIDTH"); err != nil {
		return nil, input, err
	}
	for {
		e, r, eerr := enclosure(rest)
		if eerr != nil {
			if eerr.Fatal() {
				return nil, input, eerr
			}
			break
		}
		l.Enclosures = append(l.Enclosures, e)
		rest = r
	}
	rest, err = blockEnd(rest, name)
	if err != nil {
		return nil, input, err
	}
	return l, rest, nil
}

func cutSpacing(input string) (CutSpacing, string, *parse.Error) {
	var s CutSpacing
	rest, err := lit(input, "SPACING")
	if err != nil {
		return s, input, err
	}
	var ferr *parse.Error
	if s.CutSpacing, rest, ferr = float(rest); ferr != nil {
		return s, input, parse.Promote(ferr).Push(input, "cut spacing")
	}
	if r, e := lit(rest, "CENTERTOCENTER"); e == nil {
		s.CenterToCenter = true
		rest = r
	}
	if r, e := lit(rest, "SAMENET"); e == nil {
		s.SameNet = true
		rest = r
	}
	if s.Constraint, rest, err = cutSpacingConstraint(rest); err != nil {
		return s, input, err.Push(input, "cut spacing")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return s, input, parse.Promote(err).Push(input, "cut spacing")
	}
	return s, rest, nil
}

// cutSpacingConstraint reads the optional tail of a cut SPACING clause.
// Absence of every alternative is not an error.
func cutSpacingConstraint(input string) (CutSpacingConstraint, string, *parse.Error) {
	if rest, e := lit(input, "LAYER"); e == nil {
		name, rest, ierr := identifier(rest)
		if ierr != nil {
			return nil, input, parse.Promote(ierr).Push(input, "spacing layer")
		}
		c := SpacingLayer{Name: name}
		if r, e2 := lit(rest, "STACK"); e2 == nil {
			c.Stack = true
			rest = r
		}
		return c, rest, nil
	}
	if rest, e := lit(input, "ADJACENTCUTS"); e == nil {
		n, rest, uerr := unsignedInt(rest)
		if uerr != nil {
			return nil, input, parse.Promote(uerr).Push(input, "cut count")
		}
		if n > 0xFF {
			return nil, input, parse.Fail(ws(input), "cut count")
		}
		var err *parse.Error
		if rest, err = lit(rest, "WITHIN"); err != nil {
			return nil, input, parse.Promote(err).Push(input, "ADJACENTCUTS")
		}
		w, rest, ferr := float(rest)
		if ferr != nil {
			return nil, input, parse.Promote(ferr).Push(input, "within")
		}
		c := SpacingAdjacentCuts{Count: uint8(n), Within: w}
		if r, e2 := lit(rest, "EXCEPTSAMEPGNET"); e2 == nil {
			c.ExceptSamePGNet = true
			rest = r
		}
		return c, rest, nil
	}
	if rest, e := lit(input, "PARALLELOVERLAP"); e == nil {
		return SpacingParallelOverlap{}, rest, nil
	}
	if rest, e := lit(input, "AREA"); e == nil {
		a, rest, ferr := float(rest)
		if ferr != nil {
			return nil, input, parse.Promote(ferr).Push(input, "spacing area")
		}
		return SpacingArea{Area: a}, rest, nil
	}
	return nil, input, nil
}

func enclosure(input string) (Enclosure, string, *parse.Error) {
	e := Enclosure{Above: true}
	rest, err := lit(input, "ENCLOSURE")
	if err != nil {
		return e, input, err
	}
	if r, e2 := lit(rest, "ABOVE"); e2 == nil {
		rest = r
	} else if r, e2 := lit(rest, "BELOW"); e2 == nil {
		e.Above = false
		rest = r
	}
	var ferr *parse.Error
	if e.Overhang1, rest, ferr = float(rest); ferr != nil {
		return e, input, parse.Promote(ferr).Push(input, "overhang1")
	}
	if e.Overhang2, rest, ferr = float(rest); ferr != nil {
		return e, input, parse.Promote(ferr).Push(input, "overhang2")
	}
	if e.Condition, rest, err = enclosureCondition(rest); err != nil {
		return e, input, err.Push(input, "enclosure")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return e, input, parse.Promote(err).Push(input, "enclosure")
	}
	return e, rest, nil
}

func enclosureCondition(input string) (EnclosureCondition, string, *parse.Error) {
	if rest, e := lit(input, "WIDTH"); e == nil {
		w, rest, ferr := float(rest)
		if ferr != nil {
			return nil, input, parse.Promote(ferr).Push(input, "enclosure width")
		}
		c := EnclosureWidth{MinWidth: w}
		if r, e2 := lit(rest, "EXCEPTEXTRACUT"); e2 == nil {
			cut, r2, ferr2 := float(r)
			if ferr2 != nil {
				return nil, input, parse.Promote(ferr2).Push(input, "except extra cut")
			}
			c.ExceptExtraCut = &cut
			rest = r2
		}
		return c, rest, nil
	}
	if rest, e := lit(input, "LENGTH"); e == nil {
		v, rest, ferr := float(rest)
		if ferr != nil {
			return nil, input, parse.Promote(ferr).Push(input, "enclosure length")
		}
		return EnclosureLength{MinLength: v}, rest, nil
	}
	return nil, input, nil
}

func implantLayer(input, name string) (Layer, string, *parse.Error) {
	l := &ImplantLayer{Name: name}
	rest := input
	var err *parse.Error
	if l.Mask, rest, err = maskClause(rest); err != nil {
		return nil, input, err
	}
	if l.Width, rest, err = floatClause(rest, "WIDTH"); err != nil {
		return nil, input, err
	}
	for {
		s, r, serr := implantSpacing(rest)
		if serr != nil {
			if serr.Fatal() {
				return nil, input, serr
			}
			break
		}
		l.Spacings = append(l.Spacings, s)
		rest = r
	}
	for {
		p, r, perr := implantProperty(rest)
		if perr != nil {
			if perr.Fatal() {
				return nil, input, perr
			}
			break
		}
		l.Properties = append(l.Properties, p)
		rest = r
	}
	rest, err = blockEnd(rest, name)
	if err != nil {
		return nil, input, err
	}
	return l, rest, nil
}

func implantSpacing(input string) (ImplantSpacing, string, *parse.Error) {
	var s ImplantSpacing
	rest, err := lit(input, "SPACING")
	if err != nil {
		return s, input, err
	}
	var ferr *parse.Error
	if s.MinSpacing, rest, ferr = float(rest); ferr != nil {
		// Stays recoverable: property clauses reuse the SPACING keyword.
		return s, input, ferr
	}
	if r, e := lit(rest, "LAYER"); e == nil {
		name, r2, ierr := identifier(r)
		if ierr != nil {
			return s, input, parse.Promote(ierr).Push(input, "implant spacing")
		}
		s.Layer = name
		rest = r2
	}
	if rest, err = lit(rest, ";"); err != nil {
		return s, input, parse.Promote(err).Push(input, "implant spacing")
	}
	return s, rest, nil
}

// implantProperty reads a `SPACING <key> <value> ;` clause. The clause is
// documented as PROPERTY but the live keyword is SPACING.
func implantProperty(input string) (Property, string, *parse.Error) {
	var p Property
	rest, err := lit(input, "SPACING")
	if err != nil {
		return p, input, err
	}
	var ierr *parse.Error
	if p.Key, rest, ierr = identifier(rest); ierr != nil {
		return p, input, ierr
	}
	if p.Value, rest, ierr = identifier(rest); ierr != nil {
		return p, input, parse.Promote(ierr).Push(input, "implant property")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return p, input, parse.Promote(err).Push(input, "implant property")
	}
	return p, rest, nil
}

func routingLayer(input, name string) (Layer, string, *parse.Error) {
	l := &RoutingLayer{Name: name}
	rest := input
	var err *parse.Error
	if l.Mask, rest, err = maskClause(rest); err != nil {
		return nil, input, err
	}
	if rest, err = lit(rest, "DIRECTION"); err != nil {
		return nil, input, parse.Promote(err).Push(input, "routing layer")
	}
	if l.Direction, rest, err = routingDirection(rest); err != nil {
		return nil, input, err.Push(input, "routing layer")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return nil, input, parse.Promote(err).Push(input, "DIRECTION")
	}
	if l.Pitch, rest, err = pitch(rest); err != nil {
		return nil, input, parse.Promote(err).Push(input, "routing layer")
	}
	if rest, err = lit(rest, "WIDTH"); err != nil {
		return nil, input, parse.Promote(err).Push(input, "routing layer")
	}
	var ferr *parse.Error
	if l.Width, rest, ferr = float(rest); ferr != nil {
		return nil, input, parse.Promote(ferr).Push(input, "WIDTH")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return nil, input, parse.Promote(err).Push(input, "WIDTH")
	}
	if l.Area, rest, err = floatClause(rest, "AREA"); err != nil {
		return nil, input, err
	}
	for {
		s, r, serr := routingSpacing(rest)
		if serr != nil {
			if serr.Fatal() {
				return nil, input, serr
			}
			break
		}
		l.SpacingRules = append(l.SpacingRules, s)
		rest = r
	}
	if l.MaxWidth, rest, err = floatClause(rest, "MAXWIDTH"); err != nil {
		return nil, input, err
	}
	if l.MinWidth, rest, err = floatClause(rest, "MINWIDTH"); err != nil {
		return nil, input, err
	}
	rest, err = blockEnd(rest, name)
	if err != nil {
		return nil, input, err
	}
	return l, rest, nil
}

func routingDirection(input string) (RoutingDirection, string, *parse.Error) {
	for _, d := range []struct {
		tok string
		dir RoutingDirection
	}{
		{"HORIZONTAL", Horizontal},
		{"VERTICAL", Vertical},
		{"DIAG45", Diag45},
		{"DIAG135", Diag135},
	} {
		if rest, err := lit(input, d.tok); err == nil {
			return d.dir, rest, nil
		}
	}
	return Horizontal, input, parse.Fail(ws(input), "direction")
}

// pitch reads `PITCH <float> [<float>] ;`. One distance means a uniform
// pitch, two mean separate X and Y distances.
func pitch(input string) (Pitch, string, *parse.Error) {
	var p Pitch
	rest, err := lit(input, "PITCH")
	if err != nil {
		return p, input, err
	}
	x, rest, ferr := float(rest)
	if ferr != nil {
		return p, input, parse.Promote(ferr).Push(input, "PITCH")
	}
	p.X, p.Y = x, x
	if y, r, ferr2 := float(rest); ferr2 == nil {
		p.Y = y
		p.XY = true
		rest = r
	}
	if rest, err = lit(rest, ";"); err != nil {
		return p, input, parse.Promote(err).Push(input, "PITCH")
	}
	return p, rest, nil
}

// routingSpacing recognizes only the bare `SPACING <float> ;` form; the
// RANGE/LENGTHTHRESHOLD/SAMENET sub-options are not supported.
func routingSpacing(input string) (RoutingSpacing, string, *parse.Error) {
	var s RoutingSpacing
	rest, err := lit(input, "SPACING")
	if err != nil {
		return s, input, err
	}
	var ferr *parse.Error
	if s.MinSpacing, rest, ferr = float(rest); ferr != nil {
		return s, input, parse.Promote(ferr).Push(input, "SPACING")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return s, input, parse.Promote(err).Push(input, "SPACING")
	}
	return s, rest, nil
}

func specialLayer(input, name string, masterslice bool) (Layer, string, *parse.Error) {
	l := &SpecialLayer{Name: name, Masterslice: masterslice}
	rest := input
	var err *parse.Error
	if l.Mask, rest, err = maskClause(rest); err != nil {
		return nil, input, err
	}
	for {
		p, r, perr := property(rest)
		if perr != nil {
			if perr.Fatal() {
				return nil, input, perr
			}
			break
		}
		switch p.Key {
		case "LEF58_TYPE":
			// Unrecognized type strings are dropped, not errored.
			if t, ok := lef58Types[strings.ToUpper(p.Value)]; ok {
				l.Lef58Type = &t
			}
		case "LEF58_TRIMMEDMETAL":
			tm, ok := parseTrimmedMetal(p.Value)
			if !ok {
				return nil, input, parse.Fail(ws(rest), "trimmed metal")
			}
			l.Lef58Trimmed = tm
		default:
			l.Properties = append(l.Properties, p)
		}
		rest = r
	}
	rest, err = blockEnd(rest, name)
	if err != nil {
		return nil, input, err
	}
	return l, rest, nil
}

func property(input string) (Property, string, *parse.Error) {
	var p Property
	rest, err := lit(input, "PROPERTY")
	if err != nil {
		return p, input, err
	}
	var ierr *parse.Error
	if p.Key, rest, ierr = identifier(rest); ierr != nil {
		return p, input, parse.Promote(ierr).Push(input, "property")
	}
	if p.Value, rest, ierr = qstring(rest); ierr != nil {
		return p, input, parse.Promote(ierr).Push(input, "property")
	}
	if rest, err = lit(rest, ";"); err != nil {
		return p, input, parse.Promote(err).Push(input, "property")
	}
	return p, rest, nil
}

var lef58Types = map[string]Lef58Type{
	"TYPE NWELL":        NWell,
	"TYPE PWELL":        PWell,
	"TYPE ABOVEDIEEDGE": AboveDieEdge,
	"TYPE BELOWDIEEDGE": BelowDieEdge,
	"TYPE DIFFUSION":    Diffusion,
	"TYPE TRIMPOLY":     TrimPoly,
	"TYPE TRIMMETAL":    TrimMetal,
	"TYPE REGION":       Region,
}

// parseTrimmedMetal re-parses a LEF58_TRIMMEDMETAL property value:
// `TRIMMEDMETAL <layer> [MASK <uint>]`.
func parseTrimmedMetal(value string) (*Lef58TrimmedMetal, bool) {
	rest, err := lit(value, "TRIMMEDMETAL")
	if err != nil {
		return nil, false
	}
	name, rest, ierr := identifier(rest)
	if ierr != nil {
		return nil, false
	}
	tm := &Lef58TrimmedMetal{MetalLayer: name}
	if r, e := lit(rest, "MASK"); e == nil {
		n, r2, uerr := unsignedInt(r)
		if uerr != nil {
			return nil, false
		}
		tm.Mask = &n
		rest = r2
	}
	if ws(rest) != "" {
		return nil, false
	}
	return tm, true
}
