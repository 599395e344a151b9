// Package lef parses LEF technology libraries: the header statements
// (VERSION, BUSBITCHARS, DIVIDERCHAR, UNITS, MANUFACTURINGGRID,
// USEMINSPACING) followed by LAYER blocks. Unlike SPICE the grammar is not
// line sensitive; all whitespace is insignificant.
package lef

// TechLibrary is the parsed form of one technology LEF file.
type TechLibrary struct {
	Version           float64
	BusBitChars       string
	DividerChar       string
	Units             Units
	ManufacturingGrid *float64
	UseMinSpacing     *UseMinSpacing
	Layers            []Layer
}

// Units holds the UNITS block. Only DATABASE MICRONS is populated by the
// grammar; the remaining factors exist for libraries that carry them.
type Units struct {
	Time            *float64
	Capacitance     *float64
	Resistance      *float64
	Power           *float64
	Current         *float64
	Voltage         *float64
	DatabaseMicrons *uint32
	Frequency       *float64
}

type UseMinSpacing int

const (
	MinSpacingOn UseMinSpacing = iota
	MinSpacingOff
)

// Layer is one LAYER...END block, dispatched on its TYPE token.
type Layer interface {
	LayerName() string
	// LayerType returns the TYPE token of the block: CUT, IMPLANT, ROUTING,
	// MASTERSLICE or OVERLAP.
	LayerType() string
}

// ===========================

type CutLayer struct {
	Name       string
	Mask       *uint32
	Width      *float64
	Spacing    []CutSpacing
	Enclosures []Enclosure
}

func (l *CutLayer) LayerName() string { return l.Name }
func (l *CutLayer) LayerType() string { return "CUT" }

type CutSpacing struct {
	CutSpacing     float64
	CenterToCenter bool
	SameNet        bool
	Constraint     CutSpacingConstraint // nil when absent
}

// CutSpacingConstraint is the optional tail of a cut SPACING clause.
type CutSpacingConstraint interface {
	cutSpacingConstraint()
}

type SpacingLayer struct {
	Name  string
	Stack bool
}

type SpacingAdjacentCuts struct {
	Count           uint8
	Within          float64
	ExceptSamePGNet bool
}

type SpacingParallelOverlap struct{}

type SpacingArea struct {
	Area float64
}

func (SpacingLayer) cutSpacingConstraint()           {}
func (SpacingAdjacentCuts) cutSpacingConstraint()    {}
func (SpacingParallelOverlap) cutSpacingConstraint() {}
func (SpacingArea) cutSpacingConstraint()            {}

type Enclosure struct {
	Above     bool
	Overhang1 float64
	Overhang2 float64
	Condition EnclosureCondition // nil when absent
}

type EnclosureCondition interface {
	enclosureCondition()
}

type EnclosureWidth struct {
	MinWidth       float64
	ExceptExtraCut *float64
}

type EnclosureLength struct {
	MinLength float64
}

func (EnclosureWidth) enclosureCondition()  {}
func (EnclosureLength) enclosureCondition() {}

// ===========================

type ImplantLayer struct {
	Name       string
	Mask       *uint32
	Width      *float64
	Spacings   []ImplantSpacing
	Properties []Property
}

func (l *ImplantLayer) LayerName() string { return l.Name }
func (l *ImplantLayer) LayerType() string { return "IMPLANT" }

type ImplantSpacing struct {
	MinSpacing float64
	Layer      string // empty when absent
}

type Property struct {
	Key   string
	Value string
}

// ===========================

type RoutingLayer struct {
	Name         string
	Mask         *uint32
	Direction    RoutingDirection
	Pitch        Pitch
	Width        float64
	Area         *float64
	SpacingRules []RoutingSpacing
	MaxWidth     *float64
	MinWidth     *float64
}

func (l *RoutingLayer) LayerName() string { return l.Name }
func (l *RoutingLayer) LayerType() string { return "ROUTING" }

type RoutingDirection int

const (
	Horizontal RoutingDirection = iota
	Vertical
	Diag45
	Diag135
)

func (d RoutingDirection) String() string {
	switch d {
	case Vertical:
		return "VERTICAL"
	case Diag45:
		return "DIAG45"
	case Diag135:
		return "DIAG135"
	}
	return "HORIZONTAL"
}

// Pitch is either uniform or split into X and Y distances.
type Pitch struct {
	X float64
	Y float64
	// XY is false for a uniform pitch, in which case X holds the distance
	// and Y mirrors it.
	XY bool
}

type RoutingSpacing struct {
	MinSpacing float64
}

// ===========================

// SpecialLayer covers the MASTERSLICE and OVERLAP block kinds, which share
// one body grammar.
type SpecialLayer struct {
	Name         string
	Masterslice  bool
	Mask         *uint32
	Properties   []Property
	Lef58Type    *Lef58Type
	Lef58Trimmed *Lef58TrimmedMetal
}

func (l *SpecialLayer) LayerName() string { return l.Name }

func (l *SpecialLayer) LayerType() string {
	if l.Masterslice {
		return "MASTERSLICE"
	}
	return "OVERLAP"
}

type Lef58Type int

const (
	NWell Lef58Type = iota
	PWell
	AboveDieEdge
	BelowDieEdge
	Diffusion
	TrimPoly
	TrimMetal
	Region
)

type Lef58TrimmedMetal struct {
	MetalLayer string
	Mask       *uint32
}

// Layer returns the block with the given name, or nil.
func (t *TechLibrary) Layer(name string) Layer {
	for _, l := range t.Layers {
		if l.LayerName() == name {
			return l
		}
	}
	return nil
}
