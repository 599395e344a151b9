package lef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoleSir/reda/pkg/parse"
)

const techLib = `VERSION 5.8 ;
BUSBITCHARS "[]" ;
DIVIDERCHAR "/" ;

UNITS
   DATABASE MICRONS 2000 ;
END UNITS

MANUFACTURINGGRID 0.005 ;
USEMINSPACING ON ;

LAYER nwell TYPE MASTERSLICE ;
   PROPERTY LEF58_TYPE "TYPE NWELL" ;
END nwell

LAYER metal1 TYPE ROUTING ;
   DIRECTION HORIZONTAL ;
   PITCH 0.34 ;
   WIDTH 0.17 ;
   AREA 0.202 ;
   SPACING 0.17 ;
   SPACING 0.5 ;
END metal1

LAYER via1 TYPE CUT ;
   MASK 2 ;
   SPACING 0.19 CENTERTOCENTER ;
   SPACING 0.22 SAMENET LAYER metal1 STACK ;
   SPACING 0.25 ADJACENTCUTS 3 WITHIN 0.4 EXCEPTSAMEPGNET ;
   WIDTH 0.19 ;
   ENCLOSURE BELOW 0.05 0.01 WIDTH 0.2 EXCEPTEXTRACUT 0.3 ;
   ENCLOSURE 0.06 0.0 LENGTH 0.9 ;
END via1

LAYER pimplant TYPE IMPLANT ;
   WIDTH 0.26 ;
   SPACING 0.26 LAYER nimplant ;
   SPACING lef58spacing groupEdge ;
END pimplant

LAYER trim TYPE OVERLAP ;
   PROPERTY LEF58_TRIMMEDMETAL "TRIMMEDMETAL metal2 MASK 1" ;
   PROPERTY foo "bar" ;
END trim
`

func TestParseTechLibrary(t *testing.T) {
	lib, err := Parse(techLib)
	require.NoError(t, err)

	assert.Equal(t, 5.8, lib.Version)
	assert.Equal(t, "[]", lib.BusBitChars)
	assert.Equal(t, "/", lib.DividerChar)
	require.NotNil(t, lib.Units.DatabaseMicrons)
	assert.Equal(t, uint32(2000), *lib.Units.DatabaseMicrons)
	require.NotNil(t, lib.ManufacturingGrid)
	assert.Equal(t, 0.005, *lib.ManufacturingGrid)
	require.NotNil(t, lib.UseMinSpacing)
	assert.Equal(t, MinSpacingOn, *lib.UseMinSpacing)
	require.Len(t, lib.Layers, 5)
}

func TestParseSpecialLayers(t *testing.T) {
	lib, err := Parse(techLib)
	require.NoError(t, err)

	nwell, ok := lib.Layer("nwell").(*SpecialLayer)
	require.True(t, ok)
	assert.Equal(t, "MASTERSLICE", nwell.LayerType())
	require.NotNil(t, nwell.Lef58Type)
	assert.Equal(t, NWell, *nwell.Lef58Type)
	assert.Empty(t, nwell.Properties)

	trim, ok := lib.Layer("trim").(*SpecialLayer)
	require.True(t, ok)
	assert.Equal(t, "OVERLAP", trim.LayerType())
	require.NotNil(t, trim.Lef58Trimmed)
	assert.Equal(t, "metal2", trim.Lef58Trimmed.MetalLayer)
	require.NotNil(t, trim.Lef58Trimmed.Mask)
	assert.Equal(t, uint32(1), *trim.Lef58Trimmed.Mask)
	require.Len(t, trim.Properties, 1)
	assert.Equal(t, Property{Key: "foo", Value: "bar"}, trim.Properties[0])
}

func TestParseRoutingLayer(t *testing.T) {
	lib, err := Parse(techLib)
	require.NoError(t, err)

	m1, ok := lib.Layer("metal1").(*RoutingLayer)
	require.True(t, ok)
	assert.Equal(t, Horizontal, m1.Direction)
	assert.False(t, m1.Pitch.XY)
	assert.Equal(t, 0.34, m1.Pitch.X)
	assert.Equal(t, 0.34, m1.Pitch.Y)
	assert.Equal(t, 0.17, m1.Width)
	require.NotNil(t, m1.Area)
	assert.Equal(t, 0.202, *m1.Area)
	require.Len(t, m1.SpacingRules, 2)
	assert.Equal(t, 0.5, m1.SpacingRules[1].MinSpacing)
	assert.Nil(t, m1.MaxWidth)
	assert.Nil(t, m1.MinWidth)
}

func TestParseCutLayer(t *testing.T) {
	lib, err := Parse(techLib)
	require.NoError(t, err)

	via1, ok := lib.Layer("via1").(*CutLayer)
	require.True(t, ok)
	require.NotNil(t, via1.Mask)
	assert.Equal(t, uint32(2), *via1.Mask)
	require.NotNil(t, via1.Width)
	assert.Equal(t, 0.19, *via1.Width)
	require.Len(t, via1.Spacing, 3)

	assert.Equal(t, 0.19, via1.Spacing[0].CutSpacing)
	assert.True(t, via1.Spacing[0].CenterToCenter)
	assert.Nil(t, via1.Spacing[0].Constraint)

	assert.True(t, via1.Spacing[1].SameNet)
	layerC, ok := via1.Spacing[1].Constraint.(SpacingLayer)
	require.True(t, ok)
	assert.Equal(t, "metal1", layerC.Name)
	assert.True(t, layerC.Stack)

	adjC, ok := via1.Spacing[2].Constraint.(SpacingAdjacentCuts)
	require.True(t, ok)
	assert.Equal(t, uint8(3), adjC.Count)
	assert.Equal(t, 0.4, adjC.Within)
	assert.True(t, adjC.ExceptSamePGNet)

	require.Len(t, via1.Enclosures, 2)
	assert.False(t, via1.Enclosures[0].Above)
	assert.Equal(t, 0.05, via1.Enclosures[0].Overhang1)
	widthC, ok := via1.Enclosures[0].Condition.(EnclosureWidth)
	require.True(t, ok)
	assert.Equal(t, 0.2, widthC.MinWidth)
	require.NotNil(t, widthC.ExceptExtraCut)
	assert.Equal(t, 0.3, *widthC.ExceptExtraCut)

	assert.True(t, via1.Enclosures[1].Above)
	lengthC, ok := via1.Enclosures[1].Condition.(EnclosureLength)
	require.True(t, ok)
	assert.Equal(t, 0.9, lengthC.MinLength)
}

func TestParseImplantLayer(t *testing.T) {
	lib, err := Parse(techLib)
	require.NoError(t, err)

	imp, ok := lib.Layer("pimplant").(*ImplantLayer)
	require.True(t, ok)
	require.NotNil(t, imp.Width)
	assert.Equal(t, 0.26, *imp.Width)
	require.Len(t, imp.Spacings, 1)
	assert.Equal(t, 0.26, imp.Spacings[0].MinSpacing)
	assert.Equal(t, "nimplant", imp.Spacings[0].Layer)
	// Property clauses reuse the SPACING keyword.
	require.Len(t, imp.Properties, 1)
	assert.Equal(t, Property{Key: "lef58spacing", Value: "groupEdge"}, imp.Properties[0])
}

func TestEndNameMismatch(t *testing.T) {
	_, _, err := layer("LAYER m1 TYPE CUT ; END m2")
	require.NotNil(t, err)
	assert.True(t, err.Fatal())
}

func TestUnknownLayerType(t *testing.T) {
	_, _, err := layer("LAYER m1 TYPE FOO ; END m1")
	require.NotNil(t, err)
	assert.True(t, err.Fatal())
}

func TestLayerKeywordMiss(t *testing.T) {
	_, _, err := layer("MACRO foo")
	require.NotNil(t, err)
	assert.False(t, err.Fatal())
}

func TestUseMinSpacingOffReadsOn(t *testing.T) {
	v, rest, err := useMinSpacing("USEMINSPACING OFF ; LAYER")
	require.Nil(t, err)
	require.NotNil(t, v)
	assert.Equal(t, MinSpacingOn, *v)
	assert.Equal(t, " LAYER", rest)
}

func TestRoutingPitchXY(t *testing.T) {
	l, _, err := layer(`LAYER metal2 TYPE ROUTING ;
   DIRECTION VERTICAL ;
   PITCH 0.2 0.4 ;
   WIDTH 0.1 ;
END metal2`)
	require.Nil(t, err)
	m2 := l.(*RoutingLayer)
	assert.Equal(t, Vertical, m2.Direction)
	assert.True(t, m2.Pitch.XY)
	assert.Equal(t, 0.2, m2.Pitch.X)
	assert.Equal(t, 0.4, m2.Pitch.Y)
}

func TestParseBadBusBitChars(t *testing.T) {
	_, err := Parse("VERSION 5.8 ;\nBUSBITCHARS \"()\" ;\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus bit chars")
	assert.Contains(t, err.Error(), "line 2")
	assert.True(t, parse.IsFatal(err))
}

func TestParseEndMismatchDiagnostic(t *testing.T) {
	bad := `VERSION 5.8 ;
BUSBITCHARS "[]" ;
DIVIDERCHAR "/" ;
UNITS DATABASE MICRONS 1000 ; END UNITS
LAYER m1 TYPE CUT ;
END m2
`
	_, err := Parse(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "un match end name")
	assert.True(t, parse.IsFatal(err))
}

func TestParseTrailingInput(t *testing.T) {
	_, err := Parse(`VERSION 5.8 ;
BUSBITCHARS "[]" ;
DIVIDERCHAR "/" ;
UNITS DATABASE MICRONS 1000 ; END UNITS
MACRO inv
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected input")
	assert.Contains(t, err.Error(), "MACRO inv")
	assert.Contains(t, err.Error(), "line 5")
}
