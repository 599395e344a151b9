package lef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLit(t *testing.T) {
	rest, err := lit(" \n  LAYER m1", "LAYER")
	require.Nil(t, err)
	assert.Equal(t, " m1", rest)

	_, err = lit("  layer m1", "LAYER")
	require.NotNil(t, err)
	assert.False(t, err.Fatal())
}

func TestIdentifier(t *testing.T) {
	name, rest, err := identifier("  metal1 TYPE")
	require.Nil(t, err)
	assert.Equal(t, "metal1", name)
	assert.Equal(t, " TYPE", rest)

	// Dots are not identifier characters.
	name, rest, err = identifier("m1.x")
	require.Nil(t, err)
	assert.Equal(t, "m1", name)
	assert.Equal(t, ".x", rest)

	_, _, err = identifier("1abc")
	require.NotNil(t, err)
}

func TestQString(t *testing.T) {
	v, rest, err := qstring(`  "[]" ;`)
	require.Nil(t, err)
	assert.Equal(t, "[]", v)
	assert.Equal(t, " ;", rest)

	_, _, err = qstring(`"unterminated`)
	require.NotNil(t, err)
}

func TestUnsignedInt(t *testing.T) {
	n, rest, err := unsignedInt(" 2000 ;")
	require.Nil(t, err)
	assert.Equal(t, uint32(2000), n)
	assert.Equal(t, " ;", rest)

	_, _, err = unsignedInt("99999999999")
	require.NotNil(t, err)
	assert.False(t, err.Fatal())
}

func TestFloat(t *testing.T) {
	v, rest, err := float(" -3.5 ;")
	require.Nil(t, err)
	assert.Equal(t, -3.5, v)
	assert.Equal(t, " ;", rest)

	v, _, err = float("42.")
	require.Nil(t, err)
	assert.Equal(t, 42.0, v)

	// Underscores separate digits without changing the value.
	v, _, err = float("1_000")
	require.Nil(t, err)
	assert.Equal(t, 1000.0, v)

	_, _, err = float("_5")
	require.NotNil(t, err)
	_, _, err = float("x")
	require.NotNil(t, err)
}
