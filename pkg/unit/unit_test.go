package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffixScale(t *testing.T) {
	assert.Equal(t, 1.0, None.Scale())
	assert.Equal(t, 1e6, Mega.Scale())
	assert.Equal(t, 1e3, Kilo.Scale())
	assert.Equal(t, 1e-3, Milli.Scale())
	assert.Equal(t, 1e-6, Micro.Scale())
	assert.Equal(t, 1e-9, Nano.Scale())
	assert.Equal(t, 1e-12, Pico.Scale())
}

func TestNumberFloat64(t *testing.T) {
	assert.InDelta(t, 10000.0, N(10, Kilo).Float64(), 1e-12)
	assert.InDelta(t, 1.5e6, N(1.5, Mega).Float64(), 1e-6)
	assert.InDelta(t, 2e-6, N(2, Micro).Float64(), 1e-18)
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "10k", N(10, Kilo).String())
	assert.Equal(t, "1.5Meg", N(1.5, Mega).String())
	assert.Equal(t, "5", Num(5).String())
	assert.Equal(t, "5V", Voltage(N(5, None)).String())
	assert.Equal(t, "1uF", Capacitance(N(1, Micro)).String())
	assert.Equal(t, "1ns", Time(N(1, Nano)).String())
}

func TestNumberArithmetic(t *testing.T) {
	a := N(1, Kilo)
	b := N(500, None)
	assert.InDelta(t, 1500.0, a.Add(b).Float64(), 1e-12)
	assert.InDelta(t, 500.0, a.Sub(b).Float64(), 1e-12)
	assert.InDelta(t, 2000.0, a.Mul(2).Float64(), 1e-12)
	assert.InDelta(t, 2.0, a.Div(b), 1e-12)
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(N(1000, None)))
	assert.True(t, a.Close(N(1000, None), 1e-9))
}
