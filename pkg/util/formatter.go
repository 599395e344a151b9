package util

import (
	"fmt"
	"math"

	"github.com/MoleSir/reda/pkg/unit"
)

// FormatValueFactor renders a raw magnitude with an auto-selected scale
// prefix and unit letter, e.g. (0.0015, "V") -> "1.500 mV".
func FormatValueFactor(value float64, u string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1e6:
		return fmt.Sprintf("%.3f Meg%s", value/1e6, u)
	case absValue >= 1e3:
		return fmt.Sprintf("%.3f k%s", value/1e3, u)
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, u)
	case absValue == 0:
		return fmt.Sprintf("%.3f %s", value, u)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, u)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, u)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, u)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, u)
	default:
		return fmt.Sprintf("%.3e %s", value, u)
	}
}

// FormatNumber renders a suffixed number with its unit letter, rescaling to a
// readable prefix rather than echoing the parsed suffix.
func FormatNumber(n unit.Number, u string) string {
	return FormatValueFactor(n.Float64(), u)
}

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%7.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%7.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%7.3f Hz ", freq)
	}
}
