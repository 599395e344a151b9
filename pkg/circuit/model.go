package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MoleSir/reda/pkg/unit"
)

// ModelKind is the device family of a .MODEL card.
type ModelKind int

const (
	ModelNPN ModelKind = iota
	ModelPNP
	ModelDiode
	ModelNMOS
	ModelPMOS
)

func (k ModelKind) String() string {
	switch k {
	case ModelNPN:
		return "NPN"
	case ModelPNP:
		return "PNP"
	case ModelDiode:
		return "D"
	case ModelNMOS:
		return "NMOS"
	case ModelPMOS:
		return "PMOS"
	}
	return "?"
}

// Model is a .MODEL card: a named parameter set for one device family.
type Model struct {
	Name   string
	Kind   ModelKind
	Params map[string]unit.Number
}

func (m Model) Spice() string {
	var b strings.Builder
	fmt.Fprintf(&b, ".MODEL %s %s", m.Name, m.Kind)
	if len(m.Params) > 0 {
		keys := make([]string, 0, len(m.Params))
		for k := range m.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%s", k, m.Params[k])
		}
		b.WriteByte(')')
	}
	return b.String()
}
