package mir

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"vecl/internal/symbols"
	"vecl/internal/types"
	"vecl/internal/value"
)

// Module is one lowered compilation unit.
type Module struct {
	Funcs []*Func // declaration order
	Main  symbols.FunID

	// Pool holds the values of global constants, which are referenced
	// through ordinary ValueIDs.
	Pool   map[ValueID]value.Value
	Labels map[LabelID]string
	Types  []types.Type // indexed by ValueID
}

// TypeOf returns the type of an SSA value.
func (m *Module) TypeOf(id ValueID) types.Type {
	if int(id) >= len(m.Types) {
		panic(fmt.Sprintf("mir: unknown value %s", id))
	}
	return m.Types[id]
}

// LabelName is the display name of a label.
func (m *Module) LabelName(l LabelID) string {
	if name, ok := m.Labels[l]; ok {
		return name
	}
	return fmt.Sprintf("L%d", l)
}

// MainFunc returns the entry function.
func (m *Module) MainFunc() *Func {
	for _, f := range m.Funcs {
		if f.ID == m.Main {
			return f
		}
	}
	return nil
}

// Counters hands out unit-wide value and label identities. They are never
// reset between functions.
type Counters struct {
	mod *Module
}

func newCounters(m *Module) *Counters {
	m.Types = append(m.Types[:0], types.Invalid)
	return &Counters{mod: m}
}

// NewValue allocates an SSA value of type t.
func (c *Counters) NewValue(t types.Type) ValueID {
	n, err := safecast.Conv[uint32](len(c.mod.Types))
	if err != nil {
		panic(fmt.Errorf("value id overflow: %w", err))
	}
	c.mod.Types = append(c.mod.Types, t)
	return ValueID(n)
}

// NewLabel allocates a label displayed as L<n>_<hint>.
func (c *Counters) NewLabel(hint string) LabelID {
	n, err := safecast.Conv[uint32](len(c.mod.Labels) + 1)
	if err != nil {
		panic(fmt.Errorf("label id overflow: %w", err))
	}
	id := LabelID(n)
	var sb strings.Builder
	fmt.Fprintf(&sb, "L%d", n)
	if hint != "" {
		sb.WriteByte('_')
		sb.WriteString(hint)
	}
	c.mod.Labels[id] = sb.String()
	return id
}
