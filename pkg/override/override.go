// Package override renders the register override tables a setting points
// to from its command pointers (pRegOverride and friends).
package override

import (
	"fmt"
	"strings"

	"github.com/herlein/radiocfg/pkg/codegen"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// BaseSlot is the pointer name of the main override table
const BaseSlot = "pRegOverride"

// terminator ends every override table
const terminator = "(uint32_t)0xFFFFFFFF"

type table struct {
	slot    string
	command string
	entries []descriptor.OverrideEntry
}

// Handler collects override tables from setting commands and renders them
type Handler struct {
	group  descriptor.Group
	tables []*table

	txPower  string
	freqMHz  float64
	prop2400 bool
}

// New returns an empty handler
func New() *Handler {
	return &Handler{}
}

// Init collects the override tables of the given commands. Front-end
// override entries staged on a command are appended to its main table.
func (h *Handler) Init(cmds []descriptor.SettingCommand, group descriptor.Group) {
	h.group = group
	h.tables = nil

	for _, cmd := range cmds {
		for _, list := range cmd.Overrides {
			t := h.table(list.Slot, cmd.Name)
			t.entries = append(t.entries, list.Entries...)
		}
		if len(cmd.OverridePatch) > 0 {
			t := h.table(BaseSlot, cmd.Name)
			t.entries = append(t.entries, cmd.OverridePatch...)
		}
	}
}

func (h *Handler) table(slot, cmd string) *table {
	for _, t := range h.tables {
		if t.slot == slot {
			return t
		}
	}
	t := &table{slot: slot, command: cmd}
	h.tables = append(h.tables, t)
	return t
}

// UpdateTxPower records the TX power (dBm) the tables are rendered for
func (h *Handler) UpdateTxPower(txPower string, mhz float64, prop2400 bool) {
	h.txPower, h.freqMHz, h.prop2400 = txPower, mhz, prop2400
}

// StructNames returns the symbol of every table for the given prefix
func (h *Handler) StructNames(prefix string) []string {
	names := make([]string, len(h.tables))
	for i, t := range h.tables {
		names[i] = structName(t.slot, prefix)
	}
	return names
}

func structName(slot, prefix string) string {
	return strings.Replace(slot, BaseSlot, prefix, 1)
}

// Generate renders every override table. Custom entries are appended to the
// main table ahead of the terminator.
func (h *Handler) Generate(prefix string, data codegen.OverrideData, custom []string) string {
	if len(h.tables) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Frequency: %s MHz, LO divider: %d, front-end mode: %s\n",
		data.Freq, data.LoDivider, rfcalc.Hex(data.FrontEnd, 0))
	power := data.TxPower
	if h.txPower != "" {
		power = fmt.Sprintf("%s dBm (%s)", h.txPower, data.TxPower)
	}
	if data.TxPowerHi != "" {
		fmt.Fprintf(&b, "// TX power: %s, high PA %s dBm\n", power, data.TxPowerHi)
	} else {
		fmt.Fprintf(&b, "// TX power: %s\n", power)
	}

	for i, t := range h.tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "// Overrides for %s\n", t.command)
		fmt.Fprintf(&b, "uint32_t %s[] =\n{\n", structName(t.slot, prefix))
		for _, e := range t.entries {
			if e.Comment != "" {
				fmt.Fprintf(&b, "    // %s\n", e.Comment)
			}
			fmt.Fprintf(&b, "    %s,\n", entryValue(e.Value))
		}
		if t.slot == BaseSlot {
			if h.prop2400 && data.TxPower != "" {
				b.WriteString("    // TX standard power override\n")
				fmt.Fprintf(&b, "    TX_STD_POWER_OVERRIDE(%s),\n", data.TxPower)
			}
			for _, name := range custom {
				fmt.Fprintf(&b, "    %s,\n", name)
			}
		}
		fmt.Fprintf(&b, "    %s\n};\n", terminator)
	}

	return b.String()
}

// entryValue casts plain numbers; macros are kept as written
func entryValue(v string) string {
	if _, err := descriptor.ParseValue(v); err == nil {
		return "(uint32_t)" + v
	}
	return v
}
