package engine

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/herlein/radiocfg/pkg/codegen"
	"github.com/herlein/radiocfg/pkg/rfcalc"
	"github.com/herlein/radiocfg/pkg/txpower"
)

// Command selections for CommandList
const (
	CommandsAll      = "all"
	CommandsBasic    = "basic"
	CommandsAdvanced = "advanced"
)

// testCommands are left out of the basic selection
var testCommands = []string{"CMD_TX_TEST", "CMD_RX_TEST"}

// CommandList returns the command names of a selection: every catalog
// command, the used commands, or the used commands without the test
// commands
func (e *Engine) CommandList(mode string) ([]string, error) {
	switch mode {
	case CommandsAll:
		names := make([]string, len(e.data.Catalog))
		for i, def := range e.data.Catalog {
			names[i] = def.Name
		}
		return names, nil

	case CommandsAdvanced:
		return slices.Clone(e.buf.Used()), nil

	case CommandsBasic:
		var names []string
		for _, name := range e.buf.Used() {
			if !slices.Contains(testCommands, name) {
				names = append(names, name)
			}
		}
		return names, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCommandSet, mode)
}

// GenerateCommand renders the initializer of one command
func (e *Engine) GenerateCommand(name string, syms codegen.Symbols, legacy bool) (codegen.Command, error) {
	cmd, ok := e.buf.Command(name)
	if !ok {
		return codegen.Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	def, ok := e.data.Command(name)
	if !ok {
		return codegen.Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	e.ovr.Init(e.layout.Commands, e.group)

	return codegen.GenerateCommand(codegen.CommandInput{
		Name:          name,
		ID:            def.ID,
		Fields:        cmd.Fields,
		Symbols:       syms,
		OverrideNames: e.ovr.StructNames(syms.Overrides),
		Legacy:        legacy,
	}), nil
}

// PatchInfo returns the run mode and patches of the setting
func (e *Engine) PatchInfo(multiProtocol bool) codegen.Patch {
	return codegen.PatchInfo(e.setting.Patch, multiProtocol)
}

// GeneratePatch renders the RF mode initializer of the setting
func (e *Engine) GeneratePatch(multiProtocol bool) string {
	return codegen.GeneratePatch(e.PatchInfo(multiProtocol))
}

// GenerateOverrides renders the override tables for the live TX power,
// frequency and front end
func (e *Engine) GenerateOverrides(prefix string, custom []string) (string, error) {
	txPower, err := e.TxPower()
	if err != nil {
		return "", err
	}
	if err := e.refreshOverrides(txPower); err != nil {
		return "", err
	}
	freq, err := e.FrequencyText()
	if err != nil {
		return "", err
	}

	data := codegen.OverrideData{
		TxPower:   rfcalc.Hex(e.buf.Value("txPower"), 4),
		LoDivider: e.buf.Value("loDivider"),
		Freq:      freq,
		FrontEnd:  e.buf.Value("config.frontEndMode"),
	}
	if e.device.HighPA {
		data.TxPowerHi = e.hi.DBm
	}
	return e.ovr.Generate(prefix, data, custom), nil
}

type summaryLine struct {
	key     string
	display string
	value   string
}

// ParameterSummary renders the instance as "// Display: value" comment
// lines sorted by configurable name. Only the TX power of the active band
// and amplifier is listed. PHY types belong to the header and are left out.
func (e *Engine) ParameterSummary(inst Instance) (string, error) {
	low, _, err := e.lowFreq()
	if err != nil {
		return "", err
	}
	highPA, err := e.instanceHighPA(inst)
	if err != nil {
		return "", err
	}
	activeTx := txpower.Select(highPA, e.prop2400, low).Configurable()

	var lines []summaryLine
	for _, c := range e.schema.Flatten() {
		if !inst.Has(c.Name) {
			continue
		}
		if isTxPowerKey(c.Name) && c.Name != activeTx {
			continue
		}
		if strings.HasPrefix(c.Name, "phyType") {
			continue
		}

		value, err := e.summaryValue(c.Name, inst)
		if err != nil {
			return "", err
		}
		display := c.DisplayName
		if display == "" {
			display = c.Name
		}
		lines = append(lines, summaryLine{key: c.Name, display: display, value: value})
	}

	slices.SortStableFunc(lines, func(a, b summaryLine) int {
		return strings.Compare(a.key, b.key)
	})

	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "// %s: %s\n", l.display, l.value)
	}
	return b.String(), nil
}

// summaryValue renders one value; radio parameters are read back from the
// buffer so the summary shows what the hardware gets
func (e *Engine) summaryValue(key string, inst Instance) (string, error) {
	switch key {
	case "carrierFrequency":
		return e.FrequencyText()
	case "symbolRate":
		return rfcalc.FormatFixed(e.SymbolRate(), 5), nil
	case "deviation":
		return rfcalc.FormatFixed(e.Deviation(), 3), nil
	case "address0", "address1", "syncWord":
		v, err := inst.Uint(key)
		if err != nil {
			return "", err
		}
		return rfcalc.Hex(v, 0), nil
	}
	return inst.String(key)
}
