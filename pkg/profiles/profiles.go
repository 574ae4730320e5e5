// Package profiles provides a built-in descriptor bundle: command catalogs,
// settings, configurable schemas and a PA table for the proprietary, BLE and
// IEEE 802.15.4 PHY groups. Each setting factory produces one named radio
// configuration for a band and data rate.
package profiles

import (
	"fmt"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// Bundle returns the complete built-in descriptor bundle
func Bundle() *descriptor.Bundle {
	return &descriptor.Bundle{
		Groups: map[descriptor.Group]*descriptor.GroupData{
			descriptor.GroupProp:    PropGroup(),
			descriptor.GroupBLE:     BLEGroup(),
			descriptor.GroupIEEE154: IEEEGroup(),
		},
		PATable: PATable(),
	}
}

// Load returns the bundle at path, or the built-in bundle when path is empty
func Load(path string) (*descriptor.Bundle, error) {
	if path == "" {
		return Bundle(), nil
	}
	bundle, err := descriptor.LoadBundle(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle %s: %w", path, err)
	}
	return bundle, nil
}

// GenerateBundle writes the built-in bundle as YAML to path
func GenerateBundle(path string) error {
	if err := descriptor.SaveBundle(Bundle(), path); err != nil {
		return fmt.Errorf("failed to save bundle: %w", err)
	}
	return nil
}

// formatDataRate formats a data rate for use in setting names
func formatDataRate(kBaud float64) string {
	if kBaud >= 1000 {
		return fmt.Sprintf("%.0fm", kBaud/1000)
	}
	if kBaud == float64(int(kBaud)) {
		return fmt.Sprintf("%.0fk", kBaud)
	}
	return fmt.Sprintf("%.1fk", kBaud)
}

// Catalog field builders

func word(name, bytes string) descriptor.FieldDef {
	return descriptor.FieldDef{Name: name, ByteIndex: bytes}
}

func pointer(name, bytes string) descriptor.FieldDef {
	return descriptor.FieldDef{Name: name, ByteIndex: bytes, Type: "pointer"}
}

// params is a pointer to a parameter struct whose fields follow the command
// from byte offset on
func params(name, bytes string, offset int, ptrName string) descriptor.FieldDef {
	return descriptor.FieldDef{Name: name, ByteIndex: bytes, Type: "pointer", Offset: &offset, PtrName: ptrName}
}

func bits(name, bytes string, subs ...descriptor.BitFieldDef) descriptor.FieldDef {
	return descriptor.FieldDef{Name: name, ByteIndex: bytes, BitFields: subs}
}

func bit(name, index string) descriptor.BitFieldDef {
	return descriptor.BitFieldDef{Name: name, BitIndex: index}
}

// header returns the fields every radio operation starts with
func header() []descriptor.FieldDef {
	return []descriptor.FieldDef{
		word("commandNo", "0..1"),
		word("status", "2..3"),
		pointer("pNextOp", "4..7"),
		word("startTime", "8..11"),
		trigger("startTrigger", "12"),
		bits("condition", "13",
			bit("rule", "0..3"),
			bit("nSkip", "4..7")),
	}
}

func trigger(name, bytes string) descriptor.FieldDef {
	return bits(name, bytes,
		bit("triggerType", "0..3"),
		bit("bEnaCmd", "4"),
		bit("triggerNo", "5..6"),
		bit("pastTrig", "7"))
}

func command(name, id, description string, fields ...descriptor.FieldDef) descriptor.CommandDef {
	return descriptor.CommandDef{
		Name:        name,
		ID:          id,
		Description: description,
		Fields:      append(header(), fields...),
	}
}

// fsCommand is the frequency synthesizer command shared by every group
func fsCommand() descriptor.CommandDef {
	return command("CMD_FS", "0x0803", "Frequency Synthesizer Programming Command",
		word("frequency", "14..15"),
		word("fractFreq", "16..17"),
		bits("synthConf", "18",
			bit("bTxMode", "0"),
			bit("refFreq", "1..6")),
		word("dummy0", "19"),
		word("dummy1", "20"),
		word("dummy2", "21..22"),
		word("dummy3", "23..24"))
}

// radioConfig is the config word of the setup commands
func radioConfig(bytes string) descriptor.FieldDef {
	return bits("config", bytes,
		bit("frontEndMode", "0..2"),
		bit("biasMode", "3"),
		bit("analogCfgMode", "4..9"),
		bit("bNoFsPowerUp", "10"))
}

// Setting builders

func field(name string, v uint64) descriptor.SettingField {
	return descriptor.SettingField{Name: name, Value: rfcalc.Hex(v, 0)}
}

func text(name, value string) descriptor.SettingField {
	return descriptor.SettingField{Name: name, Value: value}
}

func use(name string, fields ...descriptor.SettingField) descriptor.SettingCommand {
	return descriptor.SettingCommand{Name: name, Fields: fields}
}

func overrides(slot string, entries ...descriptor.OverrideEntry) descriptor.OverrideList {
	return descriptor.OverrideList{Slot: slot, Entries: entries}
}

func entry(value, comment string) descriptor.OverrideEntry {
	return descriptor.OverrideEntry{Value: value, Comment: comment}
}

// fsFields returns the CMD_FS fields for a carrier frequency
func fsFields(mhz float64) []descriptor.SettingField {
	whole, fract := rfcalc.EncodeFrequency(mhz)
	return []descriptor.SettingField{
		field("condition.rule", 1),
		field("frequency", whole),
		field("fractFreq", fract),
	}
}

// Schema builders

func option(name, key string) descriptor.Option {
	return descriptor.Option{Name: name, Key: key}
}

func configurable(name, display string, def any, opts ...descriptor.Option) descriptor.Configurable {
	return descriptor.Configurable{Name: name, DisplayName: display, Default: def, Options: opts}
}

func group(name, display string, items ...descriptor.Configurable) descriptor.Configurable {
	return descriptor.Configurable{Name: name, DisplayName: display, Configurables: items}
}

// txPowerConfigurables are filled from the PA table when an engine starts
func txPowerConfigurables() descriptor.Configurable {
	return group("txPowerGroup", "TX Power",
		configurable("highPA", "High PA", false),
		configurable("txPower", "TX Power (dBm)", ""),
		configurable("txPowerHi", "TX Power High PA (dBm)", ""),
		configurable("txPower433", "TX Power 433 MHz (dBm)", ""),
		configurable("txPower433Hi", "TX Power 433 MHz High PA (dBm)", ""),
		configurable("txPower2400", "TX Power 2.4 GHz (dBm)", ""),
	)
}
