// Package descriptor models the structured radio descriptors consumed by the
// engine: command catalogs, settings, parameter mappings, front-end patches,
// configurable schemas and PA tables. Descriptors are loaded from YAML
// bundles or built in code (see package profiles).
package descriptor

import (
	"fmt"
	"strings"
)

// Group identifies a protocol group
type Group string

// Protocol groups
const (
	GroupProp    Group = "prop"     // Proprietary sub-GHz / 2.4 GHz
	GroupBLE     Group = "ble"      // Bluetooth Low Energy
	GroupIEEE154 Group = "ieee_154" // IEEE 802.15.4
)

// ParseGroup converts a group name to a Group
func ParseGroup(s string) (Group, error) {
	switch g := Group(strings.ToLower(s)); g {
	case GroupProp, GroupBLE, GroupIEEE154:
		return g, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownGroup, s)
}

// FieldKind tells a whole field from a bit-decomposed word
type FieldKind int

const (
	// FieldWord is a whole field addressed by byte range
	FieldWord FieldKind = iota
	// FieldBitGroup is a word split into named bit subfields
	FieldBitGroup
)

// CommandDef is the catalog layout of one RF command
type CommandDef struct {
	Name        string     `yaml:"name"`
	ID          string     `yaml:"id"`
	Description string     `yaml:"description,omitempty"`
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef describes one field of a command layout
type FieldDef struct {
	Name      string        `yaml:"name"`
	ByteIndex string        `yaml:"byteIndex"`
	Type      string        `yaml:"type,omitempty"`    // "pointer" for pointer fields
	Offset    *int          `yaml:"offset,omitempty"`  // sub-struct byte offset
	PtrName   string        `yaml:"ptrName,omitempty"` // symbol the pointer refers to
	BitFields []BitFieldDef `yaml:"bitFields,omitempty"`
}

// Kind returns the shape of the field
func (f FieldDef) Kind() FieldKind {
	if len(f.BitFields) > 0 {
		return FieldBitGroup
	}
	return FieldWord
}

// IsPointer reports whether the field holds a pointer
func (f FieldDef) IsPointer() bool {
	return f.Type == "pointer"
}

// BitFieldDef is one subfield of a bit group
type BitFieldDef struct {
	Name     string `yaml:"name"`
	BitIndex string `yaml:"bitIndex"`
}

// Field returns the catalog field with the given name
func (c *CommandDef) Field(name string) (*FieldDef, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// SettingField is a field value of a setting, kept as text ("0x3807", "12")
type SettingField struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`
}

// OverrideEntry is one word of an override table
type OverrideEntry struct {
	Value   string `yaml:"value"`
	Comment string `yaml:"comment,omitempty"`
}

// OverrideList is the override table attached to one pointer slot
type OverrideList struct {
	Slot    string          `yaml:"slot"` // e.g. pRegOverride, pRegOverrideTx20
	Entries []OverrideEntry `yaml:"entries"`
}

// SettingCommand is a command as it appears in a setting
type SettingCommand struct {
	Name      string         `yaml:"name"`
	Fields    []SettingField `yaml:"fields,omitempty"`
	Overrides []OverrideList `yaml:"overrides,omitempty"`

	// OverridePatch holds front-end override entries staged for the
	// override subsystem
	OverridePatch []OverrideEntry `yaml:"overridePatch,omitempty"`
}

// Field returns the setting field with the given name
func (c *SettingCommand) Field(name string) (*SettingField, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// Patch names the patch functions a setting needs
type Patch struct {
	Define string `yaml:"define,omitempty"` // run mode, e.g. RF_MODE_PROPRIETARY_SUB_1
	Cpe    string `yaml:"cpe,omitempty"`
	Mce    string `yaml:"mce,omitempty"`
	Rfe    string `yaml:"rfe,omitempty"`
}

// Setting is a named radio configuration
type Setting struct {
	Name          string           `yaml:"name"`
	LongName      string           `yaml:"longName,omitempty"`
	Description   string           `yaml:"description,omitempty"`
	Frequency     float64          `yaml:"frequency"` // nominal frequency in MHz
	Commands      []SettingCommand `yaml:"commands"`
	Patch         *Patch           `yaml:"patch,omitempty"`
	TestFunctions []string         `yaml:"testFunctions,omitempty"`
}

// Command returns the first setting command with the given name
func (s *Setting) Command(name string) (*SettingCommand, bool) {
	for i := range s.Commands {
		if s.Commands[i].Name == name {
			return &s.Commands[i], true
		}
	}
	return nil, false
}

// Lookup returns the text value of cmd.field. The second result is false
// when the command or field is missing or carries no value.
func (s *Setting) Lookup(cmd, field string) (string, bool) {
	c, ok := s.Command(cmd)
	if !ok {
		return "", false
	}
	f, ok := c.Field(field)
	if !ok || f.Value == "" {
		return "", false
	}
	return f.Value, true
}

// Clone returns a deep copy of the setting
func (s *Setting) Clone() *Setting {
	out := *s
	out.Commands = cloneCommands(s.Commands)
	out.TestFunctions = append([]string(nil), s.TestFunctions...)
	if s.Patch != nil {
		p := *s.Patch
		out.Patch = &p
	}
	return &out
}

func cloneCommands(cmds []SettingCommand) []SettingCommand {
	if cmds == nil {
		return nil
	}
	out := make([]SettingCommand, len(cmds))
	for i, c := range cmds {
		out[i] = SettingCommand{
			Name:          c.Name,
			Fields:        append([]SettingField(nil), c.Fields...),
			OverridePatch: append([]OverrideEntry(nil), c.OverridePatch...),
		}
		for _, l := range c.Overrides {
			out[i].Overrides = append(out[i].Overrides, OverrideList{
				Slot:    l.Slot,
				Entries: append([]OverrideEntry(nil), l.Entries...),
			})
		}
	}
	return out
}

// MappingEntry maps a comma-separated list of parameter names to the
// commands they affect
type MappingEntry struct {
	Names    string   `yaml:"names"`
	Commands []string `yaml:"commands"`
}

// FrontEndCommand patches one command for a front end
type FrontEndCommand struct {
	Name     string          `yaml:"name"`
	Fields   []SettingField  `yaml:"fields,omitempty"`
	Override []OverrideEntry `yaml:"override,omitempty"`
}

// FrontEndRange holds patches for a frequency range of a front end
type FrontEndRange struct {
	MinMHz   float64           `yaml:"minMHz"`
	MaxMHz   float64           `yaml:"maxMHz"`
	Commands []FrontEndCommand `yaml:"commands"`
}

// FrontEnd describes the field patches for a front-end configuration
type FrontEnd struct {
	ID              string            `yaml:"id"`
	FrequencyRanges []FrontEndRange   `yaml:"frequencyRanges,omitempty"`
	Commands        []FrontEndCommand `yaml:"commands,omitempty"`
}

// PALevel is one selectable output power
type PALevel struct {
	DBm string `yaml:"dbm"`
	Raw string `yaml:"raw"`
}

// PABand is the PA table for one frequency range and amplifier
type PABand struct {
	Name     string    `yaml:"name"`
	MinMHz   float64   `yaml:"minMHz"`
	MaxMHz   float64   `yaml:"maxMHz"`
	HighPA   bool      `yaml:"highPA,omitempty"`
	Prop2400 bool      `yaml:"prop2400,omitempty"`
	Levels   []PALevel `yaml:"levels"`
}

// GroupData holds every descriptor of one protocol group
type GroupData struct {
	Catalog       []CommandDef                `yaml:"catalog"`
	Mapping       []MappingEntry              `yaml:"mapping"`
	FrontEnds     []FrontEnd                  `yaml:"frontEnds,omitempty"`
	Schema        Schema                      `yaml:"schema"`
	Settings      []Setting                   `yaml:"settings"`
	TestFunctions map[string][]SettingCommand `yaml:"testFunctions,omitempty"`
}

// Command returns the catalog entry with the given name
func (g *GroupData) Command(name string) (*CommandDef, bool) {
	for i := range g.Catalog {
		if g.Catalog[i].Name == name {
			return &g.Catalog[i], true
		}
	}
	return nil, false
}

// Setting returns the setting with the given name
func (g *GroupData) Setting(name string) (*Setting, bool) {
	for i := range g.Settings {
		if g.Settings[i].Name == name {
			return &g.Settings[i], true
		}
	}
	return nil, false
}

// FrontEnd returns the front end with the given id
func (g *GroupData) FrontEnd(id string) (*FrontEnd, bool) {
	for i := range g.FrontEnds {
		if g.FrontEnds[i].ID == id {
			return &g.FrontEnds[i], true
		}
	}
	return nil, false
}

// Source provides descriptor data per protocol group
type Source interface {
	Group(g Group) (*GroupData, error)
}
