package cmdbuf

import (
	"fmt"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// MergeInput is everything needed to assemble the command list of a setting
type MergeInput struct {
	Setting       *descriptor.Setting
	Catalog       []descriptor.CommandDef
	TestFunctions map[string][]descriptor.SettingCommand
	FrontEnds     []descriptor.FrontEnd
	FrontEnd      string // selected front end; empty skips front-end patches
}

// Layout is the merged command list of a setting
type Layout struct {
	// Commands holds the used commands, then test-function commands, then
	// every remaining catalog command
	Commands []descriptor.SettingCommand
	// Used names the setting and test-function commands, in order
	Used []string
}

// Merge assembles the command list of a setting. The setting is not
// modified.
func Merge(in MergeInput) (*Layout, error) {
	setting := in.Setting.Clone()
	layout := &Layout{Commands: setting.Commands}

	present := make(map[string]bool)
	for _, cmd := range layout.Commands {
		layout.Used = append(layout.Used, cmd.Name)
		present[cmd.Name] = true
	}

	for _, name := range setting.TestFunctions {
		fragment, ok := in.TestFunctions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTestFunction, name)
		}
		for _, cmd := range fragment {
			if present[cmd.Name] {
				continue
			}
			clone := (&descriptor.Setting{Commands: []descriptor.SettingCommand{cmd}}).Clone()
			layout.Commands = append(layout.Commands, clone.Commands[0])
			layout.Used = append(layout.Used, cmd.Name)
			present[cmd.Name] = true
		}
	}

	for _, def := range in.Catalog {
		if present[def.Name] {
			continue
		}
		layout.Commands = append(layout.Commands, descriptor.SettingCommand{Name: def.Name})
		present[def.Name] = true
	}

	if in.FrontEnd != "" {
		if err := layout.patchFrontEnd(in.FrontEnds, in.FrontEnd); err != nil {
			return nil, err
		}
	}

	return layout, nil
}

// patchFrontEnd merges the front-end field patches into matching commands
// and stages front-end override entries on them
func (l *Layout) patchFrontEnd(frontEnds []descriptor.FrontEnd, id string) error {
	var fe *descriptor.FrontEnd
	for i := range frontEnds {
		if frontEnds[i].ID == id {
			fe = &frontEnds[i]
			break
		}
	}
	if fe == nil {
		return fmt.Errorf("%w: %s", ErrFrontEndNotFound, id)
	}

	patches := fe.Commands
	if len(fe.FrequencyRanges) > 0 {
		patches = fe.FrequencyRanges[0].Commands
	}

	for _, patch := range patches {
		for i := range l.Commands {
			cmd := &l.Commands[i]
			if cmd.Name != patch.Name {
				continue
			}
			for _, f := range patch.Fields {
				if existing, ok := cmd.Field(f.Name); ok {
					existing.Value = f.Value
					continue
				}
				cmd.Fields = append(cmd.Fields, f)
			}
			if len(patch.Override) > 0 {
				cmd.OverridePatch = append([]descriptor.OverrideEntry(nil), patch.Override...)
			}
		}
	}

	return nil
}

// IsUsed reports whether a command belongs to the setting proper
func (l *Layout) IsUsed(name string) bool {
	for _, used := range l.Used {
		if used == name {
			return true
		}
	}
	return false
}
