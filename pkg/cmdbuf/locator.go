package cmdbuf

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// optionParams maps band-specific TX power configurables onto the parameter
// that owns the txPower field
var optionParams = map[string]string{
	"txPower433":  "txPower",
	"txPower2400": "txPower",
}

// Ref is a field together with the command that holds it
type Ref struct {
	Command string
	Field   *Field
}

// Commands returns the buffer commands in order
func (b *Buffer) Commands() []*Command {
	return b.commands
}

// Command returns the buffer command with the given name
func (b *Buffer) Command(name string) (*Command, bool) {
	cmd, ok := b.byName[name]
	return cmd, ok
}

// Names returns every command name in buffer order
func (b *Buffer) Names() []string {
	names := make([]string, len(b.commands))
	for i, cmd := range b.commands {
		names[i] = cmd.Name
	}
	return names
}

// Used returns the names of the commands used by the setting
func (b *Buffer) Used() []string {
	return append([]string(nil), b.usedList...)
}

// IsUsed reports whether a command is used by the setting
func (b *Buffer) IsUsed(name string) bool {
	return b.used[name]
}

// Get returns the value (or default) of a field. A name of the form
// "CMD_X.field" restricts the search to that command; otherwise the first
// command holding the field wins.
func (b *Buffer) Get(name string) (uint64, bool) {
	if strings.Contains(name, "CMD") {
		cmdName, fieldName, _ := strings.Cut(name, ".")
		cmd, ok := b.byName[cmdName]
		if !ok {
			return 0, false
		}
		f, ok := cmd.Field(fieldName)
		if !ok {
			return 0, false
		}
		return f.Value(), true
	}

	for _, cmd := range b.commands {
		if f, ok := cmd.Field(name); ok {
			return f.Value(), true
		}
	}
	return 0, false
}

// Value is Get with 0 for missing fields
func (b *Buffer) Value(name string) uint64 {
	v, _ := b.Get(name)
	return v
}

// GetAll returns every field with the given name across all commands
func (b *Buffer) GetAll(name string) []Ref {
	var refs []Ref
	for _, cmd := range b.commands {
		for _, f := range cmd.Fields {
			if f.name == name {
				refs = append(refs, Ref{Command: cmd.Name, Field: f})
			}
		}
	}
	return refs
}

// SetByParameter writes v to the field in every command the parameter is
// mapped to. Writing the default clears the field.
func (b *Buffer) SetByParameter(param, field string, v uint64) {
	written := 0
	for _, ref := range b.GetAll(field) {
		if !b.params.Targets(param, ref.Command) {
			continue
		}
		ref.Field.set(v)
		written++
	}
	if written == 0 {
		b.log.Debug("parameter write matched no field",
			slog.String("param", param),
			slog.String("field", field))
	}
}

// SetDirect writes v to the field in every command that is not used by the
// setting
func (b *Buffer) SetDirect(field string, v uint64) {
	for _, ref := range b.GetAll(field) {
		if b.used[ref.Command] || ref.Field.name != field {
			continue
		}
		ref.Field.set(v)
	}
}

// GetByOption returns the display name of the option whose key matches the
// current field value, or the first option when none matches
func (b *Buffer) GetByOption(param, field string) (string, error) {
	opts := b.optionList(param)
	if len(opts) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOptions, param)
	}

	if v, ok := b.Get(field); ok {
		for _, opt := range opts {
			key, err := descriptor.ParseValue(opt.Key)
			if err == nil && key == v {
				return opt.Name, nil
			}
		}
	}

	b.log.Debug("no option matches field, using first option",
		slog.String("param", param),
		slog.String("field", field),
		slog.String("option", opts[0].Name))
	return opts[0].Name, nil
}

// SetByOption writes the key of the option named display to the field
func (b *Buffer) SetByOption(param, field, display string) error {
	opts := b.optionList(param)
	if len(opts) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOptions, param)
	}

	target := param
	if alias, ok := optionParams[param]; ok {
		target = alias
	}

	for _, opt := range opts {
		if !sameDisplay(opt.Name, display) {
			continue
		}
		key, err := descriptor.ParseValue(opt.Key)
		if err != nil {
			return fmt.Errorf("option %q of %s: %w", opt.Name, param, err)
		}
		b.SetByParameter(target, field, key)
	}
	return nil
}

func (b *Buffer) optionList(param string) []descriptor.Option {
	if b.options == nil {
		return nil
	}
	return b.options.Options(param)
}

// sameDisplay matches option names exactly, or numerically when both parse
// as numbers ("98" and "98.0")
func sameDisplay(name, display string) bool {
	if name == display {
		return true
	}
	a, errA := strconv.ParseFloat(strings.TrimSpace(name), 64)
	d, errD := strconv.ParseFloat(strings.TrimSpace(display), 64)
	return errA == nil && errD == nil && a == d
}
