package cmdbuf

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/parammap"
)

// Buffer is the command buffer of one setting
type Buffer struct {
	commands []*Command
	byName   map[string]*Command
	used     map[string]bool
	usedList []string

	params  parammap.Map
	options OptionSource
	log     *slog.Logger
}

// BuildInput is everything needed to create a buffer
type BuildInput struct {
	Catalog []descriptor.CommandDef
	Layout  *Layout
	Params  parammap.Map
	Options OptionSource
	Logger  *slog.Logger
}

// Build creates the command buffer from the catalog layout and the merged
// setting values
func Build(in BuildInput) (*Buffer, error) {
	log := in.Logger
	if log == nil {
		log = slog.Default()
	}

	b := &Buffer{
		byName:  make(map[string]*Command),
		used:    make(map[string]bool),
		params:  in.Params,
		options: in.Options,
		log:     log,
	}
	for _, name := range in.Layout.Used {
		b.used[name] = true
		b.usedList = append(b.usedList, name)
	}

	values := &settingValues{commands: in.Layout.Commands, log: log}

	for _, sc := range in.Layout.Commands {
		if _, dup := b.byName[sc.Name]; dup {
			continue
		}
		def, ok := findCommand(in.Catalog, sc.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, sc.Name)
		}

		cmd := &Command{Name: sc.Name}
		for _, fd := range def.Fields {
			fields, err := buildField(sc.Name, fd, values)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", sc.Name, fd.Name, err)
			}
			cmd.Fields = append(cmd.Fields, fields...)
		}

		b.commands = append(b.commands, cmd)
		b.byName[cmd.Name] = cmd
	}

	log.Debug("command buffer built",
		slog.Int("commands", len(b.commands)),
		slog.Int("used", len(b.usedList)))

	return b, nil
}

func findCommand(catalog []descriptor.CommandDef, name string) (*descriptor.CommandDef, bool) {
	i := slices.IndexFunc(catalog, func(def descriptor.CommandDef) bool { return def.Name == name })
	if i < 0 {
		return nil, false
	}
	return &catalog[i], true
}

func buildField(cmdName string, fd descriptor.FieldDef, values *settingValues) ([]*Field, error) {
	switch fd.Kind() {
	case descriptor.FieldWord:
		lo, hi, err := descriptor.ParseRange(fd.ByteIndex)
		if err != nil {
			return nil, err
		}
		f := &Field{
			name:       fd.Name,
			kind:       KindWord,
			pointer:    fd.IsPointer(),
			byteOffset: lo,
			width:      descriptor.RangeWidth(lo, hi) * 2,
			ptrOffset:  -1,
		}
		if f.pointer && fd.Offset != nil {
			f.symbol = fd.PtrName
			f.ptrOffset = *fd.Offset
			return []*Field{f}, nil
		}
		text := values.text(cmdName, fd.Name)
		if f.pointer {
			if v, err := descriptor.ParseValue(text); err == nil {
				f.def = v
			} else {
				f.symbol = text
			}
			return []*Field{f}, nil
		}
		f.def = values.number(cmdName, fd.Name)
		return []*Field{f}, nil

	case descriptor.FieldBitGroup:
		// Settings may describe a bit group as one whole word. BLE whitening
		// words always are, under the ".init" name.
		first := fd.Name + "." + fd.BitFields[0].Name
		whitening := strings.Contains(cmdName, "BLE") && strings.Contains(fd.Name, "whitening")
		whole := whitening || !values.has(cmdName, first)

		var word uint64
		if whole {
			wordName := fd.Name
			if whitening {
				wordName += ".init"
			}
			word = values.number(cmdName, wordName)
		}

		fields := make([]*Field, 0, len(fd.BitFields))
		for _, bf := range fd.BitFields {
			name := fd.Name + "." + bf.Name
			f := &Field{name: name, kind: KindBitSubfield, ptrOffset: -1}
			if whole {
				lo, hi, err := descriptor.ParseRange(bf.BitIndex)
				if err != nil {
					return nil, err
				}
				f.def = bitfieldValue(word, lo, descriptor.RangeWidth(lo, hi))
			} else {
				f.def = values.number(cmdName, name)
			}
			fields = append(fields, f)
		}
		return fields, nil
	}
	return nil, fmt.Errorf("unsupported field kind %d", fd.Kind())
}

// bitfieldValue extracts width bits starting at bit offset lo
func bitfieldValue(word uint64, lo, width int) uint64 {
	if width >= 64 {
		return word >> uint(lo)
	}
	return (word >> uint(lo)) & (1<<uint(width) - 1)
}

// settingValues reads field values from the merged setting commands
type settingValues struct {
	commands []descriptor.SettingCommand
	log      *slog.Logger
}

func (s *settingValues) lookup(cmd, field string) (string, bool) {
	for i := range s.commands {
		if s.commands[i].Name != cmd {
			continue
		}
		f, ok := s.commands[i].Field(field)
		if !ok || f.Value == "" {
			return "", false
		}
		return f.Value, true
	}
	return "", false
}

func (s *settingValues) has(cmd, field string) bool {
	_, ok := s.lookup(cmd, field)
	return ok
}

// text returns the value text, "0" when the setting has none
func (s *settingValues) text(cmd, field string) string {
	if v, ok := s.lookup(cmd, field); ok {
		return v
	}
	return "0"
}

func (s *settingValues) number(cmd, field string) uint64 {
	text := s.text(cmd, field)
	v, err := descriptor.ParseValue(text)
	if err != nil {
		s.log.Warn("setting value is not numeric, using 0",
			slog.String("command", cmd),
			slog.String("field", field),
			slog.String("value", text))
		return 0
	}
	return v
}
