// Package codegen renders command buffers as C struct-initializer text.
package codegen

import (
	"strings"

	"github.com/herlein/radiocfg/pkg/cmdbuf"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// Symbols names the generated C symbols
type Symbols struct {
	// CmdPrefix prefixes every command symbol, e.g. "RF_"
	CmdPrefix string `yaml:"cmdPrefix"`
	// Overrides is the override table prefix, e.g. "pOverrides"
	Overrides string `yaml:"overrides"`
	// Commands maps a camel-cased command name (cmdPropRadioDivSetup) to a
	// custom symbol
	Commands map[string]string `yaml:"commands,omitempty"`
}

// CommandSymbol returns the symbol of a command
func (s Symbols) CommandSymbol(cmdName string) string {
	key := CamelCase(cmdName)
	if sym, ok := s.Commands[key]; ok && sym != "" {
		return sym
	}
	return s.CmdPrefix + key
}

// CamelCase converts CMD_PROP_RADIO_DIV_SETUP to cmdPropRadioDivSetup
func CamelCase(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' || r == '-' }) {
		word = strings.ToLower(word)
		if b.Len() > 0 {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		b.WriteString(word)
	}
	return b.String()
}

// CommandInput is one buffer command and the naming context to render it
type CommandInput struct {
	Name          string
	ID            string
	Fields        []*cmdbuf.Field
	Symbols       Symbols
	OverrideNames []string // override structs that exist
	Legacy        bool     // use the catalog pointer symbol for pParams
}

// Command is the rendered initializer of one command
type Command struct {
	// Header holds the command fields
	Header string
	// Params holds the fields of the parameter struct, empty when the
	// command has none
	Params string

	ParStructName string
	ParTypeName   string
}

type line struct {
	field   string
	value   string
	comment string
}

// render joins initializer lines; every line but the last ends with a comma
func render(lines []line) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		s := "    ." + l.field + " = " + l.value
		if i < len(lines)-1 {
			s += ","
		}
		out[i] = s + l.comment
	}
	return strings.Join(out, "\n")
}

// GenerateCommand renders the initializer of a command. Fields at or past
// the parameter struct offset of a pParams pointer go to Params.
func GenerateCommand(in CommandInput) Command {
	var out Command
	if len(in.Fields) == 0 {
		return out
	}

	header := []line{{field: in.Fields[0].Name(), value: in.ID}}
	var params []line

	parOffset, hasPar, inPar := 0, false, false
	for _, f := range in.Fields[1:] {
		if off, isWord := f.ByteOffset(); hasPar && isWord && off >= parOffset {
			inPar = true
		}

		l := line{field: f.Name()}
		switch {
		case f.IsPointer() && strings.Contains(f.Name(), "pRegOverride"):
			sym := strings.Replace(f.Name(), "pRegOverride", in.Symbols.Overrides, 1)
			l.value = "0"
			for _, name := range in.OverrideNames {
				if name == sym {
					l.value = sym
					break
				}
			}

		case f.IsPointer() && strings.Contains(f.Name(), "pParams"):
			parName := f.Symbol()
			if !in.Legacy {
				parName = paramStructName(in.Name, in.Symbols)
			}
			l.value = "&" + parName
			if off, ok := f.PtrOffset(); ok {
				parOffset, hasPar = off, true
			}
			out.ParStructName = parName
			out.ParTypeName = f.Symbol()

		case f.IsPointer():
			l.value = pointerValue(f)

		case strings.Contains(f.Name(), "txPower"):
			l.value = rfcalc.Hex(f.Value(), f.Width())

		default:
			l.value = rfcalc.Hex(f.Value(), f.Width())
			if f.Overridden() {
				l.comment = " // modified (default: " + rfcalc.Hex(f.Default(), f.Width()) + ")"
			}
		}

		if inPar {
			params = append(params, l)
		} else {
			header = append(header, l)
		}
	}

	out.Header = render(header)
	out.Params = render(params)
	return out
}

// paramStructName derives the parameter struct symbol from the command
// symbol: RF_cmdBleAdvNc becomes bleAdvPar
func paramStructName(cmdName string, syms Symbols) string {
	key := CamelCase(cmdName)
	name := strings.Replace(syms.CommandSymbol(cmdName), syms.CmdPrefix+"cmd", "", 1) + "Par"
	name = strings.Replace(name, "Ble", "ble", 1)
	switch key {
	case "cmdBle5GenericRx":
		name = strings.Replace(name, "ble5", "ble", 1)
	case "cmdBleAdvNc":
		name = strings.Replace(name, "AdvNc", "Adv", 1)
	}
	return name
}

func pointerValue(f *cmdbuf.Field) string {
	if f.Symbol() != "" {
		return f.Symbol()
	}
	if f.Value() == 0 {
		return "0"
	}
	return rfcalc.Hex(f.Value(), f.Width())
}
