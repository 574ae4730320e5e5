// radiocfg-gen: Generate C initializers for a radio setting
//
// This tool builds the command buffer of a setting, optionally applies a
// configuration instance from a YAML file, and prints the RF mode, the
// register override tables and the command structs of the selected
// commands.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/herlein/radiocfg/pkg/config"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/engine"
	"github.com/herlein/radiocfg/pkg/logging"
	"github.com/herlein/radiocfg/pkg/patable"
	"github.com/herlein/radiocfg/pkg/profiles"
)

var (
	configPath   = flag.String("c", "", "Configuration file path (default: built-in defaults)")
	groupName    = flag.String("group", "prop", "Protocol group: prop, ble or ieee_154")
	settingName  = flag.String("setting", "", "Setting name (e.g., 868-2gfsk-50k)")
	instancePath = flag.String("instance", "", "Configuration instance YAML to apply before generating")
	mode         = flag.String("mode", engine.CommandsBasic, "Commands to generate: all, basic or advanced")
	outputFile   = flag.String("o", "", "Output file path (default: stdout)")
	verbose      = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if *settingName == "" {
		fmt.Fprintln(os.Stderr, "Usage: radiocfg-gen -setting <name> [-group <group>] [-instance <file>] [-mode <mode>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	logger := logging.Setup(cfg.Logging)

	e, err := newEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *instancePath != "" {
		inst, err := engine.LoadInstance(*instancePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load instance: %v\n", err)
			os.Exit(1)
		}
		if err := e.Apply(inst); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("instance applied", slog.String("path", *instancePath), slog.Int("keys", len(inst)))
	}

	var out io.Writer = os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := generate(out, e, cfg.CodeGen); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating code: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		fmt.Printf("Code written to: %s\n", *outputFile)
	}
}

func newEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	group, err := descriptor.ParseGroup(*groupName)
	if err != nil {
		return nil, err
	}

	bundle, err := profiles.Load(cfg.Bundle)
	if err != nil {
		return nil, err
	}

	registry := engine.NewRegistry(engine.Deps{
		Source:  bundle,
		Device:  cfg.Device,
		PATable: patable.New(bundle.PATable),
		Logger:  logger,
	})
	return registry.Get(group, *settingName)
}

func generate(w io.Writer, e *engine.Engine, gen config.CodeGenConfig) error {
	names, err := e.CommandList(*mode)
	if err != nil {
		return err
	}

	snap, err := e.Snapshot()
	if err != nil {
		return err
	}
	summary, err := e.ParameterSummary(snap)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "// %s\n", e.LongName())
	if d := e.Description(); d != "" {
		fmt.Fprintf(w, "// %s\n", d)
	}
	fmt.Fprintf(w, "//\n%s\n", summary)

	fmt.Fprintf(w, "RF_Mode %s%s = {\n%s\n};\n\n", gen.Symbols.CmdPrefix, e.Group(), e.GeneratePatch(gen.MultiProtocol))

	overrides, err := e.GenerateOverrides(gen.Symbols.Overrides, gen.CustomOverrides)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, overrides)

	for _, name := range names {
		cmd, err := e.GenerateCommand(name, gen.Symbols, gen.Legacy)
		if err != nil {
			return err
		}
		desc, err := e.CommandDescription(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "// %s\n", desc)
		if cmd.Params != "" {
			fmt.Fprintf(w, "rfc_%s_t %s = {\n%s\n};\n\n", cmd.ParTypeName, cmd.ParStructName, cmd.Params)
		}
		fmt.Fprintf(w, "rfc_%s_t %s = {\n%s\n};\n\n", name, gen.Symbols.CommandSymbol(name), cmd.Header)
	}
	return nil
}
