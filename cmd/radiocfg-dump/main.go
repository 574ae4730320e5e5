// radiocfg-dump: Dump the live configuration of a radio setting
//
// This tool builds the command buffer of a setting, optionally applies a
// configuration instance, and prints the configurable values read back from
// the buffer. The snapshot can be saved as YAML and later applied with
// radiocfg-gen -instance.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/herlein/radiocfg/pkg/config"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/engine"
	"github.com/herlein/radiocfg/pkg/logging"
	"github.com/herlein/radiocfg/pkg/patable"
	"github.com/herlein/radiocfg/pkg/profiles"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

func main() {
	configPath := flag.String("c", "", "Configuration file path (default: built-in defaults)")
	groupName := flag.String("group", "prop", "Protocol group: prop, ble or ieee_154")
	settingName := flag.String("setting", "", "Setting name (e.g., 868-2gfsk-50k)")
	instancePath := flag.String("instance", "", "Configuration instance YAML to apply first")
	outputFile := flag.String("o", "", "Save the snapshot to this YAML file")
	yamlOutput := flag.Bool("yaml", false, "Output the snapshot to stdout as YAML")
	fields := flag.Bool("fields", false, "Also print every buffer field")
	flag.Parse()

	if *settingName == "" {
		fmt.Fprintln(os.Stderr, "Usage: radiocfg-dump -setting <name> [-group <group>] [-instance <file>] [-o <file>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Logging)

	group, err := descriptor.ParseGroup(*groupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bundle, err := profiles.Load(cfg.Bundle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := engine.NewRegistry(engine.Deps{
		Source:  bundle,
		Device:  cfg.Device,
		PATable: patable.New(bundle.PATable),
		Logger:  logger,
	})
	e, err := registry.Get(group, *settingName)
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
		logger.Debug("instance applied", slog.String("path", *instancePath))
	}

	snap, err := e.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read configuration: %v\n", err)
		os.Exit(1)
	}

	if *yamlOutput {
		data, err := yaml.Marshal(snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to marshal snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		return
	}

	if *outputFile != "" {
		if err := engine.SaveInstance(snap, *outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to save snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot saved to: %s\n", *outputFile)
	}

	if err := printSummary(e, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *fields {
		if err := printFields(e); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printSummary(e *engine.Engine, snap engine.Instance) error {
	freq, err := e.FrequencyText()
	if err != nil {
		return err
	}
	txPower, err := e.TxPower()
	if err != nil {
		return err
	}

	fmt.Printf("Setting:      %s (%s)\n", e.Name(), e.LongName())
	fmt.Printf("  Group:      %s\n", e.Group())
	fmt.Printf("  Band:       %s MHz\n", e.FrequencyBand())
	fmt.Printf("  Frequency:  %s MHz\n", freq)
	fmt.Printf("  TX Power:   %s dBm\n", txPower)
	if e.Group() == descriptor.GroupProp {
		fmt.Printf("  Symbol Rate: %s kBaud\n", rfcalc.FormatFixed(e.SymbolRate(), 5))
		fmt.Printf("  Deviation:  %s kHz\n", rfcalc.FormatFixed(e.Deviation(), 3))
		fmt.Printf("  Sync Word:  %s\n", rfcalc.Hex(e.SyncWord(), 8))
	}

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Println("\nConfigurables:")
	for _, k := range keys {
		fmt.Printf("  %-20s %v\n", k, snap[k])
	}

	summary, err := e.ParameterSummary(snap)
	if err != nil {
		return err
	}
	fmt.Printf("\nParameter Summary:\n%s", summary)
	return nil
}

func printFields(e *engine.Engine) error {
	names, err := e.CommandList(engine.CommandsAll)
	if err != nil {
		return err
	}
	for _, name := range names {
		fields, err := e.Fields(name)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s:\n", name)
		for _, f := range fields {
			marker := ""
			if f.Overridden() {
				marker = " *"
			}
			fmt.Printf("  %-32s %s%s\n", f.Name(), rfcalc.Hex(f.Value(), f.Width()), marker)
		}
	}
	return nil
}
