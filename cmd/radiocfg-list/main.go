// radiocfg-list: List protocol groups, settings and command selections
//
// Without flags every setting of the configured bundle is listed per group.
// With -setting the commands of each selection (all, basic, advanced) and
// the configurables of the setting are printed. -generate-bundle writes the
// built-in bundle to a YAML file that can be edited and loaded back through
// the configuration's bundle path. -save-config writes the effective host
// configuration to the per-device path.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/herlein/radiocfg/pkg/config"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/engine"
	"github.com/herlein/radiocfg/pkg/logging"
	"github.com/herlein/radiocfg/pkg/patable"
	"github.com/herlein/radiocfg/pkg/profiles"
)

var (
	configPath     = flag.String("c", "", "Configuration file path (default: built-in defaults)")
	groupName      = flag.String("group", "", "Protocol group to list (default: all)")
	settingName    = flag.String("setting", "", "Show the command selections of this setting")
	generateBundle = flag.String("generate-bundle", "", "Write the built-in bundle to this YAML file")
	saveConfig     = flag.Bool("save-config", false, "Save the effective configuration to etc/radiocfg/<device>.yaml")
)

var groups = []descriptor.Group{descriptor.GroupProp, descriptor.GroupBLE, descriptor.GroupIEEE154}

func main() {
	flag.Parse()

	if *generateBundle != "" {
		if err := profiles.GenerateBundle(*generateBundle); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating bundle: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Bundle written to: %s\n", *generateBundle)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Logging)

	if *saveConfig {
		path := config.GetConfigPath(cfg.Device.Name)
		if err := config.SaveToFile(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to save configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration saved to: %s\n", path)
		return
	}

	bundle, err := profiles.Load(cfg.Bundle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected := groups
	if *groupName != "" {
		g, err := descriptor.ParseGroup(*groupName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		selected = []descriptor.Group{g}
	}

	if *settingName == "" {
		listSettings(bundle, selected)
		return
	}

	registry := engine.NewRegistry(engine.Deps{
		Source:  bundle,
		Device:  cfg.Device,
		PATable: patable.New(bundle.PATable),
		Logger:  logger,
	})
	if err := showSetting(registry, selected); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listSettings(bundle *descriptor.Bundle, selected []descriptor.Group) {
	for _, g := range selected {
		data, err := bundle.Group(g)
		if err != nil {
			fmt.Printf("%s: not in bundle\n\n", g)
			continue
		}
		fmt.Printf("%s (%d settings):\n", g, len(data.Settings))
		for _, s := range data.Settings {
			fmt.Printf("  %-20s %9.3f MHz  %s\n", s.Name, s.Frequency, s.LongName)
		}
		fmt.Println()
	}
}

// showSetting prints the setting from the first selected group that has it
func showSetting(registry *engine.Registry, selected []descriptor.Group) error {
	var lastErr error
	for _, g := range selected {
		e, err := registry.Get(g, *settingName)
		if err != nil {
			lastErr = err
			continue
		}

		fmt.Printf("%s (%s)\n", e.Name(), e.LongName())
		if d := e.Description(); d != "" {
			fmt.Printf("  %s\n", d)
		}
		for _, mode := range []string{engine.CommandsAll, engine.CommandsBasic, engine.CommandsAdvanced} {
			names, err := e.CommandList(mode)
			if err != nil {
				return err
			}
			fmt.Printf("  %-9s %s\n", mode+":", strings.Join(names, ", "))
		}

		fmt.Println("  Configurables:")
		for _, c := range e.Configurables().Flatten() {
			fmt.Printf("    %-20s %v\n", c.Name, c.Default)
		}
		return nil
	}
	return lastErr
}
