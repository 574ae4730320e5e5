// Package parammap builds the lookup from user-facing parameter names to the
// RF commands each parameter is allowed to modify.
package parammap

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// aliases rewrites mapping names that differ from the configurable name
var aliases = map[string]string{
	"CARRIER_FREQUENCY": "CARRIERFREQUENCY",
}

// Map maps an uppercased parameter name to the commands it targets
type Map map[string][]string

// Build creates the parameter map from mapping entries. Each entry lists
// comma-separated names that share the same command list.
func Build(entries []descriptor.MappingEntry) Map {
	m := make(Map)
	for _, entry := range entries {
		for _, name := range strings.Split(entry.Names, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if alias, ok := aliases[name]; ok {
				name = alias
			}
			m[strings.ToUpper(name)] = append([]string(nil), entry.Commands...)
		}
	}
	return m
}

// Commands returns the commands mapped to a parameter. The lookup is case
// insensitive.
func (m Map) Commands(param string) []string {
	return m[strings.ToUpper(param)]
}

// Targets reports whether a parameter is mapped to the command
func (m Map) Targets(param, cmd string) bool {
	return slices.Contains(m.Commands(param), cmd)
}
