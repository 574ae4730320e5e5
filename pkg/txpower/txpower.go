// Package txpower resolves transmit power for the active band and power
// amplifier. Resolved values are kept in a Cache that is shared by every
// engine of the process.
package txpower

import (
	"errors"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// ErrNotAvailable indicates the requested power has no PA table entry
var ErrNotAvailable = errors.New("TX power not available")

// Unset marks a cache slot that has not been resolved yet
const Unset = "-1"

// RawUnavailable is the raw high-PA encoding when no table entry matches
const RawUnavailable = "0xFFFF"

// Slot identifies one TX power cache slot
type Slot int

// Cache slots
const (
	SlotDefault Slot = iota // standard PA, sub-GHz high band
	Slot433                 // standard PA, low band
	Slot2400                // 2.4 GHz proprietary
	SlotHigh                // high PA, sub-GHz high band
	Slot433Hi               // high PA, low band
)

// Configurable returns the configurable that carries the slot's value
func (s Slot) Configurable() string {
	switch s {
	case Slot433:
		return "txPower433"
	case Slot2400:
		return "txPower2400"
	case SlotHigh:
		return "txPowerHi"
	case Slot433Hi:
		return "txPower433Hi"
	}
	return "txPower"
}

// Values is a snapshot of all slots
type Values struct {
	Default string
	T433    string
	T2400   string
	High    string
	T433Hi  string
}

// Get returns the value of a slot
func (v Values) Get(s Slot) string {
	switch s {
	case Slot433:
		return v.T433
	case Slot2400:
		return v.T2400
	case SlotHigh:
		return v.High
	case Slot433Hi:
		return v.T433Hi
	}
	return v.Default
}

// Cache holds the last resolved TX power per slot
type Cache struct {
	values Values
}

// NewCache returns a cache with every slot unset
func NewCache() *Cache {
	return &Cache{values: Values{
		Default: Unset,
		T433:    Unset,
		T2400:   Unset,
		High:    Unset,
		T433Hi:  Unset,
	}}
}

// Get returns the cached value of a slot
func (c *Cache) Get(s Slot) string {
	return c.values.Get(s)
}

// Set stores the value of a slot
func (c *Cache) Set(s Slot, v string) {
	switch s {
	case Slot433:
		c.values.T433 = v
	case Slot2400:
		c.values.T2400 = v
	case SlotHigh:
		c.values.High = v
	case Slot433Hi:
		c.values.T433Hi = v
	default:
		c.values.Default = v
	}
}

// Values returns a copy of every slot
func (c *Cache) Values() Values {
	return c.values
}

// HighPA is the working state of the high-power amplifier: the last
// requested dBm and its raw encoding
type HighPA struct {
	DBm string
	Raw string
}

// NewHighPA returns the initial high-PA state
func NewHighPA() *HighPA {
	return &HighPA{Raw: "0"}
}

// Entry is one PA table row
type Entry struct {
	DBm string
	Raw string
}

// PATable is the device power-amplifier table
type PATable interface {
	// ValueList returns the selectable powers for a band, as options whose
	// name is the dBm value and whose key is the raw encoding
	ValueList(mhz float64, highPA, prop2400 bool) []descriptor.Option
	// Lookup returns the entry for a dBm value at a frequency
	Lookup(mhz float64, highPA bool, dbm string) (Entry, bool)
	// SelectTarget records the board/PA combination used for lookups
	SelectTarget(target string, group descriptor.Group, highPA, prop2400 bool)
}

// Select returns the slot that is authoritative for the given state
func Select(highPA, prop2400, lowFreq bool) Slot {
	switch {
	case prop2400:
		return Slot2400
	case highPA && lowFreq:
		return Slot433Hi
	case highPA:
		return SlotHigh
	case lowFreq:
		return Slot433
	}
	return SlotDefault
}
