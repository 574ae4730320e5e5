// Package patable is a table-driven power-amplifier lookup built from the PA
// bands of a descriptor bundle.
package patable

import (
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/txpower"
)

// Table looks up PA settings by frequency, amplifier and dBm
type Table struct {
	bands []descriptor.PABand

	target   string
	group    descriptor.Group
	highPA   bool
	prop2400 bool
}

// New returns a table over the given bands. Bands are searched in order.
func New(bands []descriptor.PABand) *Table {
	return &Table{bands: bands}
}

func (t *Table) band(mhz float64, highPA bool, match func(descriptor.PABand) bool) (*descriptor.PABand, bool) {
	for i := range t.bands {
		b := &t.bands[i]
		if b.HighPA != highPA || mhz < b.MinMHz || mhz > b.MaxMHz {
			continue
		}
		if match != nil && !match(*b) {
			continue
		}
		return b, true
	}
	return nil, false
}

// ValueList returns the selectable powers of the band, highest first as
// listed in the table
func (t *Table) ValueList(mhz float64, highPA, prop2400 bool) []descriptor.Option {
	b, ok := t.band(mhz, highPA, func(b descriptor.PABand) bool { return b.Prop2400 == prop2400 })
	if !ok {
		return nil
	}
	opts := make([]descriptor.Option, len(b.Levels))
	for i, level := range b.Levels {
		opts[i] = descriptor.Option{Name: level.DBm, Key: level.Raw}
	}
	return opts
}

// Lookup returns the PA entry for a dBm value
func (t *Table) Lookup(mhz float64, highPA bool, dbm string) (txpower.Entry, bool) {
	b, ok := t.band(mhz, highPA, nil)
	if !ok {
		return txpower.Entry{}, false
	}
	for _, level := range b.Levels {
		if level.DBm == dbm {
			return txpower.Entry{DBm: level.DBm, Raw: level.Raw}, true
		}
	}
	return txpower.Entry{}, false
}

// SelectTarget records the selected board and amplifier
func (t *Table) SelectTarget(target string, group descriptor.Group, highPA, prop2400 bool) {
	t.target, t.group, t.highPA, t.prop2400 = target, group, highPA, prop2400
}

// Target returns the last selected board
func (t *Table) Target() string {
	return t.target
}
