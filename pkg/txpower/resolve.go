package txpower

import (
	"fmt"
	"log/slog"
)

// OptionReader reads a field through a configurable's option list
type OptionReader interface {
	GetByOption(param, field string) (string, error)
}

// Context is the band and amplifier state TX power is resolved for
type Context struct {
	FreqMHz  float64
	LowFreq  bool // below the low band limit
	HighPA   bool // device has a high-power amplifier
	Prop2400 bool // 2.4 GHz proprietary mode
}

// Resolver refreshes the cache from the command buffer and the PA table
type Resolver struct {
	Cache  *Cache
	HighPA *HighPA
	Table  PATable
	Logger *slog.Logger
}

// Resolve updates the cache slot(s) for the current context and returns all
// slots
func (r *Resolver) Resolve(ctx Context, src OptionReader) (Values, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	switch {
	case ctx.HighPA && !ctx.Prop2400:
		if r.Table == nil {
			return Values{}, fmt.Errorf("%w: no PA table", ErrNotAvailable)
		}

		hiSlot, stdSlot, stdParam := SlotHigh, SlotDefault, "txPower"
		if ctx.LowFreq {
			hiSlot, stdSlot, stdParam = Slot433Hi, Slot433, "txPower433"
		}

		if entry, ok := r.Table.Lookup(ctx.FreqMHz, true, r.HighPA.DBm); ok {
			r.HighPA.DBm, r.HighPA.Raw = entry.DBm, entry.Raw
			r.Cache.Set(hiSlot, entry.DBm)
		} else {
			log.Warn("high PA power not in table, keeping cached value",
				slog.Float64("freq_mhz", ctx.FreqMHz),
				slog.String("dbm", r.HighPA.DBm))
			r.HighPA.DBm = r.Cache.Get(hiSlot)
			r.HighPA.Raw = RawUnavailable
		}

		dbm, err := src.GetByOption(stdParam, "txPower")
		if err != nil {
			return Values{}, err
		}
		entry, ok := r.Table.Lookup(ctx.FreqMHz, false, dbm)
		if !ok {
			return Values{}, fmt.Errorf("%w: %s dBm at %.3f MHz", ErrNotAvailable, dbm, ctx.FreqMHz)
		}
		r.Cache.Set(stdSlot, entry.DBm)

	case ctx.LowFreq:
		if err := r.fromOption(Slot433, src); err != nil {
			return Values{}, err
		}

	case ctx.Prop2400:
		if err := r.fromOption(Slot2400, src); err != nil {
			return Values{}, err
		}

	default:
		if err := r.fromOption(SlotDefault, src); err != nil {
			return Values{}, err
		}
	}

	return r.Cache.Values(), nil
}

func (r *Resolver) fromOption(s Slot, src OptionReader) error {
	dbm, err := src.GetByOption(s.Configurable(), "txPower")
	if err != nil {
		return err
	}
	r.Cache.Set(s, dbm)
	return nil
}
