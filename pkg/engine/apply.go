package engine

import (
	"fmt"
	"log/slog"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// bleWhiteningInit is the whitener seed used when BLE whitening is on
const bleWhiteningInit = 0x51

// bleHeaderBytes is the part of a BLE packet length not counted in advLen
const bleHeaderBytes = 6

// applier writes instance values into the buffer. The first error sticks and
// turns every later write into a no-op. Keys absent from the instance are
// skipped.
type applier struct {
	e    *Engine
	inst Instance
	err  error
}

func (a *applier) ready(key string) bool {
	return a.err == nil && a.inst.Has(key)
}

func (a *applier) option(key, field string) {
	if !a.ready(key) {
		return
	}
	v, err := a.inst.String(key)
	if err != nil {
		a.err = err
		return
	}
	a.err = a.e.buf.SetByOption(key, field, v)
}

func (a *applier) number(key string, write func(float64)) {
	if !a.ready(key) {
		return
	}
	v, err := a.inst.Float(key)
	if err != nil {
		a.err = err
		return
	}
	write(v)
}

func (a *applier) unsigned(key string, write func(uint64)) {
	if !a.ready(key) {
		return
	}
	v, err := a.inst.Uint(key)
	if err != nil {
		a.err = err
		return
	}
	write(v)
}

func (a *applier) set(param, field string) func(uint64) {
	return func(v uint64) { a.e.buf.SetByParameter(param, field, v) }
}

// Apply writes a configuration instance into the command buffer, then
// updates the TX power fields and refreshes the override tables
func (e *Engine) Apply(inst Instance) error {
	if err := e.updateTarget(inst); err != nil {
		return err
	}

	a := &applier{e: e, inst: inst}
	switch e.group {
	case descriptor.GroupProp:
		e.applyProp(a)
	case descriptor.GroupBLE:
		e.applyBLE(a)
	case descriptor.GroupIEEE154:
		a.option("frequency", "frequency")
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGroup, e.group)
	}
	if a.err != nil {
		return fmt.Errorf("failed to apply configuration: %w", a.err)
	}

	if err := e.updateTxPower(inst); err != nil {
		return fmt.Errorf("failed to update TX power: %w", err)
	}

	txPower, err := e.ActiveTxPower(inst)
	if err != nil {
		if txPower, err = e.TxPower(); err != nil {
			return err
		}
	}
	if err := e.refreshOverrides(txPower); err != nil {
		return err
	}

	e.log.Debug("configuration applied", slog.Int("values", len(inst)))
	return nil
}

// updateTarget points the PA table at the board and amplifier in use
func (e *Engine) updateTarget(inst Instance) error {
	if e.pa == nil {
		return nil
	}

	target := e.device.Target
	if inst.Has("target") {
		t, err := inst.String("target")
		if err != nil {
			return err
		}
		target = t
	}

	highPA, err := e.instanceHighPA(inst)
	if err != nil {
		return err
	}
	e.pa.SelectTarget(target, e.group, highPA, e.prop2400)
	return nil
}

// instanceHighPA reports whether the instance enables a high PA the device
// actually has
func (e *Engine) instanceHighPA(inst Instance) (bool, error) {
	if !e.device.HighPA || !inst.Has("highPA") {
		return false, nil
	}
	return inst.Bool("highPA")
}

func (e *Engine) applyProp(a *applier) {
	a.number("deviation", func(kHz float64) {
		e.buf.SetByParameter("deviation", "modulation.deviation", rfcalc.EncodeDeviation(kHz))
	})
	a.number("symbolRate", func(kBaud float64) {
		word := rfcalc.SymbolRateWord(kBaud, e.buf.Value("symbolRate.preScale"))
		e.buf.SetByParameter("symbolRate", "symbolRate.rateWord", word)
	})
	a.option("rxFilterBw", "rxBw")
	a.option("whitening", "formatConf.whitenMode")
	a.number("carrierFrequency", func(mhz float64) {
		whole, fract := rfcalc.EncodeFrequency(mhz)
		e.buf.SetByParameter("carrierFrequency", "centerFreq", whole)
		e.buf.SetByParameter("carrierFrequency", "frequency", whole)
		e.buf.SetByParameter("carrierFrequency", "fractFreq", fract)
		e.buf.SetByParameter("carrierFrequency", "loDivider", rfcalc.LoDivider(mhz))
	})
	a.option("preambleCount", "preamConf.nPreamBytes")
	a.option("preambleMode", "preamConf.preamMode")
	a.option("syncWordLength", "formatConf.nSwBits")
	a.unsigned("packetLengthRx", a.set("packetLengthRx", "maxPktLen"))
	a.unsigned("syncWord", func(v uint64) {
		e.buf.SetByParameter("syncWord", "syncWord", v)
		e.buf.SetByParameter("syncWord", "syncWord0", v)
		e.buf.SetByParameter("syncWord", "syncWord1", 0)
	})
	a.option("addressMode", "pktConf.bChkAddress")
	a.unsigned("fixedPacketLength", a.set("fixedPacketLength", "pktLen"))
	a.option("packetLengthConfig", "pktConf.bVarLen")
	a.unsigned("address0", a.set("address0", "address0"))
	a.unsigned("address1", a.set("address1", "address1"))
}

func (e *Engine) applyBLE(a *applier) {
	if a.ready("whitening") {
		on, err := a.inst.Bool("whitening")
		if err != nil {
			a.err = err
			return
		}
		var seed uint64
		if on {
			seed = bleWhiteningInit
		}
		e.buf.SetByParameter("whitening", "whitening.init", seed)
		e.buf.SetByParameter("whitening", "whitening.bOverride", 1)
	}

	e.buf.SetDirect("condition.rule", 1)

	a.option("frequency", "frequency")
	if a.ready("frequency") {
		mhz, err := e.Frequency()
		if err != nil {
			a.err = err
			return
		}
		e.buf.SetByParameter("frequency", "channel", rfcalc.BLEChannel(mhz))
	}

	a.unsigned("packetLengthBle", func(n uint64) {
		if n < bleHeaderBytes {
			a.err = fmt.Errorf("%w: packetLengthBle=%d", ErrInvalidParameter, n)
			return
		}
		e.buf.SetByParameter("packetLengthBle", "advLen", n-bleHeaderBytes)
	})
}

// updateTxPower writes the TX power of the instance for the current band.
// With the high PA enabled txPower carries the 0xFFFF marker and the power is
// set through the overrides, in 2.4 GHz proprietary mode too.
func (e *Engine) updateTxPower(inst Instance) error {
	low, _, err := e.lowFreq()
	if err != nil {
		return err
	}
	highPA, err := e.instanceHighPA(inst)
	if err != nil {
		return err
	}

	switch {
	case highPA:
		e.buf.SetByParameter("txPower", "txPower", highPAMarker)
		key := "txPowerHi"
		if low && inst.Has("txPower433Hi") {
			key = "txPower433Hi"
		}
		if inst.Has(key) {
			dbm, err := inst.String(key)
			if err != nil {
				return err
			}
			e.hi.DBm = dbm
		}
		return nil

	case low && inst.Has("txPower433"):
		return e.setTxPower(inst, "txPower433")
	case e.prop2400:
		return e.setTxPower(inst, "txPower2400")
	}
	return e.setTxPower(inst, "txPower")
}

func (e *Engine) setTxPower(inst Instance, key string) error {
	if !inst.Has(key) {
		return nil
	}
	dbm, err := inst.String(key)
	if err != nil {
		return err
	}
	return e.buf.SetByOption(key, "txPower", dbm)
}
