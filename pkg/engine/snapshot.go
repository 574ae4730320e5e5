package engine

import (
	"fmt"
	"strconv"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
	"github.com/herlein/radiocfg/pkg/txpower"
)

// highPAMarker is written to txPower while the high PA drives the output
const highPAMarker = 0xFFFF

// FrequencyText returns the carrier frequency in MHz as displayed: five
// decimals for proprietary settings, the option name otherwise
func (e *Engine) FrequencyText() (string, error) {
	if e.group == descriptor.GroupProp {
		f := rfcalc.DecodeFrequency(e.buf.Value("frequency"), e.buf.Value("fractFreq"))
		return rfcalc.FormatFixed(f, 5), nil
	}
	return e.buf.GetByOption("frequency", "frequency")
}

// Frequency returns the carrier frequency in MHz
func (e *Engine) Frequency() (float64, error) {
	text, err := e.FrequencyText()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("frequency %q: %w", text, err)
	}
	return f, nil
}

func (e *Engine) lowFreq() (bool, float64, error) {
	f, err := e.Frequency()
	if err != nil {
		return false, 0, err
	}
	return f < e.device.LowFreqLimit, f, nil
}

// SymbolRate returns the symbol rate in kBaud
func (e *Engine) SymbolRate() float64 {
	return rfcalc.SymbolRate(e.buf.Value("symbolRate.rateWord"), e.buf.Value("symbolRate.preScale"))
}

// Deviation returns the frequency deviation in kHz
func (e *Engine) Deviation() float64 {
	return rfcalc.DecodeDeviation(e.buf.Value("modulation.deviation"))
}

// SyncWord returns the receive sync word
func (e *Engine) SyncWord() uint64 {
	if v, ok := e.buf.Get("CMD_PROP_RX.syncWord"); ok {
		return v
	}
	if v, ok := e.buf.Get("CMD_PROP_RX_ADV.syncWord0"); ok {
		return v
	}
	return e.buf.Value("syncWord")
}

// rounded mirrors the displayed precision of a value
func rounded(v float64, decimals int) float64 {
	f, _ := strconv.ParseFloat(rfcalc.FormatFixed(v, decimals), 64)
	return f
}

// highPAActive reports whether the buffer selects the high PA
func (e *Engine) highPAActive() bool {
	return e.device.HighPA && e.buf.Value("txPower") == highPAMarker
}

// TxPowerValues refreshes the TX power cache from the buffer and returns
// every slot
func (e *Engine) TxPowerValues() (txpower.Values, error) {
	low, f, err := e.lowFreq()
	if err != nil {
		return txpower.Values{}, err
	}
	return e.resolver.Resolve(txpower.Context{
		FreqMHz:  f,
		LowFreq:  low,
		HighPA:   e.device.HighPA,
		Prop2400: e.prop2400,
	}, e.buf)
}

// TxPower returns the TX power (dBm) of the active slot
func (e *Engine) TxPower() (string, error) {
	values, err := e.TxPowerValues()
	if err != nil {
		return "", err
	}
	low, _, err := e.lowFreq()
	if err != nil {
		return "", err
	}
	return values.Get(txpower.Select(e.highPAActive(), e.prop2400, low)), nil
}

// ActiveTxPower returns the TX power an instance selects for the current
// band and amplifier
func (e *Engine) ActiveTxPower(inst Instance) (string, error) {
	low, _, err := e.lowFreq()
	if err != nil {
		return "", err
	}
	highPA, err := e.instanceHighPA(inst)
	if err != nil {
		return "", err
	}
	return inst.String(txpower.Select(highPA, e.prop2400, low).Configurable())
}

// refreshOverrides rebuilds the override tables of this setting and feeds
// them the TX power
func (e *Engine) refreshOverrides(txPower string) error {
	f, err := e.Frequency()
	if err != nil {
		return err
	}
	e.ovr.Init(e.layout.Commands, e.group)
	e.ovr.UpdateTxPower(txPower, f, e.prop2400)
	return nil
}

// Snapshot returns the live configuration read back from the buffer, in the
// shape of a configuration instance. It refreshes the TX power cache and the
// override tables but leaves the buffer untouched.
func (e *Engine) Snapshot() (Instance, error) {
	values, err := e.TxPowerValues()
	if err != nil {
		return nil, err
	}
	active, err := e.TxPower()
	if err != nil {
		return nil, err
	}
	if err := e.refreshOverrides(active); err != nil {
		return nil, err
	}

	out := Instance{"txPower": values.Default}
	if e.device.HighPA {
		out["txPowerHi"] = values.High
	}

	switch e.group {
	case descriptor.GroupProp:
		err = e.snapshotProp(out, values)
	case descriptor.GroupBLE:
		err = e.snapshotBLE(out)
	case descriptor.GroupIEEE154:
		err = e.snapshotIEEE(out)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownGroup, e.group)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// snapshotOptions reads option-backed configurables into out
func (e *Engine) snapshotOptions(out Instance, pairs ...[2]string) error {
	for _, p := range pairs {
		name, err := e.buf.GetByOption(p[0], p[1])
		if err != nil {
			return err
		}
		out[p[0]] = name
	}
	return nil
}

func (e *Engine) snapshotProp(out Instance, values txpower.Values) error {
	err := e.snapshotOptions(out,
		[2]string{"whitening", "formatConf.whitenMode"},
		[2]string{"rxFilterBw", "rxBw"},
		[2]string{"syncWordLength", "formatConf.nSwBits"},
		[2]string{"preambleCount", "preamConf.nPreamBytes"},
		[2]string{"preambleMode", "preamConf.preamMode"},
	)
	if err != nil {
		return err
	}

	f, err := e.Frequency()
	if err != nil {
		return err
	}

	out["txPower433"] = values.T433
	out["symbolRate"] = rounded(e.SymbolRate(), 5)
	out["deviation"] = rounded(e.Deviation(), 3)
	out["carrierFrequency"] = f
	out["packetLengthRx"] = int(e.buf.Value("maxPktLen"))
	out["syncWord"] = int(e.SyncWord())
	if e.prop2400 {
		out["txPower2400"] = values.T2400
	}

	if e.buf.IsUsed("CMD_PROP_RX") {
		err := e.snapshotOptions(out,
			[2]string{"packetLengthConfig", "pktConf.bVarLen"},
			[2]string{"addressMode", "pktConf.bChkAddress"},
		)
		if err != nil {
			return err
		}
		out["fixedPacketLength"] = int(e.buf.Value("pktLen"))
		out["address0"] = int(e.buf.Value("address0"))
		out["address1"] = int(e.buf.Value("address1"))
	}
	return nil
}

func (e *Engine) snapshotBLE(out Instance) error {
	if err := e.snapshotOptions(out, [2]string{"frequency", "frequency"}); err != nil {
		return err
	}
	out["whitening"] = e.buf.Value("whitening.init") != 0
	return nil
}

func (e *Engine) snapshotIEEE(out Instance) error {
	return e.snapshotOptions(out, [2]string{"frequency", "frequency"})
}
