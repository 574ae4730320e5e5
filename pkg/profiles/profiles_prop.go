package profiles

import (
	"fmt"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// Proprietary PHY settings for the sub-GHz bands and 2.4 GHz

// Modulation types of the modulation.modType subfield
const (
	ModFSK  = 0x0
	ModGFSK = 0x1
	ModOOK  = 0x2
)

// Whitening modes of the formatConf.whitenMode subfield
const (
	WhitenNone    = 0x0
	WhitenCC1101  = 0x1
	WhitenPN9     = 0x2
	WhitenIEEE154 = 0x4
)

// symbolRatePrescaler is used by every built-in proprietary setting
const symbolRatePrescaler = 0xF

// defaultSyncWord is the sync word of the built-in proprietary settings
const defaultSyncWord = 0x930B51DE

// PropCatalog returns the proprietary command catalog
func PropCatalog() []descriptor.CommandDef {
	return []descriptor.CommandDef{
		command("CMD_PROP_RADIO_DIV_SETUP", "0x3807", "Proprietary Mode Radio Setup Command for All Frequency Bands",
			bits("modulation", "14..15",
				bit("modType", "0..2"),
				bit("deviation", "3..13"),
				bit("deviationStepSz", "14..15")),
			bits("symbolRate", "16..19",
				bit("preScale", "0..3"),
				bit("rateWord", "12..31")),
			word("rxBw", "20"),
			bits("preamConf", "21",
				bit("nPreamBytes", "0..5"),
				bit("preamMode", "6..7")),
			bits("formatConf", "22..23",
				bit("nSwBits", "0..5"),
				bit("bBitReversal", "6"),
				bit("bMsbFirst", "7"),
				bit("fecMode", "8..11"),
				bit("whitenMode", "13..15")),
			radioConfig("24..25"),
			word("txPower", "26..27"),
			pointer("pRegOverride", "28..31"),
			word("centerFreq", "32..33"),
			word("intFreq", "34..35"),
			word("loDivider", "36")),
		fsCommand(),
		command("CMD_PROP_TX", "0x3801", "Proprietary Mode Transmit Command",
			bits("pktConf", "14",
				bit("bFsOff", "0"),
				bit("bUseCrc", "3"),
				bit("bVarLen", "4")),
			word("pktLen", "15"),
			word("syncWord", "16..19"),
			pointer("pPkt", "20..23")),
		command("CMD_PROP_RX", "0x3802", "Proprietary Mode Receive Command",
			bits("pktConf", "14",
				bit("bFsOff", "0"),
				bit("bRepeatOk", "1"),
				bit("bRepeatNok", "2"),
				bit("bUseCrc", "3"),
				bit("bVarLen", "4"),
				bit("bChkAddress", "5"),
				bit("endType", "6"),
				bit("filterOp", "7")),
			bits("rxConf", "15",
				bit("bAutoFlushIgnored", "0"),
				bit("bAutoFlushCrcErr", "1"),
				bit("bIncludeHdr", "3"),
				bit("bIncludeCrc", "4"),
				bit("bAppendRssi", "5"),
				bit("bAppendTimestamp", "6"),
				bit("bAppendStatus", "7")),
			word("syncWord", "16..19"),
			word("maxPktLen", "20"),
			word("address0", "21"),
			word("address1", "22"),
			trigger("endTrigger", "23"),
			word("endTime", "24..27"),
			pointer("pQueue", "28..31"),
			pointer("pOutput", "32..35")),
		command("CMD_TX_TEST", "0x0808", "Transmitter Test Command",
			bits("config", "14",
				bit("bUseCw", "0"),
				bit("bFsOff", "1"),
				bit("whitenMode", "2..3")),
			word("dummy0", "15"),
			word("txWord", "16..17"),
			word("dummy1", "18"),
			trigger("endTrigger", "19"),
			word("syncWord", "20..23"),
			word("endTime", "24..27")),
		command("CMD_RX_TEST", "0x0807", "Receiver Test Command",
			bits("config", "14",
				bit("bEnaFifo", "0"),
				bit("bFsOff", "1"),
				bit("bNoSync", "2")),
			trigger("endTrigger", "15"),
			word("syncWord", "16..19"),
			word("endTime", "20..23")),
	}
}

// PropGroup returns the proprietary group descriptors
func PropGroup() *descriptor.GroupData {
	return &descriptor.GroupData{
		Catalog:   PropCatalog(),
		Mapping:   propMapping(),
		FrontEnds: propFrontEnds(),
		Schema:    propSchema(),
		Settings: []descriptor.Setting{
			*New868GFSK(50, 25),
			*New868GFSK(100, 50),
			*New433GFSK(50, 25),
			*New2400GFSK(250, 125),
		},
		TestFunctions: propTestFunctions(),
	}
}

// NewPropGFSK creates a proprietary 2-GFSK setting for a carrier frequency,
// symbol rate and deviation
func NewPropGFSK(band string, mhz, kBaud, devKHz float64) *descriptor.Setting {
	whole, _ := rfcalc.EncodeFrequency(mhz)

	return &descriptor.Setting{
		Name:        fmt.Sprintf("%s-2gfsk-%s", band, formatDataRate(kBaud)),
		LongName:    fmt.Sprintf("%s MHz 2-GFSK %s kbps", band, rfcalc.FormatFixed(kBaud, 0)),
		Description: fmt.Sprintf("%.3f MHz, 2-GFSK at %s kbps with %s kHz deviation", mhz, rfcalc.FormatFixed(kBaud, 0), rfcalc.FormatFixed(devKHz, 1)),
		Frequency:   mhz,
		Commands: []descriptor.SettingCommand{
			{
				Name: "CMD_PROP_RADIO_DIV_SETUP",
				Fields: []descriptor.SettingField{
					field("condition.rule", 1),
					field("modulation.modType", ModGFSK),
					field("modulation.deviation", rfcalc.EncodeDeviation(devKHz)),
					field("modulation.deviationStepSz", 0),
					field("symbolRate.preScale", symbolRatePrescaler),
					field("symbolRate.rateWord", rfcalc.SymbolRateWord(kBaud, symbolRatePrescaler)),
					field("rxBw", rxBwFor(kBaud)),
					field("preamConf.nPreamBytes", 4),
					field("preamConf.preamMode", 0),
					// formatConf as one word: 32 sync bits, IEEE 802.15.4g whitening
					field("formatConf", 0x8020),
					field("config.frontEndMode", 0),
					field("config.biasMode", 1),
					text("txPower", "0xA73F"),
					field("centerFreq", whole),
					field("intFreq", 0x8000),
					field("loDivider", rfcalc.LoDivider(mhz)),
				},
				Overrides: []descriptor.OverrideList{
					overrides("pRegOverride",
						entry("0x00F388D3", "Synth: Set recommended RTRIM to 7"),
						entry("HW_REG_OVERRIDE(0x4038,0x003A)", "Synth: Set Fref to 4 MHz"),
						entry("ADI_HALFREG_OVERRIDE(0,4,0xF,0x7)", "Rx: Set AGC reference level to 0x1A"),
						entry("0x000288A3", "Tx: Configure PA ramping")),
					overrides("pRegOverrideTx20",
						entry("TX20_POWER_OVERRIDE(0x001B8ED2)", "Tx: Set PA trim for high PA"),
						entry("0x000388A3", "Tx: Configure high PA ramping")),
				},
			},
			use("CMD_FS", fsFields(mhz)...),
			use("CMD_PROP_TX",
				field("condition.rule", 1),
				field("pktConf.bFsOff", 0),
				field("pktConf.bUseCrc", 1),
				field("pktConf.bVarLen", 1),
				field("pktLen", 0x14),
				field("syncWord", defaultSyncWord)),
			use("CMD_PROP_RX",
				field("condition.rule", 1),
				field("pktConf.bFsOff", 0),
				field("pktConf.bRepeatOk", 0),
				field("pktConf.bUseCrc", 1),
				field("pktConf.bVarLen", 1),
				field("rxConf.bAutoFlushIgnored", 1),
				field("rxConf.bAutoFlushCrcErr", 1),
				field("rxConf.bAppendRssi", 1),
				field("rxConf.bAppendStatus", 1),
				field("syncWord", defaultSyncWord),
				field("maxPktLen", 0xFF),
				field("address0", 0xAA),
				field("address1", 0xBB),
				field("endTrigger.triggerType", 1)),
		},
		Patch: &descriptor.Patch{
			Define: "RF_MODE_PROPRIETARY_SUB_1",
			Cpe:    "rf_patch_cpe_prop",
		},
		TestFunctions: []string{"txTest", "rxTest"},
	}
}

// New868GFSK creates an 868 MHz 2-GFSK setting
func New868GFSK(kBaud, devKHz float64) *descriptor.Setting {
	return NewPropGFSK("868", 868.0, kBaud, devKHz)
}

// New433GFSK creates a 433.92 MHz 2-GFSK setting. It runs with the default
// radio mode and no patch.
func New433GFSK(kBaud, devKHz float64) *descriptor.Setting {
	s := NewPropGFSK("433", 433.92, kBaud, devKHz)
	s.Patch = nil
	if setup, ok := s.Command("CMD_PROP_RADIO_DIV_SETUP"); ok {
		if f, ok := setup.Field("txPower"); ok {
			f.Value = "0x32C6"
		}
	}
	return s
}

// New2400GFSK creates a 2440 MHz proprietary 2-GFSK setting
func New2400GFSK(kBaud, devKHz float64) *descriptor.Setting {
	s := NewPropGFSK("2440", 2440.0, kBaud, devKHz)
	s.Patch = &descriptor.Patch{
		Define: "RF_MODE_PROPRIETARY_2_4",
		Cpe:    "rf_patch_cpe_prop",
		Mce:    "rf_patch_mce_genfsk",
		Rfe:    "rf_patch_rfe_genfsk",
	}
	if setup, ok := s.Command("CMD_PROP_RADIO_DIV_SETUP"); ok {
		if f, ok := setup.Field("txPower"); ok {
			f.Value = "0x941E"
		}
		setup.Overrides = setup.Overrides[:1]
	}
	return s
}

// rxBwFor picks the receive filter for a symbol rate
func rxBwFor(kBaud float64) uint64 {
	switch {
	case kBaud <= 50:
		return 0x52
	case kBaud <= 100:
		return 0x55
	}
	return 0x59
}

func propMapping() []descriptor.MappingEntry {
	return []descriptor.MappingEntry{
		{Names: "txPower, txPower433, txPower2400, deviation, symbolRate, rxFilterBw, whitening, preambleCount, preambleMode, syncWordLength",
			Commands: []string{"CMD_PROP_RADIO_DIV_SETUP"}},
		{Names: "CARRIER_FREQUENCY", Commands: []string{"CMD_PROP_RADIO_DIV_SETUP", "CMD_FS"}},
		{Names: "syncWord", Commands: []string{"CMD_PROP_TX", "CMD_PROP_RX", "CMD_TX_TEST", "CMD_RX_TEST"}},
		{Names: "packetLengthConfig", Commands: []string{"CMD_PROP_TX", "CMD_PROP_RX"}},
		{Names: "fixedPacketLength", Commands: []string{"CMD_PROP_TX"}},
		{Names: "packetLengthRx, addressMode, address0, address1", Commands: []string{"CMD_PROP_RX"}},
	}
}

func propSchema() descriptor.Schema {
	return descriptor.Schema{
		group("rfGroup", "RF Parameters",
			configurable("phyType868", "PHY Type 868 MHz", "868-2gfsk-50k"),
			configurable("phyType433", "PHY Type 433 MHz", "433-2gfsk-50k"),
			configurable("phyType2400", "PHY Type 2.4 GHz", "2440-2gfsk-250k"),
			configurable("carrierFrequency", "Frequency (MHz)", 868.0),
			configurable("symbolRate", "Symbol Rate (kBaud)", 50.0),
			configurable("deviation", "Deviation (kHz)", 25.0),
			configurable("rxFilterBw", "RX Filter BW (kHz)", "98.0",
				option("68.3", "0x50"),
				option("78.1", "0x51"),
				option("98.0", "0x52"),
				option("155.4", "0x55"),
				option("310.8", "0x59")),
		),
		txPowerConfigurables(),
		group("packetGroup", "Packet Configuration",
			configurable("whitening", "Whitening", "No whitening",
				option("No whitening", "0x0"),
				option("CC1101/CC2500 compatible", "0x1"),
				option("PN9 whitening without byte reversal", "0x2"),
				option("IEEE 802.15.4g compatible", "0x4")),
			configurable("preambleCount", "Preamble Count", "4 Bytes",
				option("1 Byte", "0x1"),
				option("2 Bytes", "0x2"),
				option("3 Bytes", "0x3"),
				option("4 Bytes", "0x4"),
				option("5 Bytes", "0x5"),
				option("6 Bytes", "0x6"),
				option("7 Bytes", "0x7"),
				option("8 Bytes", "0x8")),
			configurable("preambleMode", "Preamble Mode", "Send 0 as the first preamble bit",
				option("Send 0 as the first preamble bit", "0x0"),
				option("Send 1 as the first preamble bit", "0x1"),
				option("Send same first bit in preamble and sync word", "0x2")),
			configurable("syncWordLength", "Sync Word Length", "32 Bits",
				option("8 Bits", "0x8"),
				option("16 Bits", "0x10"),
				option("24 Bits", "0x18"),
				option("32 Bits", "0x20")),
			configurable("syncWord", "Sync Word", defaultSyncWord),
			configurable("packetLengthConfig", "Packet Length Config", "Variable",
				option("Fixed", "0x0"),
				option("Variable", "0x1")),
			configurable("fixedPacketLength", "Fixed Packet Length", 20),
			configurable("packetLengthRx", "Max Packet Length", 255),
			configurable("addressMode", "Address Mode", "No address check",
				option("No address check", "0x0"),
				option("Accept address0 and address1", "0x1")),
			configurable("address0", "Address0", 0xAA),
			configurable("address1", "Address1", 0xBB),
		),
	}
}

func propFrontEnds() []descriptor.FrontEnd {
	return []descriptor.FrontEnd{
		{
			ID: "XD",
			FrequencyRanges: []descriptor.FrontEndRange{{
				MinMHz: 0,
				MaxMHz: 1000,
				Commands: []descriptor.FrontEndCommand{{
					Name: "CMD_PROP_RADIO_DIV_SETUP",
					Fields: []descriptor.SettingField{
						field("config.frontEndMode", 0x0),
						field("config.biasMode", 0x1),
					},
				}},
			}},
		},
		{
			ID: "XS",
			Commands: []descriptor.FrontEndCommand{{
				Name: "CMD_PROP_RADIO_DIV_SETUP",
				Fields: []descriptor.SettingField{
					field("config.frontEndMode", 0x1),
					field("config.biasMode", 0x1),
					field("config.analogCfgMode", 0x0),
				},
				Override: []descriptor.OverrideEntry{
					entry("0x00018883", "Tx: Reduce analog ramping wait time for single-ended front end"),
				},
			}},
		},
	}
}

func propTestFunctions() map[string][]descriptor.SettingCommand {
	return map[string][]descriptor.SettingCommand{
		"txTest": {
			use("CMD_TX_TEST",
				field("condition.rule", 1),
				field("config.bUseCw", 0),
				field("config.whitenMode", 2),
				field("txWord", 0xABCD),
				field("endTrigger.triggerType", 1),
				field("syncWord", defaultSyncWord)),
		},
		"rxTest": {
			use("CMD_RX_TEST",
				field("condition.rule", 1),
				field("config.bEnaFifo", 0),
				field("endTrigger.triggerType", 1),
				field("syncWord", defaultSyncWord)),
		},
	}
}
