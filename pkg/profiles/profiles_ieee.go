package profiles

import (
	"strconv"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// IEEE 802.15.4 O-QPSK settings for the 2.4 GHz band

// IEEE 802.15.4 channel plan: channel 11 at 2405 MHz, 5 MHz spacing
const (
	ieeeFirstChannel = 11
	ieeeLastChannel  = 26
	ieeeBaseMHz      = 2405
	ieeeSpacingMHz   = 5
)

// IEEEChannelMHz returns the center frequency of an IEEE 802.15.4 channel
func IEEEChannelMHz(channel int) float64 {
	return float64(ieeeBaseMHz + (channel-ieeeFirstChannel)*ieeeSpacingMHz)
}

// IEEECatalog returns the IEEE 802.15.4 command catalog
func IEEECatalog() []descriptor.CommandDef {
	return []descriptor.CommandDef{
		command("CMD_RADIO_SETUP", "0x0802", "Radio Setup Command for Pre-Defined Schemes",
			word("mode", "14"),
			word("loDivider", "15"),
			radioConfig("16..17"),
			word("txPower", "18..19"),
			pointer("pRegOverride", "20..23")),
		fsCommand(),
		command("CMD_IEEE_TX", "0x2C01", "IEEE 802.15.4 Transmit Command",
			bits("txOpt", "14",
				bit("bIncludePhyHdr", "0"),
				bit("bIncludeCrc", "1"),
				bit("payloadLenMsb", "3..7")),
			word("payloadLen", "15"),
			pointer("pPayload", "16..19"),
			word("timeStamp", "20..23")),
		command("CMD_IEEE_RX", "0x2801", "IEEE 802.15.4 Receive Command",
			word("channel", "14"),
			bits("rxConfig", "15",
				bit("bAutoFlushCrc", "0"),
				bit("bAutoFlushIgn", "1"),
				bit("bIncludePhyHdr", "2"),
				bit("bIncludeCrc", "3"),
				bit("bAppendRssi", "4"),
				bit("bAppendCorrCrc", "5"),
				bit("bAppendSrcInd", "6"),
				bit("bAppendTimestamp", "7")),
			pointer("pRxQ", "16..19"),
			pointer("pOutput", "20..23"),
			word("localPanID", "28..29"),
			word("localShortAddr", "30..31"),
			trigger("endTrigger", "32"),
			word("endTime", "36..39")),
	}
}

// IEEEGroup returns the IEEE 802.15.4 group descriptors
func IEEEGroup() *descriptor.GroupData {
	return &descriptor.GroupData{
		Catalog: IEEECatalog(),
		Mapping: []descriptor.MappingEntry{
			{Names: "txPower", Commands: []string{"CMD_RADIO_SETUP"}},
			{Names: "frequency", Commands: []string{"CMD_FS"}},
		},
		Schema: descriptor.Schema{
			group("rfGroup", "RF Parameters",
				configurable("frequency", "Frequency (MHz)", "2405", ieeeChannelOptions()...),
			),
			txPowerConfigurables(),
		},
		Settings: []descriptor.Setting{
			*NewIEEE154(ieeeFirstChannel),
		},
	}
}

// NewIEEE154 creates a 250 kbps O-QPSK setting on an IEEE 802.15.4 channel
func NewIEEE154(channel int) *descriptor.Setting {
	mhz := IEEEChannelMHz(channel)
	return &descriptor.Setting{
		Name:        "ieee154-250k",
		LongName:    "IEEE 802.15.4 2.4 GHz O-QPSK 250 kbps",
		Description: "IEEE 802.15.4 O-QPSK with DSSS at 250 kbps",
		Frequency:   mhz,
		Commands: []descriptor.SettingCommand{
			{
				Name: "CMD_RADIO_SETUP",
				Fields: []descriptor.SettingField{
					field("condition.rule", 1),
					field("mode", 0x01),
					field("loDivider", 0),
					field("config.frontEndMode", 0),
					field("config.biasMode", 0),
					text("txPower", "0x941E"),
				},
				Overrides: []descriptor.OverrideList{
					overrides("pRegOverride",
						entry("0x00F388D3", "Synth: Set recommended RTRIM to 7"),
						entry("HW_REG_OVERRIDE(0x5328,0x0000)", "Rx: Set RSSI offset to adjust reported RSSI")),
				},
			},
			use("CMD_FS", fsFields(mhz)...),
			use("CMD_IEEE_TX",
				field("condition.rule", 1),
				field("payloadLen", 0x1E)),
			use("CMD_IEEE_RX",
				field("condition.rule", 1),
				field("channel", 0),
				field("rxConfig.bAutoFlushCrc", 1),
				field("rxConfig.bAppendRssi", 1),
				field("localPanID", 0xFFFF),
				field("localShortAddr", 0xFFFF),
				field("endTrigger.triggerType", 1)),
		},
		Patch: &descriptor.Patch{
			Define: "RF_MODE_AUTO",
			Cpe:    "rf_patch_cpe_ieee_802_15_4",
			Mce:    "rf_patch_mce_ieee_802_15_4",
		},
	}
}

func ieeeChannelOptions() []descriptor.Option {
	var opts []descriptor.Option
	for ch := ieeeFirstChannel; ch <= ieeeLastChannel; ch++ {
		mhz := uint64(IEEEChannelMHz(ch))
		opts = append(opts, option(strconv.FormatUint(mhz, 10), rfcalc.Hex(mhz, 4)))
	}
	return opts
}
