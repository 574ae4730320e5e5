package profiles

import (
	"strconv"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/rfcalc"
)

// Bluetooth Low Energy settings

// bleWhitening is the whitening word of the built-in BLE commands: init
// 0x51 with the override bit clear
const bleWhitening = 0x51

// BLECatalog returns the BLE command catalog
func BLECatalog() []descriptor.CommandDef {
	return []descriptor.CommandDef{
		command("CMD_BLE5_RADIO_SETUP", "0x1820", "Bluetooth 5 Radio Setup Command for all PHYs",
			bits("defaultPhy", "14",
				bit("mainMode", "0..1"),
				bit("coding", "2")),
			word("loDivider", "15"),
			radioConfig("16..17"),
			word("txPower", "18..19"),
			pointer("pRegOverrideCommon", "20..23"),
			pointer("pRegOverride1Mbps", "24..27"),
			pointer("pRegOverride2Mbps", "28..31"),
			pointer("pRegOverrideCoded", "32..35")),
		fsCommand(),
		command("CMD_BLE_ADV_NC", "0x1805", "BLE Non-Connectable Advertiser Command",
			word("channel", "14"),
			bits("whitening", "15",
				bit("init", "0..6"),
				bit("bOverride", "7")),
			params("pParams", "16..19", 24, "bleAdvPar"),
			pointer("pOutput", "20..23"),
			pointer("pRxQ", "24..27"),
			bits("rxConfig", "28",
				bit("bAutoFlushIgnored", "0"),
				bit("bAutoFlushCrcErr", "1"),
				bit("bAutoFlushEmpty", "2"),
				bit("bIncludeLenByte", "3"),
				bit("bIncludeCrc", "4"),
				bit("bAppendRssi", "5"),
				bit("bAppendStatus", "6"),
				bit("bAppendTimestamp", "7")),
			bits("advConfig", "29",
				bit("advFilterPolicy", "0..1"),
				bit("deviceAddrType", "2"),
				bit("peerAddrType", "3"),
				bit("bStrictLenFilter", "4")),
			word("advLen", "30"),
			word("scanRspLen", "31"),
			pointer("pAdvData", "32..35"),
			pointer("pScanRspData", "36..39"),
			pointer("pDeviceAddress", "40..43"),
			pointer("pWhiteList", "44..47"),
			trigger("endTrigger", "50"),
			word("endTime", "52..55")),
		command("CMD_BLE5_GENERIC_RX", "0x1829", "Bluetooth 5 Generic Receiver Command",
			word("channel", "14"),
			bits("whitening", "15",
				bit("init", "0..6"),
				bit("bOverride", "7")),
			bits("phyMode", "16",
				bit("mainMode", "0..1"),
				bit("coding", "2")),
			word("rangeDelay", "17"),
			word("txPower", "18..19"),
			params("pParams", "20..23", 28, "bleGenericRxPar"),
			pointer("pOutput", "24..27"),
			pointer("pRxQ", "28..31"),
			bits("rxConfig", "32",
				bit("bAutoFlushIgnored", "0"),
				bit("bAutoFlushCrcErr", "1"),
				bit("bAutoFlushEmpty", "2"),
				bit("bIncludeLenByte", "3"),
				bit("bIncludeCrc", "4"),
				bit("bAppendRssi", "5"),
				bit("bAppendStatus", "6"),
				bit("bAppendTimestamp", "7")),
			word("bRepeat", "33"),
			word("accessAddress", "36..39"),
			word("crcInit0", "40"),
			word("crcInit1", "41"),
			word("crcInit2", "42"),
			trigger("endTrigger", "43"),
			word("endTime", "44..47")),
	}
}

// BLEGroup returns the BLE group descriptors
func BLEGroup() *descriptor.GroupData {
	return &descriptor.GroupData{
		Catalog: BLECatalog(),
		Mapping: []descriptor.MappingEntry{
			{Names: "txPower", Commands: []string{"CMD_BLE5_RADIO_SETUP", "CMD_BLE5_GENERIC_RX"}},
			{Names: "frequency", Commands: []string{"CMD_FS", "CMD_BLE_ADV_NC", "CMD_BLE5_GENERIC_RX"}},
			{Names: "whitening", Commands: []string{"CMD_BLE_ADV_NC", "CMD_BLE5_GENERIC_RX"}},
			{Names: "packetLengthBle", Commands: []string{"CMD_BLE_ADV_NC"}},
		},
		Schema: bleSchema(),
		Settings: []descriptor.Setting{
			*NewBLEAdvertiser(2402),
		},
	}
}

// NewBLEAdvertiser creates a BLE 1 Mbps non-connectable advertiser setting
// on the channel of mhz
func NewBLEAdvertiser(mhz float64) *descriptor.Setting {
	return &descriptor.Setting{
		Name:        "ble-1m-adv",
		LongName:    "BLE 1 Mbps Advertiser",
		Description: "Bluetooth Low Energy 1 Mbps non-connectable advertising",
		Frequency:   2440,
		Commands: []descriptor.SettingCommand{
			{
				Name: "CMD_BLE5_RADIO_SETUP",
				Fields: []descriptor.SettingField{
					field("condition.rule", 1),
					field("defaultPhy.mainMode", 0),
					field("defaultPhy.coding", 0),
					field("loDivider", 0),
					field("config.frontEndMode", 0),
					field("config.biasMode", 0),
					text("txPower", "0x941E"),
				},
				Overrides: []descriptor.OverrideList{
					overrides("pRegOverrideCommon",
						entry("0x00F388D3", "Synth: Set recommended RTRIM to 7"),
						entry("HW_REG_OVERRIDE(0x4038,0x003A)", "Synth: Set Fref to 4 MHz")),
					overrides("pRegOverride1Mbps",
						entry("HW_REG_OVERRIDE(0x5320,0x0240)", "Rx: Set AGC reference level to 0x20")),
				},
			},
			use("CMD_FS", fsFields(mhz)...),
			use("CMD_BLE_ADV_NC",
				field("channel", rfcalc.BLEChannel(mhz)),
				field("whitening.init", bleWhitening),
				field("rxConfig.bAutoFlushIgnored", 1),
				field("advConfig.advFilterPolicy", 0),
				field("advConfig.deviceAddrType", 0),
				field("advLen", 0x18),
				field("endTrigger.triggerType", 1)),
		},
		Patch: &descriptor.Patch{
			Define: "RF_MODE_AUTO",
			Cpe:    "rf_patch_cpe_bt5",
			Rfe:    "rf_patch_rfe_bt5",
			Mce:    "rf_patch_mce_bt5",
		},
	}
}

// bleChannelOptions lists the advertising channels and a custom frequency
func bleChannelOptions() []descriptor.Option {
	var opts []descriptor.Option
	for _, mhz := range []uint64{2402, 2426, 2480, 2440} {
		opts = append(opts, option(strconv.FormatUint(mhz, 10), rfcalc.Hex(mhz, 4)))
	}
	return opts
}

func bleSchema() descriptor.Schema {
	return descriptor.Schema{
		group("rfGroup", "RF Parameters",
			configurable("frequency", "Frequency (MHz)", "2402", bleChannelOptions()...),
			configurable("whitening", "Whitening", true),
			configurable("packetLengthBle", "Packet Length (bytes)", 30),
		),
		txPowerConfigurables(),
	}
}
