package codegen

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/herlein/radiocfg/pkg/cmdbuf"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/parammap"
)

func intp(v int) *int { return &v }

var catalog = []descriptor.CommandDef{
	{
		Name: "CMD_BLE_ADV_NC",
		ID:   "0x1805",
		Fields: []descriptor.FieldDef{
			{Name: "commandNo", ByteIndex: "0..1"},
			{Name: "status", ByteIndex: "2..3"},
			{Name: "pNextOp", ByteIndex: "4..7", Type: "pointer"},
			{Name: "condition", ByteIndex: "13", BitFields: []descriptor.BitFieldDef{
				{Name: "rule", BitIndex: "0..3"},
				{Name: "nSkip", BitIndex: "4..7"},
			}},
			{Name: "channel", ByteIndex: "14"},
			{Name: "whitening", ByteIndex: "15", BitFields: []descriptor.BitFieldDef{
				{Name: "init", BitIndex: "0..6"},
				{Name: "bOverride", BitIndex: "7"},
			}},
			{Name: "pParams", ByteIndex: "16..19", Type: "pointer", Offset: intp(24), PtrName: "rfc_bleAdvPar_t"},
			{Name: "pOutput", ByteIndex: "20..23", Type: "pointer"},
			{Name: "pRxQ", ByteIndex: "24..27", Type: "pointer"},
			{Name: "advLen", ByteIndex: "30"},
			{Name: "pAdvData", ByteIndex: "32..35", Type: "pointer"},
		},
	},
	{
		Name: "CMD_PROP_RADIO_DIV_SETUP",
		ID:   "0x3807",
		Fields: []descriptor.FieldDef{
			{Name: "commandNo", ByteIndex: "0..1"},
			{Name: "txPower", ByteIndex: "26..27"},
			{Name: "pRegOverride", ByteIndex: "28..31", Type: "pointer"},
			{Name: "centerFreq", ByteIndex: "32..33"},
		},
	},
}

var setting = &descriptor.Setting{
	Name: "codegen",
	Commands: []descriptor.SettingCommand{
		{Name: "CMD_BLE_ADV_NC", Fields: []descriptor.SettingField{
			{Name: "commandNo", Value: "0x1805"},
			{Name: "condition.rule", Value: "0x1"},
			{Name: "condition.nSkip", Value: "0x0"},
			{Name: "channel", Value: "0x8C"},
			{Name: "whitening.init", Value: "0x51"},
			{Name: "advLen", Value: "0x18"},
		}},
		{Name: "CMD_PROP_RADIO_DIV_SETUP", Fields: []descriptor.SettingField{
			{Name: "commandNo", Value: "0x3807"},
			{Name: "txPower", Value: "0xA63F"},
			{Name: "centerFreq", Value: "0x0364"},
		}},
	},
}

var symbols = Symbols{CmdPrefix: "RF_", Overrides: "pOverrides"}

func newBuffer(c *qt.C) *cmdbuf.Buffer {
	layout, err := cmdbuf.Merge(cmdbuf.MergeInput{Setting: setting, Catalog: catalog})
	c.Assert(err, qt.IsNil)
	buf, err := cmdbuf.Build(cmdbuf.BuildInput{
		Catalog: catalog,
		Layout:  layout,
		Params: parammap.Build([]descriptor.MappingEntry{
			{Names: "CHANNEL", Commands: []string{"CMD_BLE_ADV_NC"}},
			{Names: "TXPOWER,CARRIER_FREQUENCY", Commands: []string{"CMD_PROP_RADIO_DIV_SETUP"}},
		}),
	})
	c.Assert(err, qt.IsNil)
	return buf
}

func input(c *qt.C, buf *cmdbuf.Buffer, name string) CommandInput {
	cmd, ok := buf.Command(name)
	c.Assert(ok, qt.IsTrue)
	id := ""
	for _, def := range catalog {
		if def.Name == name {
			id = def.ID
		}
	}
	return CommandInput{Name: name, ID: id, Fields: cmd.Fields, Symbols: symbols}
}

func TestGenerateCommandWithParams(t *testing.T) {
	c := qt.New(t)
	buf := newBuffer(c)
	buf.SetByParameter("channel", "channel", 0x66)

	got := GenerateCommand(input(c, buf, "CMD_BLE_ADV_NC"))

	c.Assert(got.Header, qt.Equals, ""+
		"    .commandNo = 0x1805,\n"+
		"    .status = 0x0000,\n"+
		"    .pNextOp = 0,\n"+
		"    .condition.rule = 0x1,\n"+
		"    .condition.nSkip = 0x0,\n"+
		"    .channel = 0x66, // modified (default: 0x8C)\n"+
		"    .whitening.init = 0x51,\n"+
		"    .whitening.bOverride = 0x0,\n"+
		"    .pParams = &bleAdvPar,\n"+
		"    .pOutput = 0")
	c.Assert(got.Params, qt.Equals, ""+
		"    .pRxQ = 0,\n"+
		"    .advLen = 0x18,\n"+
		"    .pAdvData = 0")
	c.Assert(got.ParStructName, qt.Equals, "bleAdvPar")
	c.Assert(got.ParTypeName, qt.Equals, "rfc_bleAdvPar_t")
}

func TestGenerateCommandLegacy(t *testing.T) {
	c := qt.New(t)
	buf := newBuffer(c)

	in := input(c, buf, "CMD_BLE_ADV_NC")
	in.Legacy = true
	got := GenerateCommand(in)
	c.Assert(got.Header, qt.Contains, "    .pParams = &rfc_bleAdvPar_t,\n")
	c.Assert(got.ParStructName, qt.Equals, "rfc_bleAdvPar_t")
}

func TestGenerateCommandOverrides(t *testing.T) {
	c := qt.New(t)
	buf := newBuffer(c)
	buf.SetByParameter("txPower", "txPower", 0xFFFF)
	buf.SetByParameter("carrierFrequency", "centerFreq", 0x01B1)

	in := input(c, buf, "CMD_PROP_RADIO_DIV_SETUP")
	got := GenerateCommand(in)
	c.Assert(got.Header, qt.Equals, ""+
		"    .commandNo = 0x3807,\n"+
		"    .txPower = 0xFFFF,\n"+
		"    .pRegOverride = 0,\n"+
		"    .centerFreq = 0x01B1 // modified (default: 0x0364)")
	c.Assert(got.Params, qt.Equals, "")
	c.Assert(got.ParStructName, qt.Equals, "")

	in.OverrideNames = []string{"pOverrides"}
	got = GenerateCommand(in)
	c.Assert(got.Header, qt.Contains, "    .pRegOverride = pOverrides,\n")
}

func TestGenerateCommandEmpty(t *testing.T) {
	c := qt.New(t)
	c.Assert(GenerateCommand(CommandInput{Name: "CMD_NOP"}), qt.Equals, Command{})
}

func TestCamelCase(t *testing.T) {
	c := qt.New(t)

	tests := map[string]string{
		"CMD_PROP_RADIO_DIV_SETUP": "cmdPropRadioDivSetup",
		"CMD_BLE5_GENERIC_RX":      "cmdBle5GenericRx",
		"CMD_FS":                   "cmdFs",
		"CMD_IEEE_RX":              "cmdIeeeRx",
	}
	for in, want := range tests {
		c.Assert(CamelCase(in), qt.Equals, want)
	}
}

func TestParamStructName(t *testing.T) {
	c := qt.New(t)

	c.Assert(paramStructName("CMD_BLE_ADV_NC", symbols), qt.Equals, "bleAdvPar")
	c.Assert(paramStructName("CMD_BLE5_GENERIC_RX", symbols), qt.Equals, "bleGenericRxPar")
	c.Assert(paramStructName("CMD_BLE5_ADV_AUX", symbols), qt.Equals, "ble5AdvAuxPar")

	custom := symbols
	custom.Commands = map[string]string{"cmdBleAdvNc": "RF_cmdBleAdvNcApp"}
	c.Assert(custom.CommandSymbol("CMD_BLE_ADV_NC"), qt.Equals, "RF_cmdBleAdvNcApp")
	c.Assert(paramStructName("CMD_BLE_ADV_NC", custom), qt.Equals, "bleAdvAppPar")
}

func TestPatch(t *testing.T) {
	c := qt.New(t)

	info := PatchInfo(nil, false)
	c.Assert(info, qt.Equals, Patch{Mode: DefaultRunMode})
	c.Assert(GeneratePatch(info), qt.Equals, ""+
		"    .rfMode = RF_MODE_AUTO,\n"+
		"    .cpePatchFxn = 0,\n"+
		"    .mcePatchFxn = 0,\n"+
		"    .rfePatchFxn = 0")

	p := &descriptor.Patch{Define: "RF_MODE_PROPRIETARY_SUB_1", Cpe: "rf_patch_cpe_prop", Rfe: "rf_patch_rfe_genfsk"}
	info = PatchInfo(p, false)
	c.Assert(GeneratePatch(info), qt.Equals, ""+
		"    .rfMode = RF_MODE_PROPRIETARY_SUB_1,\n"+
		"    .cpePatchFxn = &rf_patch_cpe_prop,\n"+
		"    .mcePatchFxn = 0,\n"+
		"    .rfePatchFxn = &rf_patch_rfe_genfsk")

	info = PatchInfo(p, true)
	c.Assert(info.Cpe, qt.Equals, MultiProtocolCPE)

	// no CPE patch, nothing to substitute
	info = PatchInfo(&descriptor.Patch{Mce: "rf_patch_mce_iqdump"}, true)
	c.Assert(info.Cpe, qt.Equals, "")
}

// Every TX power field is rendered without the modified annotation
func TestGenerateCommandTxPowerFields(t *testing.T) {
	c := qt.New(t)

	cat := []descriptor.CommandDef{{
		Name: "CMD_RADIO_SETUP_PA",
		ID:   "0x0805",
		Fields: []descriptor.FieldDef{
			{Name: "commandNo", ByteIndex: "0..1"},
			{Name: "txPower", ByteIndex: "18..19"},
			{Name: "txPowerHi", ByteIndex: "20..23"},
			{Name: "loDivider", ByteIndex: "24"},
		},
	}}
	s := &descriptor.Setting{
		Name: "pa",
		Commands: []descriptor.SettingCommand{{Name: "CMD_RADIO_SETUP_PA", Fields: []descriptor.SettingField{
			{Name: "txPower", Value: "0x3161"},
			{Name: "txPowerHi", Value: "0x001B8ED2"},
			{Name: "loDivider", Value: "0x5"},
		}}},
	}
	layout, err := cmdbuf.Merge(cmdbuf.MergeInput{Setting: s, Catalog: cat})
	c.Assert(err, qt.IsNil)
	buf, err := cmdbuf.Build(cmdbuf.BuildInput{
		Catalog: cat,
		Layout:  layout,
		Params: parammap.Build([]descriptor.MappingEntry{
			{Names: "txPower, loDivider", Commands: []string{"CMD_RADIO_SETUP_PA"}},
		}),
	})
	c.Assert(err, qt.IsNil)
	buf.SetByParameter("txPower", "txPower", 0xFFFF)
	buf.SetByParameter("txPower", "txPowerHi", 0x00178C92)
	buf.SetByParameter("loDivider", "loDivider", 0xA)

	cmd, ok := buf.Command("CMD_RADIO_SETUP_PA")
	c.Assert(ok, qt.IsTrue)
	got := GenerateCommand(CommandInput{Name: cmd.Name, ID: "0x0805", Fields: cmd.Fields, Symbols: symbols})
	c.Assert(got.Header, qt.Equals, ""+
		"    .commandNo = 0x0805,\n"+
		"    .txPower = 0xFFFF,\n"+
		"    .txPowerHi = 0x00178C92,\n"+
		"    .loDivider = 0x0A // modified (default: 0x05)")
}
