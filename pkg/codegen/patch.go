package codegen

import (
	"fmt"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// DefaultRunMode is used when a setting names no run mode
const DefaultRunMode = "RF_MODE_AUTO"

// MultiProtocolCPE replaces the CPE patch in multi-protocol builds
const MultiProtocolCPE = "rf_patch_cpe_multi_protocol"

// Patch is the resolved run mode and patch functions; an empty patch name
// means no patch
type Patch struct {
	Mode string
	Cpe  string
	Mce  string
	Rfe  string
}

// PatchInfo resolves the patch block of a setting
func PatchInfo(p *descriptor.Patch, multiProtocol bool) Patch {
	info := Patch{Mode: DefaultRunMode}
	if p == nil {
		return info
	}
	if p.Define != "" {
		info.Mode = p.Define
	}
	info.Cpe, info.Mce, info.Rfe = p.Cpe, p.Mce, p.Rfe
	if multiProtocol && info.Cpe != "" {
		info.Cpe = MultiProtocolCPE
	}
	return info
}

// GeneratePatch renders the RF mode initializer
func GeneratePatch(p Patch) string {
	return fmt.Sprintf("    .rfMode = %s,\n"+
		"    .cpePatchFxn = %s,\n"+
		"    .mcePatchFxn = %s,\n"+
		"    .rfePatchFxn = %s",
		p.Mode, patchRef(p.Cpe), patchRef(p.Mce), patchRef(p.Rfe))
}

func patchRef(name string) string {
	if name == "" {
		return "0"
	}
	return "&" + name
}
