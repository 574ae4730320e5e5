package profiles

import "github.com/herlein/radiocfg/pkg/descriptor"

// PA table of the built-in device. Levels are listed highest power first;
// the first level is the default of a band.

func level(dbm, raw string) descriptor.PALevel {
	return descriptor.PALevel{DBm: dbm, Raw: raw}
}

func band(name string, minMHz, maxMHz float64, levels ...descriptor.PALevel) descriptor.PABand {
	return descriptor.PABand{Name: name, MinMHz: minMHz, MaxMHz: maxMHz, Levels: levels}
}

func highPA(b descriptor.PABand) descriptor.PABand {
	b.HighPA = true
	return b
}

func prop2400(b descriptor.PABand) descriptor.PABand {
	b.Prop2400 = true
	return b
}

// levels2400 are shared by the proprietary and the BLE/IEEE 2.4 GHz bands
func levels2400() []descriptor.PALevel {
	return []descriptor.PALevel{
		level("5", "0x941E"),
		level("0", "0x3161"),
		level("-10", "0x0CC7"),
		level("-20", "0x0CC0"),
	}
}

// PATable returns the PA bands of the built-in device
func PATable() []descriptor.PABand {
	return []descriptor.PABand{
		band("433 MHz", 420, 527,
			level("15", "0x013F"),
			level("14", "0x9F3F"),
			level("13", "0x32C6"),
			level("10", "0x1ECA"),
			level("0", "0x0CC1"),
			level("-10", "0x04C0")),
		highPA(band("433 MHz high PA", 420, 527,
			level("20", "0x001F8A8E"),
			level("18", "0x00178A0D"),
			level("16", "0x0013C8CB"))),
		band("868 MHz", 779, 930,
			level("14", "0xA73F"),
			level("13", "0xA63F"),
			level("12", "0xB818"),
			level("10", "0x38D3"),
			level("0", "0x0CCB"),
			level("-10", "0x04C6")),
		highPA(band("868 MHz high PA", 779, 930,
			level("20", "0x001B8ED2"),
			level("18", "0x00178C92"),
			level("16", "0x0013CACC"),
			level("14", "0x000F8A4C"))),
		prop2400(band("2.4 GHz proprietary", 2360, 2500, levels2400()...)),
		band("2.4 GHz", 2360, 2500, levels2400()...),
	}
}
