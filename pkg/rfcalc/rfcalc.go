// Package rfcalc converts physical radio parameters (symbol rate, carrier
// frequency, deviation) to and from the raw command field encodings.
package rfcalc

import (
	"math"
	"strconv"
	"strings"
)

// RefClockHz is the synthesizer reference clock
const RefClockHz = 24e6

// rateWordScale is the fixed-point scale of the symbol rate word (2^20)
const rateWordScale = 1 << 20

// maxTrimSteps bounds the symbol rate word search
const maxTrimSteps = 1 << 16

// FractStep is the frequency fraction quantization step (LO step) in
// 1/65536 MHz units
const FractStep = 51.2

// DeviationStepHz is the size of one deviation field step
const DeviationStepHz = 250.0

// symbolRateHz returns the symbol rate produced by a rate word
func symbolRateHz(word int64, prescaler uint64) float64 {
	return float64(word) * RefClockHz / (float64(prescaler) * rateWordScale)
}

// SymbolRateWord returns the rate word whose symbol rate is closest to
// kBaud for the given prescaler. It starts from the truncated ideal word and
// steps by one toward the target while the error keeps shrinking.
func SymbolRateWord(kBaud float64, prescaler uint64) uint64 {
	if prescaler == 0 || kBaud <= 0 {
		return 0
	}

	target := kBaud * 1e3
	best := int64(math.Floor(target * float64(prescaler) * rateWordScale / RefClockHz))
	rate := symbolRateHz(best, prescaler)
	bestErr := math.Abs(rate - target)

	for i := 0; i < maxTrimSteps; i++ {
		next := best + 1
		if rate > target {
			next = best - 1
		}
		if next < 0 {
			break
		}
		r := symbolRateHz(next, prescaler)
		e := math.Abs(r - target)
		if e >= bestErr {
			break
		}
		best, rate, bestErr = next, r, e
	}

	return uint64(best)
}

// SymbolRate returns the symbol rate in kBaud for a rate word and prescaler
func SymbolRate(word, prescaler uint64) float64 {
	if prescaler == 0 {
		return 0
	}
	return symbolRateHz(int64(word), prescaler) / 1e3
}

// EncodeFrequency splits a frequency in MHz into the integer MHz field and
// the fractional field, quantized to the LO step and rounded up
func EncodeFrequency(mhz float64) (whole, fract uint64) {
	whole = uint64(math.Floor(math.Abs(mhz)))
	f := (mhz - math.Floor(mhz)) * 65536
	fract = uint64(math.Ceil(math.Round(f/FractStep) * FractStep))
	return whole, fract
}

// DecodeFrequency returns the frequency in MHz for the integer and
// fractional fields
func DecodeFrequency(whole, fract uint64) float64 {
	return float64(whole) + float64(fract)/65536
}

// EncodeDeviation returns the deviation field for a deviation in kHz
func EncodeDeviation(kHz float64) uint64 {
	if kHz <= 0 {
		return 0
	}
	return uint64(math.Floor(kHz * 1e3 / DeviationStepHz))
}

// DecodeDeviation returns the deviation in kHz for a deviation field
func DecodeDeviation(field uint64) float64 {
	return float64(field) * DeviationStepHz / 1e3
}

// LoDivider returns the synthesizer LO divider for a carrier frequency in MHz
func LoDivider(mhz float64) uint64 {
	switch {
	case mhz >= 1000:
		return 0
	case mhz >= 720:
		return 5
	case mhz >= 360:
		return 10
	case mhz >= 240:
		return 15
	case mhz >= 180:
		return 20
	}
	return 30
}

// BLE advertising channel frequencies
const (
	bleAdv37MHz = 2402
	bleAdv38MHz = 2426
	bleAdv39MHz = 2480
)

// BLEChannel returns the raw channel field for a BLE frequency in MHz:
// 0..39 for BLE channel numbers, otherwise the custom-frequency encoding
// (MHz - 2300)
func BLEChannel(mhz float64) uint64 {
	f := int(math.Round(mhz))
	switch {
	case f == bleAdv37MHz:
		return 37
	case f == bleAdv38MHz:
		return 38
	case f == bleAdv39MHz:
		return 39
	case f >= 2404 && f <= 2424 && f%2 == 0:
		return uint64((f - 2404) / 2)
	case f >= 2428 && f <= 2478 && f%2 == 0:
		return uint64((f-2428)/2 + 11)
	case f > 2300:
		return uint64(f - 2300)
	}
	return 0
}

// Hex renders v as 0x-prefixed upper-case hex, zero padded to width digits
func Hex(v uint64, width int) string {
	s := strings.ToUpper(strconv.FormatUint(v, 16))
	if pad := width - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return "0x" + s
}

// FormatFixed renders v with a fixed number of decimals
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
