package descriptor

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange parses an index range "a..b" (or a single index "a")
func ParseRange(s string) (lo, hi int, err error) {
	first, second, found := strings.Cut(strings.TrimSpace(s), "..")
	lo, err = strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	if !found {
		return lo, lo, nil
	}
	hi, err = strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return lo, hi, nil
}

// RangeWidth returns the number of indices covered by lo..hi
func RangeWidth(lo, hi int) int {
	if hi < lo {
		return lo - hi + 1
	}
	return hi - lo + 1
}

// ParseValue parses a setting or option value written in decimal or with a
// 0x / 0b / 0o prefix
func ParseValue(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}
