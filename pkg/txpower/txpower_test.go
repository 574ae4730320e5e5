package txpower

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

type fakeTable struct {
	std, high map[string]string
}

func (f *fakeTable) ValueList(mhz float64, highPA, prop2400 bool) []descriptor.Option {
	return nil
}

func (f *fakeTable) Lookup(mhz float64, highPA bool, dbm string) (Entry, bool) {
	table := f.std
	if highPA {
		table = f.high
	}
	raw, ok := table[dbm]
	return Entry{DBm: dbm, Raw: raw}, ok
}

func (f *fakeTable) SelectTarget(string, descriptor.Group, bool, bool) {}

type fakeReader map[string]string

func (f fakeReader) GetByOption(param, field string) (string, error) {
	return f[param], nil
}

func TestSelect(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		highPA, prop2400, lowFreq bool
		want                      string
	}{
		{false, false, true, "txPower433"},
		{false, false, false, "txPower"},
		{true, false, false, "txPowerHi"},
		{true, false, true, "txPower433Hi"},
		{false, true, false, "txPower2400"},
		{true, true, false, "txPower2400"},
		{true, true, true, "txPower2400"},
	}
	for _, test := range tests {
		got := Select(test.highPA, test.prop2400, test.lowFreq).Configurable()
		c.Assert(got, qt.Equals, test.want, qt.Commentf("%+v", test))
	}
}

func TestCache(t *testing.T) {
	c := qt.New(t)

	cache := NewCache()
	c.Assert(cache.Values(), qt.DeepEquals, Values{"-1", "-1", "-1", "-1", "-1"})

	cache.Set(Slot433Hi, "20")
	cache.Set(SlotDefault, "14")
	c.Assert(cache.Get(Slot433Hi), qt.Equals, "20")
	c.Assert(cache.Values().Get(SlotDefault), qt.Equals, "14")
	c.Assert(cache.Get(Slot2400), qt.Equals, Unset)
}

func TestResolveStandard(t *testing.T) {
	c := qt.New(t)

	reader := fakeReader{"txPower": "14", "txPower433": "15", "txPower2400": "5"}

	tests := []struct {
		ctx  Context
		slot Slot
		want string
	}{
		{Context{FreqMHz: 868}, SlotDefault, "14"},
		{Context{FreqMHz: 433.92, LowFreq: true}, Slot433, "15"},
		{Context{FreqMHz: 2440, Prop2400: true}, Slot2400, "5"},
		{Context{FreqMHz: 2440, Prop2400: true, HighPA: true}, Slot2400, "5"},
	}
	for _, test := range tests {
		r := &Resolver{Cache: NewCache(), HighPA: NewHighPA()}
		values, err := r.Resolve(test.ctx, reader)
		c.Assert(err, qt.IsNil)
		c.Assert(values.Get(test.slot), qt.Equals, test.want, qt.Commentf("%+v", test.ctx))
	}
}

func TestResolveHighPA(t *testing.T) {
	c := qt.New(t)

	table := &fakeTable{
		std:  map[string]string{"14": "0xA73F", "15": "0x013F"},
		high: map[string]string{"20": "0x003F"},
	}
	cache := NewCache()
	hi := NewHighPA()
	r := &Resolver{Cache: cache, HighPA: hi, Table: table}

	// nothing requested yet: the high PA lookup misses
	values, err := r.Resolve(Context{FreqMHz: 868, HighPA: true}, fakeReader{"txPower": "14"})
	c.Assert(err, qt.IsNil)
	c.Assert(hi.Raw, qt.Equals, RawUnavailable)
	c.Assert(hi.DBm, qt.Equals, Unset)
	c.Assert(values.High, qt.Equals, Unset)
	c.Assert(values.Default, qt.Equals, "14")

	hi.DBm = "20"
	values, err = r.Resolve(Context{FreqMHz: 433.92, LowFreq: true, HighPA: true}, fakeReader{"txPower433": "15"})
	c.Assert(err, qt.IsNil)
	c.Assert(*hi, qt.DeepEquals, HighPA{DBm: "20", Raw: "0x003F"})
	c.Assert(values.T433Hi, qt.Equals, "20")
	c.Assert(values.T433, qt.Equals, "15")
	// the cache is shared: the earlier slot survives
	c.Assert(values.Default, qt.Equals, "14")
}

func TestResolveHighPANotAvailable(t *testing.T) {
	c := qt.New(t)

	table := &fakeTable{std: map[string]string{}, high: map[string]string{}}
	r := &Resolver{Cache: NewCache(), HighPA: NewHighPA(), Table: table}

	_, err := r.Resolve(Context{FreqMHz: 868, HighPA: true}, fakeReader{"txPower": "14"})
	c.Assert(err, qt.ErrorIs, ErrNotAvailable)

	r.Table = nil
	_, err = r.Resolve(Context{FreqMHz: 868, HighPA: true}, fakeReader{"txPower": "14"})
	c.Assert(err, qt.ErrorIs, ErrNotAvailable)
}
