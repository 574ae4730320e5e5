package parammap

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

func TestBuild(t *testing.T) {
	c := qt.New(t)

	m := Build([]descriptor.MappingEntry{
		{Names: "SYMBOLRATE, DEVIATION,RXFILTERBW", Commands: []string{"CMD_PROP_RADIO_DIV_SETUP"}},
		{Names: "CARRIER_FREQUENCY", Commands: []string{"CMD_PROP_RADIO_DIV_SETUP", "CMD_FS"}},
		{Names: "syncWord", Commands: []string{"CMD_PROP_TX", "CMD_PROP_RX"}},
	})

	c.Assert(m, qt.DeepEquals, Map{
		"SYMBOLRATE":       {"CMD_PROP_RADIO_DIV_SETUP"},
		"DEVIATION":        {"CMD_PROP_RADIO_DIV_SETUP"},
		"RXFILTERBW":       {"CMD_PROP_RADIO_DIV_SETUP"},
		"CARRIERFREQUENCY": {"CMD_PROP_RADIO_DIV_SETUP", "CMD_FS"},
		"SYNCWORD":         {"CMD_PROP_TX", "CMD_PROP_RX"},
	})
}

func TestCommandsCaseInsensitive(t *testing.T) {
	c := qt.New(t)

	m := Build([]descriptor.MappingEntry{
		{Names: "CARRIER_FREQUENCY", Commands: []string{"CMD_FS"}},
	})

	c.Assert(m.Commands("carrierFrequency"), qt.DeepEquals, []string{"CMD_FS"})
	c.Assert(m.Targets("carrierFrequency", "CMD_FS"), qt.IsTrue)
	c.Assert(m.Targets("carrierFrequency", "CMD_PROP_TX"), qt.IsFalse)
	c.Assert(m.Commands("txPower"), qt.IsNil)
}

func TestBuildEmpty(t *testing.T) {
	c := qt.New(t)
	c.Assert(Build(nil), qt.HasLen, 0)
}
