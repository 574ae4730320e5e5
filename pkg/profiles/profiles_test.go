package profiles

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/herlein/radiocfg/pkg/cmdbuf"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/parammap"
)

func TestFormatDataRate(t *testing.T) {
	c := qt.New(t)

	c.Assert(formatDataRate(50), qt.Equals, "50k")
	c.Assert(formatDataRate(2.4), qt.Equals, "2.4k")
	c.Assert(formatDataRate(1000), qt.Equals, "1m")
}

func TestSettingNames(t *testing.T) {
	c := qt.New(t)

	c.Assert(New868GFSK(50, 25).Name, qt.Equals, "868-2gfsk-50k")
	c.Assert(New433GFSK(50, 25).Name, qt.Equals, "433-2gfsk-50k")
	c.Assert(New2400GFSK(250, 125).Name, qt.Equals, "2440-2gfsk-250k")
	c.Assert(IEEEChannelMHz(26), qt.Equals, 2480.0)
}

func TestPropSettingEncoding(t *testing.T) {
	c := qt.New(t)

	s := New433GFSK(50, 25)
	c.Assert(s.Patch, qt.IsNil)

	v, ok := s.Lookup("CMD_FS", "frequency")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "0x1B1")
	v, _ = s.Lookup("CMD_FS", "fractFreq")
	c.Assert(v, qt.Equals, "0xEB9A")
	v, _ = s.Lookup("CMD_PROP_RADIO_DIV_SETUP", "symbolRate.rateWord")
	c.Assert(v, qt.Equals, "0x8000")
	v, _ = s.Lookup("CMD_PROP_RADIO_DIV_SETUP", "modulation.deviation")
	c.Assert(v, qt.Equals, "0x64")
	v, _ = s.Lookup("CMD_PROP_RADIO_DIV_SETUP", "loDivider")
	c.Assert(v, qt.Equals, "0xA")
}

// Every setting of the bundle must build against its group's catalog
func TestBundleBuilds(t *testing.T) {
	c := qt.New(t)

	bundle := Bundle()
	for g, data := range bundle.Groups {
		for i := range data.Settings {
			s := &data.Settings[i]
			c.Run(string(g)+"/"+s.Name, func(c *qt.C) {
				layout, err := cmdbuf.Merge(cmdbuf.MergeInput{
					Setting:       s,
					Catalog:       data.Catalog,
					TestFunctions: data.TestFunctions,
					FrontEnds:     data.FrontEnds,
				})
				c.Assert(err, qt.IsNil)

				buf, err := cmdbuf.Build(cmdbuf.BuildInput{
					Catalog: data.Catalog,
					Layout:  layout,
					Params:  parammap.Build(data.Mapping),
					Options: data.Schema,
				})
				c.Assert(err, qt.IsNil)
				c.Assert(buf.Commands(), qt.HasLen, len(data.Catalog))
			})
		}
	}
}

func TestMappingNamesCatalogCommands(t *testing.T) {
	c := qt.New(t)

	for g, data := range Bundle().Groups {
		for _, m := range data.Mapping {
			for _, name := range m.Commands {
				_, ok := data.Command(name)
				c.Assert(ok, qt.IsTrue, qt.Commentf("%s: %s", g, name))
			}
		}
	}
}

func TestSettingNamesUnique(t *testing.T) {
	c := qt.New(t)

	seen := make(map[string]bool)
	for _, data := range Bundle().Groups {
		for _, s := range data.Settings {
			c.Assert(seen[s.Name], qt.IsFalse, qt.Commentf("duplicate %s", s.Name))
			seen[s.Name] = true
		}
	}
}

func TestGenerateBundle(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "bundles", "builtin.yaml")
	c.Assert(GenerateBundle(path), qt.IsNil)

	loaded, err := descriptor.LoadBundle(path)
	c.Assert(err, qt.IsNil)

	want := Bundle()
	c.Assert(loaded.PATable, qt.DeepEquals, want.PATable)
	for g, data := range want.Groups {
		got, err := loaded.Group(g)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Catalog, qt.DeepEquals, data.Catalog)
		c.Assert(got.Settings, qt.DeepEquals, data.Settings)
	}
}

func TestLoad(t *testing.T) {
	c := qt.New(t)

	builtin, err := Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(builtin.Groups, qt.HasLen, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, "failed to load bundle .*")
}

// A bit group whose first subfield is missing is read as one whole word, so
// every subfield a setting declares must come with the first one
func TestSubfieldValuesReachBuffer(t *testing.T) {
	c := qt.New(t)

	for g, data := range Bundle().Groups {
		var cmds []descriptor.SettingCommand
		for _, s := range data.Settings {
			cmds = append(cmds, s.Commands...)
		}
		for _, fragment := range data.TestFunctions {
			cmds = append(cmds, fragment...)
		}

		for i := range cmds {
			sc := &cmds[i]
			def, ok := data.Command(sc.Name)
			c.Assert(ok, qt.IsTrue, qt.Commentf("%s: %s", g, sc.Name))
			for _, fd := range def.Fields {
				if len(fd.BitFields) == 0 {
					continue
				}
				if _, ok := sc.Field(fd.Name + "." + fd.BitFields[0].Name); ok {
					continue
				}
				for _, bf := range fd.BitFields[1:] {
					name := fd.Name + "." + bf.Name
					_, declared := sc.Field(name)
					c.Check(declared, qt.IsFalse, qt.Commentf("%s: %s.%s is hidden by the whole-word default", g, sc.Name, name))
				}
			}
		}
	}
}

func TestPacketConfigDefaults(t *testing.T) {
	c := qt.New(t)

	data := PropGroup()
	s := New868GFSK(50, 25)
	layout, err := cmdbuf.Merge(cmdbuf.MergeInput{
		Setting:       s,
		Catalog:       data.Catalog,
		TestFunctions: data.TestFunctions,
	})
	c.Assert(err, qt.IsNil)
	buf, err := cmdbuf.Build(cmdbuf.BuildInput{
		Catalog: data.Catalog,
		Layout:  layout,
		Params:  parammap.Build(data.Mapping),
		Options: data.Schema,
	})
	c.Assert(err, qt.IsNil)

	for _, name := range []string{
		"CMD_PROP_TX.pktConf.bUseCrc",
		"CMD_PROP_TX.pktConf.bVarLen",
		"CMD_PROP_RX.pktConf.bUseCrc",
		"CMD_PROP_RX.pktConf.bVarLen",
	} {
		c.Assert(buf.Value(name), qt.Equals, uint64(1), qt.Commentf(name))
	}
}
