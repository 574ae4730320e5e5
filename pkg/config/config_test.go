package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDefaultIsValid(t *testing.T) {
	c := qt.New(t)

	cfg := Default()
	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(cfg.Device.LowFreqLimit, qt.Equals, 600.0)
	c.Assert(cfg.Device.HiFreqLimit, qt.Equals, 2000.0)
	c.Assert(cfg.CodeGen.Symbols.CmdPrefix, qt.Equals, "RF_")
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "device.yaml")
	err := os.WriteFile(path, []byte("device:\n  name: CC1352P1F3\n  highPA: true\n  frontEnd: XD\n"), 0644)
	c.Assert(err, qt.IsNil)

	cfg, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Device.Name, qt.Equals, "CC1352P1F3")
	c.Assert(cfg.Device.HighPA, qt.IsTrue)
	c.Assert(cfg.Device.FrontEnd, qt.Equals, "XD")
	c.Assert(cfg.Device.LowFreqLimit, qt.Equals, DefaultLowFreqLimit)
	c.Assert(cfg.Logging.Level, qt.Equals, "info")
}

func TestLoadEnvOverrides(t *testing.T) {
	c := qt.New(t)

	t.Setenv("RADIOCFG_HIGH_PA", "true")
	t.Setenv("RADIOCFG_PROP_2400", "1")
	t.Setenv("RADIOCFG_LOG_LEVEL", "DEBUG")
	t.Setenv("RADIOCFG_FRONT_END", "XS")

	cfg, err := Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Device.HighPA, qt.IsTrue)
	c.Assert(cfg.Device.Prop2400, qt.IsTrue)
	c.Assert(cfg.Device.FrontEnd, qt.Equals, "XS")
	c.Assert(cfg.Logging.Level, qt.Equals, "debug")

	t.Setenv("RADIOCFG_HIGH_PA", "maybe")
	_, err = Load("")
	c.Assert(err, qt.ErrorMatches, `failed to apply environment overrides: RADIOCFG_HIGH_PA: .*`)
}

func TestValidate(t *testing.T) {
	c := qt.New(t)

	cfg := Default()
	cfg.Device.LowFreqLimit = 2500
	c.Assert(cfg.Validate(), qt.ErrorIs, ErrInvalidBandLimits)

	cfg = Default()
	cfg.Logging.Level = "trace"
	c.Assert(cfg.Validate(), qt.ErrorIs, ErrInvalidLogLevel)

	cfg = Default()
	cfg.Logging.Format = "xml"
	c.Assert(cfg.Validate(), qt.ErrorIs, ErrInvalidLogFormat)

	cfg = Default()
	cfg.CodeGen.Symbols.Overrides = ""
	c.Assert(cfg.Validate(), qt.ErrorIs, ErrMissingPrefix)
}

func TestSaveLoad(t *testing.T) {
	c := qt.New(t)

	cfg := Default()
	cfg.Device.HighPA = true
	cfg.CodeGen.CustomOverrides = []string{"CUSTOM_OVERRIDES"}

	path := filepath.Join(t.TempDir(), "etc", "device.yaml")
	c.Assert(SaveToFile(cfg, path), qt.IsNil)

	loaded, err := LoadFromFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(loaded, qt.DeepEquals, cfg)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, `failed to read file: .*`)
}

func TestGetConfigPath(t *testing.T) {
	c := qt.New(t)
	c.Assert(GetConfigPath("CC1352P1F3"), qt.Equals, filepath.Join("etc", "radiocfg", "CC1352P1F3.yaml"))
}
