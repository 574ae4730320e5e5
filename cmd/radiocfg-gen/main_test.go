package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/herlein/radiocfg/pkg/config"
)

func TestGenerate(t *testing.T) {
	c := qt.New(t)

	*settingName = "868-2gfsk-50k"
	c.Cleanup(func() { *settingName = "" })

	cfg := config.Default()
	e, err := newEngine(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.Assert(err, qt.IsNil)

	var out bytes.Buffer
	c.Assert(generate(&out, e, cfg.CodeGen), qt.IsNil)

	got := out.String()
	c.Assert(got, qt.Contains, "RF_Mode RF_prop = {\n    .rfMode = RF_MODE_PROPRIETARY_SUB_1,\n")
	c.Assert(got, qt.Contains, "// Proprietary Mode Radio Setup Command for All Frequency Bands\n")
	c.Assert(got, qt.Contains, "rfc_CMD_PROP_RADIO_DIV_SETUP_t RF_cmdPropRadioDivSetup = {\n    .commandNo = 0x3807,\n")
	c.Assert(got, qt.Contains, "rfc_CMD_PROP_TX_t RF_cmdPropTx = {\n")
	c.Assert(got, qt.Not(qt.Contains), "CMD_TX_TEST")
}
