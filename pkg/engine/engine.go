// Package engine ties the command buffer, the parameter encoders, TX power
// resolution and code generation together for one radio setting.
//
// An Engine is created per (protocol group, setting) and owns the command
// buffer of that setting. Apply writes a configuration instance into the
// buffer; the generators and Snapshot only read it. Engines are not safe
// for concurrent use.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/herlein/radiocfg/pkg/cmdbuf"
	"github.com/herlein/radiocfg/pkg/codegen"
	"github.com/herlein/radiocfg/pkg/config"
	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/override"
	"github.com/herlein/radiocfg/pkg/parammap"
	"github.com/herlein/radiocfg/pkg/txpower"
)

// Band is the frequency band of a setting
type Band int

// Frequency bands
const (
	Band433  Band = 433
	Band868  Band = 868
	Band2400 Band = 2400
)

// String returns the band name
func (b Band) String() string {
	return fmt.Sprintf("%d", int(b))
}

// OverrideTable builds and renders the register override tables
type OverrideTable interface {
	Init(cmds []descriptor.SettingCommand, group descriptor.Group)
	UpdateTxPower(txPower string, mhz float64, prop2400 bool)
	StructNames(prefix string) []string
	Generate(prefix string, data codegen.OverrideData, custom []string) string
}

// Deps are the collaborators of an engine. Cache and HighPA are shared by
// every engine of a registry.
type Deps struct {
	Source    descriptor.Source
	Device    config.DeviceConfig
	PATable   txpower.PATable
	Overrides OverrideTable
	Cache     *txpower.Cache
	HighPA    *txpower.HighPA
	Logger    *slog.Logger
}

func (d *Deps) setDefaults() {
	if d.Cache == nil {
		d.Cache = txpower.NewCache()
	}
	if d.HighPA == nil {
		d.HighPA = txpower.NewHighPA()
	}
	if d.Overrides == nil {
		d.Overrides = override.New()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Device.LowFreqLimit == 0 && d.Device.HiFreqLimit == 0 {
		d.Device.LowFreqLimit = config.DefaultLowFreqLimit
		d.Device.HiFreqLimit = config.DefaultHiFreqLimit
	}
}

// Engine is the command engine of one setting
type Engine struct {
	group   descriptor.Group
	setting *descriptor.Setting
	data    *descriptor.GroupData
	schema  descriptor.Schema
	layout  *cmdbuf.Layout
	buf     *cmdbuf.Buffer

	band     Band
	prop2400 bool

	device   config.DeviceConfig
	pa       txpower.PATable
	ovr      OverrideTable
	cache    *txpower.Cache
	hi       *txpower.HighPA
	resolver *txpower.Resolver
	log      *slog.Logger
}

// New creates the engine of a setting: it builds the command buffer and
// initializes the configurable defaults from it
func New(group descriptor.Group, settingName string, deps Deps) (*Engine, error) {
	deps.setDefaults()

	data, err := deps.Source.Group(group)
	if err != nil {
		return nil, err
	}
	setting, ok := data.Setting(settingName)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownSetting, group, settingName)
	}

	e := &Engine{
		group:   group,
		setting: setting.Clone(),
		data:    data,
		schema:  data.Schema.Clone(),
		device:  deps.Device,
		pa:      deps.PATable,
		ovr:     deps.Overrides,
		cache:   deps.Cache,
		hi:      deps.HighPA,
		log: deps.Logger.With(
			slog.String("group", string(group)),
			slog.String("setting", settingName)),
	}
	e.band = e.bandOf(setting.Frequency)
	e.prop2400 = group == descriptor.GroupProp && deps.Device.Prop2400 && e.band == Band2400
	e.resolver = &txpower.Resolver{Cache: e.cache, HighPA: e.hi, Table: e.pa, Logger: e.log}

	e.layout, err = cmdbuf.Merge(cmdbuf.MergeInput{
		Setting:       e.setting,
		Catalog:       data.Catalog,
		TestFunctions: data.TestFunctions,
		FrontEnds:     data.FrontEnds,
		FrontEnd:      deps.Device.FrontEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to merge setting: %w", err)
	}

	e.buf, err = cmdbuf.Build(cmdbuf.BuildInput{
		Catalog: data.Catalog,
		Layout:  e.layout,
		Params:  parammap.Build(data.Mapping),
		Options: e.schema,
		Logger:  e.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build command buffer: %w", err)
	}

	if err := e.initConfigurables(); err != nil {
		return nil, fmt.Errorf("failed to initialize configurables: %w", err)
	}

	e.log.Debug("engine created",
		slog.String("band", e.band.String()),
		slog.Bool("prop2400", e.prop2400),
		slog.Int("commands", len(e.layout.Commands)))

	return e, nil
}

func (e *Engine) bandOf(mhz float64) Band {
	switch {
	case mhz <= e.device.LowFreqLimit:
		return Band433
	case mhz >= e.device.HiFreqLimit:
		return Band2400
	}
	return Band868
}

// txList is a TX power option list to fill from the PA table
type txList struct {
	slot     txpower.Slot
	highPA   bool
	prop2400 bool
}

func (e *Engine) txPowerLists() []txList {
	var lists []txList
	switch {
	case e.band == Band433:
		lists = append(lists, txList{slot: txpower.Slot433})
		if e.device.HighPA {
			lists = append(lists, txList{slot: txpower.Slot433Hi, highPA: true})
		}
	case e.prop2400:
		lists = append(lists, txList{slot: txpower.Slot2400, prop2400: true})
	default:
		lists = append(lists, txList{slot: txpower.SlotDefault})
		if e.device.HighPA {
			lists = append(lists, txList{slot: txpower.SlotHigh, highPA: true})
		}
	}
	return lists
}

// initConfigurables fills the TX power option lists for the setting's band
// and sets every other configurable default from the buffer
func (e *Engine) initConfigurables() error {
	if e.pa != nil {
		for _, l := range e.txPowerLists() {
			item, ok := e.schema.Find(l.slot.Configurable())
			if !ok {
				continue
			}
			opts := e.pa.ValueList(e.setting.Frequency, l.highPA, l.prop2400)
			if len(opts) == 0 {
				e.log.Warn("no PA table entries for band",
					slog.String("configurable", item.Name),
					slog.Float64("freq_mhz", e.setting.Frequency))
				continue
			}
			item.Options = opts
			item.Default = opts[0].Name
			e.cache.Set(l.slot, opts[0].Name)
			if l.highPA && e.hi.DBm == "" {
				e.hi.DBm = opts[0].Name
			}
		}
	}

	snapshot, err := e.Snapshot()
	if err != nil {
		return err
	}
	for key, value := range snapshot {
		if isTxPowerKey(key) {
			continue
		}
		if item, ok := e.schema.Find(key); ok {
			item.Default = value
		}
	}
	return nil
}

func isTxPowerKey(key string) bool {
	return strings.HasPrefix(key, "txPower")
}

// Group returns the protocol group
func (e *Engine) Group() descriptor.Group { return e.group }

// Name returns the setting name
func (e *Engine) Name() string { return e.setting.Name }

// LongName returns the setting's descriptive name
func (e *Engine) LongName() string { return e.setting.LongName }

// Description returns the setting description
func (e *Engine) Description() string { return e.setting.Description }

// FrequencyBand returns the band of the setting's nominal frequency
func (e *Engine) FrequencyBand() Band { return e.band }

// Prop2400 reports whether the setting runs proprietary 2.4 GHz
func (e *Engine) Prop2400() bool { return e.prop2400 }

// Configurables returns the engine's configurable schema with initialized
// defaults and TX power options
func (e *Engine) Configurables() descriptor.Schema { return e.schema }

// Commands returns the merged setting commands: used, test-function and
// unused catalog commands
func (e *Engine) Commands() []descriptor.SettingCommand { return e.layout.Commands }

// Fields returns the buffer fields of a command
func (e *Engine) Fields(cmd string) ([]*cmdbuf.Field, error) {
	c, ok := e.buf.Command(cmd)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return c.Fields, nil
}

// CommandDescription returns the catalog description of a command
func (e *Engine) CommandDescription(cmd string) (string, error) {
	def, ok := e.data.Command(cmd)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return def.Description, nil
}
