// Package synth is the HandySynth instrument: it feeds host MIDI into a
// soundfont engine, keeps the engine in step with the plugin parameters
// and binds the soundfont chosen by the user.
package synth

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/justyntemme/handysynth/pkg/engine"
	"github.com/justyntemme/handysynth/pkg/engine/melty"
	"github.com/justyntemme/handysynth/pkg/framework/bus"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
	"github.com/justyntemme/handysynth/pkg/framework/param"
	"github.com/justyntemme/handysynth/pkg/framework/plugin"
	"github.com/justyntemme/handysynth/pkg/framework/process"
	"github.com/justyntemme/handysynth/pkg/framework/state"
	hostplugin "github.com/justyntemme/handysynth/pkg/plugin"
)

const (
	// StateType tags the saved parameter tree.
	StateType = "PARAMETERS"
	// StateVersion is stamped into saved state.
	StateVersion = "1.0.0"
)

// Info describes the instrument to hosts.
var Info = plugin.Info{
	ID:       "com.handysynth.instrument",
	Name:     "HandySynth",
	Version:  "1.0.0",
	Vendor:   "HandySynth",
	Category: plugin.CategoryInstrument,
}

// Options configures a Processor. The zero value is usable.
type Options struct {
	// Engine is the synthesis engine. nil creates a meltysynth engine.
	Engine engine.Engine
	Logger *debug.Logger
	// WatchSoundfont reloads the soundfont when its file changes.
	WatchSoundfont bool
	// ProfileBlocks measures every block against its real-time budget.
	ProfileBlocks bool
}

// Processor is the instrument instance a host drives.
type Processor struct {
	log      *debug.Logger
	engine   engine.Engine
	params   *param.Registry
	buses    *bus.Configuration
	state    *state.Manager
	bridge   *Bridge
	binding  *Binding
	watcher  *Watcher
	profiler *debug.BlockProfiler

	sampleRate   float64
	maxBlockSize int32
	active       atomic.Bool
}

var _ hostplugin.Processor = (*Processor)(nil)

// NewProcessor creates the instrument and pushes the parameter defaults to
// the engine.
func NewProcessor(opts Options) (*Processor, error) {
	log := opts.Logger
	if log == nil {
		log = debug.Default()
	}
	log = log.WithPrefix("synth")

	e := opts.Engine
	if e == nil {
		e = melty.New(log.WithPrefix("engine"))
	}

	params := NewParameters()
	mgr, err := state.NewManager(params, StateType, StateVersion)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		log:        log,
		engine:     e,
		params:     params,
		buses:      bus.NewGenerator(),
		state:      mgr,
		bridge:     NewBridge(e, params, log),
		binding:    NewBinding(e, log),
		sampleRate: melty.DefaultSampleRate,
	}
	p.bridge.Sync()

	if opts.ProfileBlocks {
		p.profiler = debug.NewBlockProfiler(log, p.sampleRate)
	}
	if opts.WatchSoundfont {
		w, err := NewWatcher(p.reloadSoundfont, log)
		if err != nil {
			log.Warn("soundfont watcher disabled: %v", err)
		} else {
			p.watcher = w
		}
	}
	return p, nil
}

// Initialize sets the engine sample rate.
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("synth: sample rate %v", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("synth: block size %d", maxBlockSize)
	}
	p.sampleRate = sampleRate
	p.maxBlockSize = maxBlockSize
	p.engine.SetSampleRate(sampleRate)
	if p.profiler != nil {
		p.profiler.SetSampleRate(sampleRate)
	}
	p.log.Debug("initialized at %.0f Hz, %d frames", sampleRate, maxBlockSize)
	return nil
}

// ProcessAudio dispatches the block's MIDI messages in order, then fills
// every output channel from the engine.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	if p.profiler != nil {
		defer p.profiler.Start(ctx.NumSamples())()
	}
	if !ctx.Events.IsEmpty() {
		Dispatch(p.engine, ctx.Events)
	}
	if ctx.NumOutputChannels() == 0 {
		return
	}
	p.engine.Process(ctx.Output)
}

// SetActive records whether the host is processing. Deactivation logs the
// block profile and resets it.
func (p *Processor) SetActive(active bool) error {
	was := p.active.Swap(active)
	if was && !active {
		p.Release()
	}
	return nil
}

// Release is called when playback stops.
func (p *Processor) Release() {
	if p.profiler == nil {
		return
	}
	if p.profiler.Stats().Blocks > 0 {
		p.log.Info("block profile:\n%s", p.profiler.Report())
	}
	p.profiler.Reset()
}

// IsActive reports whether the host is processing.
func (p *Processor) IsActive() bool {
	return p.active.Load()
}

func (p *Processor) GetParameters() *param.Registry {
	return p.params
}

func (p *Processor) GetBuses() *bus.Configuration {
	return p.buses
}

func (p *Processor) GetLatencySamples() int32 {
	return 0
}

func (p *Processor) GetTailSamples() int32 {
	return 0
}

// TailSeconds is the release tail the host should keep rendering after the
// last note. The engine's own release is not reported.
func (p *Processor) TailSeconds() float64 {
	return 0
}

// AcceptsMIDI reports a MIDI input bus.
func (p *Processor) AcceptsMIDI() bool {
	return p.buses.AcceptsEvents()
}

// ProducesMIDI reports a MIDI output bus.
func (p *Processor) ProducesMIDI() bool {
	return p.buses.ProducesEvents()
}

// SupportsLayout reports whether the main output may have channels
// channels. Mono and stereo are supported.
func (p *Processor) SupportsLayout(channels int) bool {
	return p.buses.SupportsOutputLayout(channels)
}

// SetOutputChannels switches the main output layout.
func (p *Processor) SetOutputChannels(channels int) bool {
	return p.buses.SetMainOutputChannels(channels)
}

// Info returns the plugin metadata.
func (p *Processor) Info() plugin.Info {
	return Info
}

// Engine returns the wrapped engine.
func (p *Processor) Engine() engine.Engine {
	return p.engine
}

// Profiler returns the block profiler, nil when profiling is off.
func (p *Processor) Profiler() *debug.BlockProfiler {
	return p.profiler
}

// SampleRate returns the rate set by the last Initialize.
func (p *Processor) SampleRate() float64 {
	return p.sampleRate
}

// LoadParametersFromEngine stores the engine's current settings as the
// parameter values without pushing them back.
func (p *Processor) LoadParametersFromEngine() {
	p.bridge.LoadFromEngine()
}

// SoundfontPath returns the persisted soundfont path.
func (p *Processor) SoundfontPath() string {
	return p.binding.Path()
}

// SoundfontLoaded reports whether the engine holds a soundfont.
func (p *Processor) SoundfontLoaded() bool {
	return p.binding.Loaded()
}

// SetSoundfontPath persists path and loads it. An empty path is ignored.
func (p *Processor) SetSoundfontPath(path string) error {
	if path == "" {
		return nil
	}
	err := p.binding.SetSoundfont(path)
	if p.watcher != nil {
		if werr := p.watcher.Watch(path); werr != nil {
			p.log.Warn("watch %s: %v", path, werr)
		}
	}
	return err
}

// reloadSoundfont runs on the watcher goroutine with a cleaned path.
func (p *Processor) reloadSoundfont(path string) {
	if path != filepath.Clean(p.binding.Path()) {
		return
	}
	// Binding logs load failures
	_ = p.binding.Reload()
}

// Presets returns the preset tree of the loaded soundfont.
func (p *Processor) Presets() Tree {
	return p.binding.EnumeratePresets()
}

// GetState saves the four parameter values and the soundfont path.
func (p *Processor) GetState() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.state.Save(&buf, p.binding.Path()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetState restores a blob from GetState. An empty blob is ignored. A
// tree written by another plugin is skipped with a warning. Otherwise the
// parameters are restored, the saved soundfont is loaded once if present
// and every value is pushed to the engine.
func (p *Processor) SetState(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	tree, err := p.state.Load(bytes.NewReader(data))
	if err != nil {
		p.log.Warn("restore state: %v", err)
		return err
	}
	if tree.Type != p.state.Type() {
		p.log.Warn("ignoring state tree %q, want %q", tree.Type, p.state.Type())
		return nil
	}

	p.state.Apply(tree)
	var loadErr error
	if path := tree.SoundfontPath(); path != "" {
		loadErr = p.SetSoundfontPath(path)
	}
	p.bridge.Sync()
	return loadErr
}

// Terminate stops the watcher, unloads the soundfont and closes the engine.
func (p *Processor) Terminate() error {
	p.bridge.Close()
	if p.watcher != nil {
		if err := p.watcher.Close(); err != nil {
			p.log.Warn("close watcher: %v", err)
		}
	}
	if err := p.binding.Close(); err != nil {
		p.log.Warn("unload soundfont: %v", err)
	}
	return p.engine.Close()
}
