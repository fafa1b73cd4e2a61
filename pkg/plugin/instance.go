package plugin

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	logging "github.com/justyntemme/handysynth/pkg/framework/debug"
	"github.com/justyntemme/handysynth/pkg/framework/param"
	"github.com/justyntemme/handysynth/pkg/framework/plugin"
	"github.com/justyntemme/handysynth/pkg/framework/process"
)

var (
	// ErrNoPlugin is returned by CreateInstance before Register is called.
	ErrNoPlugin = errors.New("plugin: no plugin registered")
	// ErrUnsupportedLayout is returned for output channel counts the
	// plugin's buses do not accept.
	ErrUnsupportedLayout = errors.New("plugin: unsupported bus layout")
	// ErrPanic wraps a panic recovered from a processor call.
	ErrPanic = errors.New("plugin: processor panicked")
	// ErrReleased is returned by calls on a released instance.
	ErrReleased = errors.New("plugin: instance released")
)

// Factory info
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

var (
	globalMu          sync.RWMutex
	globalPlugin      Plugin
	globalFactoryInfo = FactoryInfo{
		Vendor: "HandySynth",
		URL:    "https://github.com/justyntemme/handysynth",
	}
)

// Register sets the global plugin instance
func Register(p Plugin) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPlugin = p
}

// Registered returns the registered plugin, or nil.
func Registered() Plugin {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPlugin
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalFactoryInfo = info
}

// GetFactoryInfo returns the factory information.
func GetFactoryInfo() FactoryInfo {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalFactoryInfo
}

// ComponentHandler receives parameter edits that originate inside the
// plugin, typically from its editor, so the host can record automation.
type ComponentHandler interface {
	BeginEdit(id uint32)
	PerformEdit(id uint32, normalized float64)
	EndEdit(id uint32)
}

// Instance is one live processor as seen by the host. Every call recovers
// panics so none cross into the host.
type Instance struct {
	id        uintptr
	info      plugin.Info
	processor Processor
	log       *logging.Logger

	handlerMu sync.RWMutex
	handler   ComponentHandler

	releaseOnce sync.Once
}

// ParamInfo describes a parameter to the host.
type ParamInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	Flags        uint32
}

var (
	instances   = make(map[uintptr]*Instance)
	instancesMu sync.RWMutex
	nextID      uintptr = 1
)

// CreateInstance asks the registered plugin for a new processor and adds it
// to the instance table.
func CreateInstance() (inst *Instance, err error) {
	p := Registered()
	if p == nil {
		return nil, ErrNoPlugin
	}
	log := logging.Default().WithPrefix("host")
	defer recoverPanic(log, "create instance", &err)

	proc, err := p.CreateProcessor()
	if err != nil {
		return nil, fmt.Errorf("plugin: create processor: %w", err)
	}
	inst = &Instance{
		info:      p.GetInfo(),
		processor: proc,
		log:       log,
	}
	registerInstance(inst)
	return inst, nil
}

// Lookup returns the live instance with the given id.
func Lookup(id uintptr) *Instance {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	if id == 0 {
		return nil
	}
	return instances[id]
}

// registerInstance stores inst and assigns its id.
func registerInstance(inst *Instance) {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	inst.id = nextID
	nextID++
	instances[inst.id] = inst
}

func unregisterInstance(id uintptr) {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	delete(instances, id)
}

// recoverPanic turns a panic into an error on *err.
func recoverPanic(log *logging.Logger, operation string, err *error) {
	if r := recover(); r != nil {
		log.Error("%s: panic: %v\n%s", operation, r, debug.Stack())
		*err = fmt.Errorf("%w in %s: %v", ErrPanic, operation, r)
	}
}

// ID returns the instance table id.
func (i *Instance) ID() uintptr {
	return i.id
}

// Info returns the metadata of the plugin the instance was created from.
func (i *Instance) Info() plugin.Info {
	return i.info
}

// Processor returns the wrapped processor.
func (i *Instance) Processor() Processor {
	return i.processor
}

func (i *Instance) live() error {
	if Lookup(i.id) != i {
		return ErrReleased
	}
	return nil
}

// Initialize prepares the processor for the given rate and block size.
func (i *Instance) Initialize(sampleRate float64, maxBlockSize int32) (err error) {
	if err := i.live(); err != nil {
		return err
	}
	defer recoverPanic(i.log, "initialize", &err)
	return i.processor.Initialize(sampleRate, maxBlockSize)
}

// SetBusArrangement negotiates the main output channel count.
func (i *Instance) SetBusArrangement(outputChannels int) (err error) {
	defer recoverPanic(i.log, "set bus arrangement", &err)
	if !i.processor.GetBuses().SetMainOutputChannels(outputChannels) {
		return fmt.Errorf("%w: %d output channels", ErrUnsupportedLayout, outputChannels)
	}
	return nil
}

// OutputChannels returns the negotiated main output channel count.
func (i *Instance) OutputChannels() int {
	return i.processor.GetBuses().MainOutputChannels()
}

// SetActive starts or stops processing.
func (i *Instance) SetActive(active bool) (err error) {
	defer recoverPanic(i.log, "set active", &err)
	return i.processor.SetActive(active)
}

// Process renders one block.
func (i *Instance) Process(ctx *process.Context) (err error) {
	defer recoverPanic(i.log, "process", &err)
	i.processor.ProcessAudio(ctx)
	return nil
}

// GetLatencySamples returns the processor's latency.
func (i *Instance) GetLatencySamples() int32 {
	return i.processor.GetLatencySamples()
}

// GetTailSamples returns the processor's tail length.
func (i *Instance) GetTailSamples() int32 {
	return i.processor.GetTailSamples()
}

// GetState returns the processor's state blob.
func (i *Instance) GetState() (data []byte, err error) {
	defer recoverPanic(i.log, "get state", &err)
	return i.processor.GetState()
}

// SetState restores a state blob.
func (i *Instance) SetState(data []byte) (err error) {
	defer recoverPanic(i.log, "set state", &err)
	return i.processor.SetState(data)
}

// GetParameterCount returns the number of parameters.
func (i *Instance) GetParameterCount() int32 {
	return i.processor.GetParameters().Count()
}

// GetParameterInfo describes the parameter at index.
func (i *Instance) GetParameterInfo(index int32) (ParamInfo, error) {
	p := i.processor.GetParameters().GetByIndex(index)
	if p == nil {
		return ParamInfo{}, fmt.Errorf("%w: index %d", param.ErrUnknownParameter, index)
	}
	return ParamInfo{
		ID:           p.ID,
		Title:        p.Name,
		ShortTitle:   p.ShortName,
		Units:        p.Unit,
		StepCount:    p.StepCount,
		DefaultValue: p.DefaultValue,
		Flags:        p.Flags,
	}, nil
}

func (i *Instance) param(id uint32) (*param.Parameter, error) {
	p := i.processor.GetParameters().Get(id)
	if p == nil {
		return nil, fmt.Errorf("%w: id %d", param.ErrUnknownParameter, id)
	}
	return p, nil
}

// GetParamStringByValue formats a normalized value for display.
func (i *Instance) GetParamStringByValue(id uint32, normalized float64) (string, error) {
	p, err := i.param(id)
	if err != nil {
		return "", err
	}
	return p.FormatValue(normalized), nil
}

// GetParamValueByString parses display text into a normalized value.
func (i *Instance) GetParamValueByString(id uint32, text string) (float64, error) {
	p, err := i.param(id)
	if err != nil {
		return 0, err
	}
	return p.ParseValue(text)
}

// NormalizedParamToPlain converts to the parameter's plain range. Unknown
// ids pass the value through.
func (i *Instance) NormalizedParamToPlain(id uint32, normalized float64) float64 {
	p, err := i.param(id)
	if err != nil {
		return normalized
	}
	return p.Denormalize(normalized)
}

// PlainParamToNormalized converts from the parameter's plain range. Unknown
// ids pass the value through.
func (i *Instance) PlainParamToNormalized(id uint32, plain float64) float64 {
	p, err := i.param(id)
	if err != nil {
		return plain
	}
	return p.Normalize(plain)
}

// GetParamNormalized returns the current normalized value, 0 for unknown ids.
func (i *Instance) GetParamNormalized(id uint32) float64 {
	p, err := i.param(id)
	if err != nil {
		return 0
	}
	return p.GetValue()
}

// SetParamNormalized applies a host automation value.
func (i *Instance) SetParamNormalized(id uint32, normalized float64) (err error) {
	defer recoverPanic(i.log, "set parameter", &err)
	return i.processor.GetParameters().SetNormalized(id, normalized)
}

// SetComponentHandler installs the host's edit handler. nil removes it.
func (i *Instance) SetComponentHandler(h ComponentHandler) {
	i.handlerMu.Lock()
	defer i.handlerMu.Unlock()
	i.handler = h
}

// Edit applies a plugin-side edit and reports it to the component handler
// as a begin/perform/end gesture.
func (i *Instance) Edit(id uint32, normalized float64) error {
	i.handlerMu.RLock()
	h := i.handler
	i.handlerMu.RUnlock()

	if h != nil {
		h.BeginEdit(id)
		defer h.EndEdit(id)
	}
	if err := i.SetParamNormalized(id, normalized); err != nil {
		return err
	}
	if h != nil {
		h.PerformEdit(id, i.GetParamNormalized(id))
	}
	return nil
}

// Release terminates the processor and removes the instance from the
// table. Further calls return ErrReleased where they can fail.
func (i *Instance) Release() (err error) {
	i.releaseOnce.Do(func() {
		unregisterInstance(i.id)
		defer recoverPanic(i.log, "terminate", &err)
		err = i.processor.Terminate()
	})
	return err
}
