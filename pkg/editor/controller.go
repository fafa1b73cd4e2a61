package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/justyntemme/handysynth/pkg/framework/debug"
	"github.com/justyntemme/handysynth/pkg/framework/param"
	"github.com/justyntemme/handysynth/pkg/synth"
)

var (
	// ErrUnhandledEvent is returned for an event its source cannot raise,
	// such as a slider event from the chorus toggle.
	ErrUnhandledEvent = errors.New("editor: unhandled event")
	// ErrUnsupportedFile is returned for files the soundfont chooser filters
	// out.
	ErrUnsupportedFile = errors.New("editor: not a soundfont file")
)

// Synth is what the editor needs from the plugin.
type Synth interface {
	// LoadParametersFromEngine copies the engine getters into the
	// parameters without notifying.
	LoadParametersFromEngine()
	GetParameters() *param.Registry
	SoundfontPath() string
	SetSoundfontPath(path string) error
	Presets() synth.Tree
}

var _ Synth = (*synth.Processor)(nil)

// Display is what the editor window shows.
type Display struct {
	Gain          float64
	GainText      string
	Polyphony     int
	PolyphonyText string
	Chorus        bool
	Reverb        bool
	SoundfontPath string
	Presets       synth.Tree
	// Status is the last soundfont error, empty when the load worked.
	Status string
}

// Controller routes control events into the plugin and keeps the display
// in step with the parameters.
type Controller struct {
	synth  Synth
	params *param.Registry
	log    *debug.Logger
	cancel func()

	mu       sync.Mutex
	display  Display
	onChange func(Display)
}

// NewController seeds the parameters from the engine getters and builds the
// initial display from them and the persisted soundfont path. Nothing is
// written back to the engine.
func NewController(s Synth, log *debug.Logger) *Controller {
	if log == nil {
		log = debug.Default()
	}
	c := &Controller{
		synth:  s,
		params: s.GetParameters(),
		log:    log.WithPrefix("editor"),
	}
	c.Refresh()
	c.cancel = c.params.Subscribe(c.parameterChanged)
	return c
}

// Refresh reseeds the parameters from the engine and reloads the display
// from them, the soundfont path and the preset tree.
func (c *Controller) Refresh() {
	c.synth.LoadParametersFromEngine()

	c.mu.Lock()
	for _, key := range []string{synth.KeyGain, synth.KeyPolyphony, synth.KeyChorus, synth.KeyReverb} {
		if p := c.params.GetByKey(key); p != nil {
			c.show(p)
		}
	}
	c.display.SoundfontPath = c.synth.SoundfontPath()
	c.display.Presets = c.synth.Presets()
	c.mu.Unlock()

	c.changed()
}

// Display returns the current display state.
func (c *Controller) Display() Display {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

// OnChange registers fn to be called with the new display after every
// change. nil removes it.
func (c *Controller) OnChange(fn func(Display)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *Controller) changed() {
	c.mu.Lock()
	fn, d := c.onChange, c.display
	c.mu.Unlock()
	if fn != nil {
		fn(d)
	}
}

// parameterChanged mirrors a parameter change, from the editor or from host
// automation, into the display.
func (c *Controller) parameterChanged(p *param.Parameter) {
	c.mu.Lock()
	shown := c.show(p)
	c.mu.Unlock()
	if shown {
		c.changed()
	}
}

// show copies p into the display. Callers hold c.mu.
func (c *Controller) show(p *param.Parameter) bool {
	switch p.Key {
	case synth.KeyGain:
		c.display.Gain = p.GetPlainValue()
		c.display.GainText = p.FormatValue(p.GetValue())
	case synth.KeyPolyphony:
		c.display.Polyphony = p.Int()
		c.display.PolyphonyText = p.FormatValue(p.GetValue())
	case synth.KeyChorus:
		c.display.Chorus = p.Bool()
	case synth.KeyReverb:
		c.display.Reverb = p.Bool()
	default:
		return false
	}
	return true
}

// Dispatch handles one event by its source.
func (c *Controller) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case SliderChanged:
		switch ev.Control {
		case ControlGain:
			return c.params.SetPlainByKey(synth.KeyGain, ev.Value)
		case ControlPolyphony:
			return c.params.SetPlainByKey(synth.KeyPolyphony, math.Round(ev.Value))
		}
	case ButtonClicked:
		on := 0.0
		if ev.On {
			on = 1
		}
		switch ev.Control {
		case ControlChorus:
			return c.params.SetPlainByKey(synth.KeyChorus, on)
		case ControlReverb:
			return c.params.SetPlainByKey(synth.KeyReverb, on)
		}
	case FileChanged:
		return c.fileChanged(ev.Path)
	}
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrUnhandledEvent)
	}
	return fmt.Errorf("%w: %T from %s", ErrUnhandledEvent, ev, ev.Source())
}

// fileChanged persists the chosen path, loads it and rebuilds the tree.
func (c *Controller) fileChanged(path string) error {
	if !AcceptSoundfontFile(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	err := c.synth.SetSoundfontPath(path)
	tree := c.synth.Presets()

	c.mu.Lock()
	c.display.SoundfontPath = c.synth.SoundfontPath()
	c.display.Presets = tree
	c.display.Status = ""
	if err != nil {
		c.display.Status = err.Error()
	}
	c.mu.Unlock()

	c.changed()
	return err
}

// Run dispatches events until ctx is done or events is closed. Dispatch
// errors are logged and do not stop the loop.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := c.Dispatch(ev); err != nil {
				c.log.Warn("%v", err)
			}
		}
	}
}

// Close stops mirroring parameter changes.
func (c *Controller) Close() {
	c.cancel()
}
