package synth

import (
	"math"

	"github.com/justyntemme/handysynth/pkg/engine"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
	"github.com/justyntemme/handysynth/pkg/framework/param"
)

// Bridge forwards parameter changes to the engine setters.
type Bridge struct {
	engine engine.Engine
	params *param.Registry
	log    *debug.Logger
	cancel func()
}

// NewBridge subscribes to params and forwards every change notification to
// e until Close is called.
func NewBridge(e engine.Engine, params *param.Registry, log *debug.Logger) *Bridge {
	if log == nil {
		log = debug.Default()
	}
	b := &Bridge{
		engine: e,
		params: params,
		log:    log,
	}
	b.cancel = params.Subscribe(func(p *param.Parameter) {
		b.parameterChanged(p.Key, p.GetPlainValue())
	})
	return b
}

// parameterChanged calls the one setter matching key. Unknown keys are
// ignored.
func (b *Bridge) parameterChanged(key string, plain float64) {
	switch key {
	case KeyGain:
		b.engine.SetGain(float32(plain))
	case KeyPolyphony:
		b.engine.SetPolyphony(int(math.Round(plain)))
	case KeyChorus:
		b.engine.SetChorusActive(plain >= 0.5)
	case KeyReverb:
		b.engine.SetReverbActive(plain >= 0.5)
	default:
		return
	}
	b.log.Debug("%s = %g", key, plain)
}

// Sync pushes every parameter value to the engine.
func (b *Bridge) Sync() {
	for _, p := range b.params.All() {
		b.parameterChanged(p.Key, p.GetPlainValue())
	}
}

// LoadFromEngine reads each engine getter once and stores the result as
// the parameter's display value. No listener is notified, so nothing is
// written back to the engine.
func (b *Bridge) LoadFromEngine() {
	set := func(key string, plain float64) {
		if p := b.params.GetByKey(key); p != nil {
			p.SetPlainValue(plain)
		}
	}
	set(KeyGain, float64(b.engine.Gain()))
	set(KeyPolyphony, float64(b.engine.Polyphony()))
	set(KeyChorus, boolValue(b.engine.ChorusActive()))
	set(KeyReverb, boolValue(b.engine.ReverbActive()))
}

// Close stops forwarding notifications.
func (b *Bridge) Close() {
	b.cancel()
}

func boolValue(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
