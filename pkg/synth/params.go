package synth

import (
	"github.com/justyntemme/handysynth/pkg/framework/param"
)

const (
	// Parameter IDs
	ParamGain uint32 = iota
	ParamPolyphony
	ParamChorus
	ParamReverb
)

// Parameter keys, as stored in the state tree.
const (
	KeyGain      = "gain"
	KeyPolyphony = "polyphony"
	KeyChorus    = "chorus"
	KeyReverb    = "reverb"
)

const (
	DefaultGain      = 0.6
	MinPolyphony     = 32
	MaxPolyphony     = 1024
	DefaultPolyphony = 128
)

// NewParameters builds the four host-automatable parameters.
func NewParameters() *param.Registry {
	r := param.NewRegistry()
	// IDs and keys are fixed above, Add cannot fail.
	_ = r.Add(
		param.LevelParameter(ParamGain, KeyGain, "Gain", DefaultGain).Build(),
		param.VoicesParameter(ParamPolyphony, KeyPolyphony, "Polyphony", MinPolyphony, MaxPolyphony, DefaultPolyphony).Build(),
		param.SwitchParameter(ParamChorus, KeyChorus, "Chorus", false).Build(),
		param.SwitchParameter(ParamReverb, KeyReverb, "Reverb", false).Build(),
	)
	return r
}
