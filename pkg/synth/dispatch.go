package synth

import (
	"github.com/justyntemme/handysynth/pkg/engine"
	"github.com/justyntemme/handysynth/pkg/midi"
)

// Dispatch forwards every message in events to e, in buffer order.
// Malformed messages and system messages are dropped.
func Dispatch(e engine.Engine, events *midi.Buffer) {
	for i := range events.Len() {
		offset, raw := events.At(i)
		DispatchMessage(e, offset, raw)
	}
}

// DispatchMessage decodes one raw message and calls the engine entry point
// for its status nibble with the channel from the low nibble.
func DispatchMessage(e engine.Engine, offset int32, raw []byte) {
	ev, err := midi.Decode(offset, raw)
	if err != nil {
		return
	}
	ch := int(ev.Channel())

	switch ev := ev.(type) {
	case midi.NoteOffEvent:
		e.NoteOff(ch, int(ev.NoteNumber))
	case midi.NoteOnEvent:
		e.NoteOn(ch, int(ev.NoteNumber), int(ev.Velocity))
	case midi.PolyPressureEvent:
		e.KeyPressure(ch, int(ev.NoteNumber), int(ev.Pressure))
	case midi.ControlChangeEvent:
		e.ControlChange(ch, int(ev.Controller), int(ev.Value))
	case midi.ProgramChangeEvent:
		e.ProgramChange(ch, int(ev.Program))
	case midi.ChannelPressureEvent:
		e.ChannelPressure(ch, int(ev.Pressure))
	case midi.PitchBendEvent:
		e.PitchBend(ch, int(ev.Value))
	case midi.SystemEvent:
		// SysEx and meta messages are ignored.
	}
}
