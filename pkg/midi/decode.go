package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// ErrMalformed is returned for messages that are empty, start with a data
// byte, or are shorter than their status requires.
var ErrMalformed = errors.New("midi: malformed message")

// messageLength is the size of a channel voice message by status nibble.
func messageLength(status byte) int {
	switch status & 0xF0 {
	case StatusProgramChange, StatusChannelPressure:
		return 2
	case StatusSystem:
		return 1
	default:
		return 3
	}
}

// Decode turns one raw message into a typed event. The channel is the low
// nibble of the status byte.
func Decode(offset int32, raw []byte) (Event, error) {
	if len(raw) == 0 || raw[0] < 0x80 {
		return nil, ErrMalformed
	}
	status := raw[0]
	if len(raw) < messageLength(status) {
		return nil, fmt.Errorf("%w: status 0x%02X needs %d bytes, got %d",
			ErrMalformed, status, messageLength(status), len(raw))
	}

	base := BaseEvent{EventChannel: status & 0x0F, Offset: offset}
	if status&0xF0 == StatusSystem {
		return SystemEvent{
			BaseEvent: BaseEvent{Offset: offset},
			Status:    status,
			Data:      raw[1:],
		}, nil
	}

	for _, b := range raw[1:messageLength(status)] {
		if b >= 0x80 {
			return nil, fmt.Errorf("%w: data byte 0x%02X", ErrMalformed, b)
		}
	}

	msg := gomidi.Message(raw[:messageLength(status)])
	var ch, d1, d2 uint8

	switch status & 0xF0 {
	case StatusNoteOff:
		msg.GetNoteOff(&ch, &d1, &d2)
		return NoteOffEvent{BaseEvent: base, NoteNumber: d1, Velocity: d2}, nil
	case StatusNoteOn:
		msg.GetNoteOn(&ch, &d1, &d2)
		return NoteOnEvent{BaseEvent: base, NoteNumber: d1, Velocity: d2}, nil
	case StatusPolyPressure:
		msg.GetPolyAfterTouch(&ch, &d1, &d2)
		return PolyPressureEvent{BaseEvent: base, NoteNumber: d1, Pressure: d2}, nil
	case StatusControlChange:
		msg.GetControlChange(&ch, &d1, &d2)
		return ControlChangeEvent{BaseEvent: base, Controller: d1, Value: d2}, nil
	case StatusProgramChange:
		msg.GetProgramChange(&ch, &d1)
		return ProgramChangeEvent{BaseEvent: base, Program: d1}, nil
	case StatusChannelPressure:
		msg.GetAfterTouch(&ch, &d1)
		return ChannelPressureEvent{BaseEvent: base, Pressure: d1}, nil
	default: // StatusPitchBend
		var rel int16
		var abs uint16
		msg.GetPitchBend(&ch, &rel, &abs)
		return PitchBendEvent{BaseEvent: base, Value: abs}, nil
	}
}
