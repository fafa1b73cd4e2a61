// Package engine defines the contract between the plugin and the wavetable
// synthesis engine it wraps. The engine does all voice management, sample
// playback and mixing; the plugin only feeds it events and settings.
package engine

//go:generate mockgen -source=engine.go -destination=enginemock/engine.go -package=enginemock

import (
	"errors"
	"iter"
)

// SoundfontID identifies a soundfont loaded into an engine.
type SoundfontID int

// NoSoundfont is the id returned by a failed load.
const NoSoundfont SoundfontID = -1

// Valid reports whether id refers to a loaded soundfont slot.
func (id SoundfontID) Valid() bool {
	return id > 0
}

var (
	// ErrSoundfontNotFound is returned when the soundfont file does not exist.
	ErrSoundfontNotFound = errors.New("engine: soundfont not found")
	// ErrUnsupportedFormat is returned for files the engine cannot parse.
	ErrUnsupportedFormat = errors.New("engine: unsupported soundfont format")
	// ErrUnknownSoundfont is returned when unloading an id that is not loaded.
	ErrUnknownSoundfont = errors.New("engine: unknown soundfont id")
)

// Preset is one instrument of a soundfont.
type Preset struct {
	Bank    int
	Program int
	Name    string
}

// Engine is the synthesis surface the plugin drives. Implementations must be
// safe for concurrent use by a control goroutine and the audio goroutine.
//
// Numeric setters do not report failure. Channels are 0-based.
type Engine interface {
	SetSampleRate(rate float64)

	SetGain(gain float32)
	Gain() float32
	SetPolyphony(voices int)
	Polyphony() int
	SetChorusActive(on bool)
	ChorusActive() bool
	SetReverbActive(on bool)
	ReverbActive() bool

	NoteOff(channel, key int)
	NoteOn(channel, key, velocity int)
	KeyPressure(channel, key, value int)
	ControlChange(channel, controller, value int)
	ProgramChange(channel, program int)
	ChannelPressure(channel, value int)
	// PitchBend takes the 14-bit wheel value, 8192 is center.
	PitchBend(channel, value int)

	// LoadSoundfont loads the file at path and returns its id. On failure
	// the id is NoSoundfont.
	LoadSoundfont(path string) (SoundfontID, error)
	UnloadSoundfont(id SoundfontID) error
	// Presets iterates the presets of a loaded soundfont in engine order.
	// An unknown id yields nothing.
	Presets(id SoundfontID) iter.Seq[Preset]

	// Process renders len(out[0]) frames into every channel of out,
	// overwriting its contents.
	Process(out [][]float32)

	Close() error
}
