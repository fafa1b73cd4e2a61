// Package editor is the model behind the HandySynth editor window: the
// controls, the events they raise and the controller that routes those
// events into the plugin. Nothing here paints.
package editor

import "fmt"

// Control identifies an editor widget.
type Control int

const (
	ControlGain Control = iota
	ControlPolyphony
	ControlChorus
	ControlReverb
	ControlSoundfont
)

func (c Control) String() string {
	switch c {
	case ControlGain:
		return "gain"
	case ControlPolyphony:
		return "polyphony"
	case ControlChorus:
		return "chorus"
	case ControlReverb:
		return "reverb"
	case ControlSoundfont:
		return "soundfont"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}

// Event is a notification raised by a control.
type Event interface {
	Source() Control
}

// SliderChanged is raised when the gain or polyphony slider moves. Value is
// in the parameter's plain range.
type SliderChanged struct {
	Control Control
	Value   float64
}

func (e SliderChanged) Source() Control { return e.Control }

// ButtonClicked is raised when the chorus or reverb toggle changes.
type ButtonClicked struct {
	Control Control
	On      bool
}

func (e ButtonClicked) Source() Control { return e.Control }

// FileChanged is raised when a file is picked in the soundfont chooser.
type FileChanged struct {
	Path string
}

func (e FileChanged) Source() Control { return ControlSoundfont }
