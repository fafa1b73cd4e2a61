// Package melty implements engine.Engine on top of the pure Go meltysynth
// SoundFont synthesizer.
package melty

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/justyntemme/handysynth/pkg/engine"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
)

// Limits enforced by meltysynth when a synthesizer is built.
const (
	MinSampleRate = 16000
	MaxSampleRate = 192000
	MinPolyphony  = 8
	MaxPolyphony  = 256
)

// Defaults before the plugin pushes its own settings.
const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 64
	DefaultGain       = 0.5
	DefaultPolyphony  = 64
)

type soundfont struct {
	id   engine.SoundfontID
	path string
	font *meltysynth.SoundFont
}

// Synth is an engine.Engine backed by meltysynth. All methods are guarded by
// one mutex; meltysynth itself is not safe for concurrent use.
//
// Loaded soundfonts form a stack and the most recently loaded one plays.
// Settings meltysynth fixes at construction (sample rate, polyphony, effects)
// rebuild the synthesizer, which silences sounding voices. Programs, pitch
// bend and the controllers in retained are recorded per channel and replayed
// into the new synthesizer.
type Synth struct {
	mu  sync.Mutex
	log *debug.Logger

	sampleRate int32
	gain       float32
	polyphony  int
	chorus     bool
	reverb     bool

	fonts    []soundfont
	nextID   engine.SoundfontID
	synth    *meltysynth.Synthesizer
	channels [midiChannels]channelState

	left  []float32
	right []float32
}

var _ engine.Engine = (*Synth)(nil)

// New creates an engine with no soundfont loaded. A nil logger uses the
// package default.
func New(log *debug.Logger) *Synth {
	if log == nil {
		log = debug.Default().WithPrefix("engine")
	}
	s := &Synth{
		log:        log,
		sampleRate: DefaultSampleRate,
		gain:       DefaultGain,
		polyphony:  DefaultPolyphony,
		nextID:     1,
	}
	s.resetChannels()
	return s
}

func (s *Synth) SetSampleRate(rate float64) {
	r := int32(rate)
	if r < MinSampleRate {
		r = MinSampleRate
	} else if r > MaxSampleRate {
		r = MaxSampleRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r == s.sampleRate {
		return
	}
	s.sampleRate = r
	s.rebuild()
}

func (s *Synth) SetGain(gain float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = gain
	if s.synth != nil {
		s.synth.MasterVolume = gain
	}
}

func (s *Synth) Gain() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

// SetPolyphony stores the requested voice count. The synthesizer is built
// with the count clamped to [MinPolyphony, MaxPolyphony].
func (s *Synth) SetPolyphony(voices int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if voices == s.polyphony {
		return
	}
	s.polyphony = voices
	s.rebuild()
}

func (s *Synth) Polyphony() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polyphony
}

// SetChorusActive toggles chorus. meltysynth has a single switch for reverb
// and chorus, so the effect unit runs while either is on.
func (s *Synth) SetChorusActive(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on == s.chorus {
		return
	}
	s.chorus = on
	s.rebuild()
}

func (s *Synth) ChorusActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chorus
}

func (s *Synth) SetReverbActive(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on == s.reverb {
		return
	}
	s.reverb = on
	s.rebuild()
}

func (s *Synth) ReverbActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reverb
}

func (s *Synth) NoteOff(channel, key int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.synth != nil {
		s.synth.NoteOff(int32(channel), int32(key))
	}
}

func (s *Synth) NoteOn(channel, key, velocity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.synth != nil {
		s.synth.NoteOn(int32(channel), int32(key), int32(velocity))
	}
}

func (s *Synth) KeyPressure(channel, key, value int) {
	s.message(channel, 0xA0, key, value)
}

func (s *Synth) ControlChange(channel, controller, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.channel(channel); st != nil {
		st.control(controller, value)
	}
	s.send(channel, 0xB0, controller, value)
}

func (s *Synth) ProgramChange(channel, program int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.channel(channel); st != nil {
		st.program = int16(program & 0x7F)
	}
	s.send(channel, 0xC0, program, 0)
}

func (s *Synth) ChannelPressure(channel, value int) {
	s.message(channel, 0xD0, value, 0)
}

// PitchBend takes the 14-bit bend value, 8192 being centre.
func (s *Synth) PitchBend(channel, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.channel(channel); st != nil {
		st.bend = int16(value & 0x3FFF)
	}
	s.send(channel, 0xE0, value&0x7F, (value>>7)&0x7F)
}

func (s *Synth) message(channel, command, data1, data2 int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send(channel, command, data1, data2)
}

// send forwards a channel message. Callers hold s.mu.
func (s *Synth) send(channel, command, data1, data2 int) {
	if s.synth != nil {
		s.synth.ProcessMidiMessage(int32(channel), int32(command), int32(data1), int32(data2))
	}
}

func (s *Synth) channel(channel int) *channelState {
	if channel < 0 || channel >= midiChannels {
		return nil
	}
	return &s.channels[channel]
}

func (s *Synth) resetChannels() {
	for i := range s.channels {
		s.channels[i].reset()
	}
}

// LoadSoundfont parses an SF2 file and makes it the playing soundfont.
// SF3 and SFZ files are rejected with engine.ErrUnsupportedFormat.
func (s *Synth) LoadSoundfont(path string) (engine.SoundfontID, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sf3", ".sfz":
		return engine.NoSoundfont, fmt.Errorf("%w: %s", engine.ErrUnsupportedFormat, path)
	}

	font, err := readSoundFont(path)
	if err != nil {
		return engine.NoSoundfont, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.fonts = append(s.fonts, soundfont{id: id, path: path, font: font})
	s.rebuild()

	s.log.Info("loaded soundfont %d: %s (%d presets)", id, path, len(font.Presets))
	return id, nil
}

func readSoundFont(path string) (*meltysynth.SoundFont, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", engine.ErrSoundfontNotFound, path)
		}
		return nil, fmt.Errorf("open soundfont: %w", err)
	}
	defer f.Close()

	font, err := meltysynth.NewSoundFont(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", engine.ErrUnsupportedFormat, path, err)
	}
	return font, nil
}

func (s *Synth) UnloadSoundfont(id engine.SoundfontID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sf := range s.fonts {
		if sf.id != id {
			continue
		}
		s.fonts = append(s.fonts[:i], s.fonts[i+1:]...)
		if i == len(s.fonts) {
			// The playing soundfont went away
			s.rebuild()
		}
		s.log.Info("unloaded soundfont %d: %s", id, sf.path)
		return nil
	}
	return fmt.Errorf("%w: %d", engine.ErrUnknownSoundfont, id)
}

// Presets snapshots the preset list under the lock, so iteration does not
// hold the engine.
func (s *Synth) Presets(id engine.SoundfontID) iter.Seq[engine.Preset] {
	s.mu.Lock()
	var presets []*meltysynth.Preset
	for _, sf := range s.fonts {
		if sf.id == id {
			presets = sf.font.Presets
			break
		}
	}
	s.mu.Unlock()

	return func(yield func(engine.Preset) bool) {
		for _, p := range presets {
			preset := engine.Preset{
				Bank:    int(p.BankNumber),
				Program: int(p.PatchNumber),
				Name:    p.Name,
			}
			if !yield(preset) {
				return
			}
		}
	}
}

// Process renders one block. Mono output receives the average of left and
// right; on wider buses even channels get left and odd channels get right.
func (s *Synth) Process(out [][]float32) {
	if len(out) == 0 {
		return
	}
	frames := len(out[0])

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.synth == nil || frames == 0 {
		for _, ch := range out {
			clear(ch)
		}
		return
	}

	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}
	left, right := s.left[:frames], s.right[:frames]
	s.synth.Render(left, right)

	if len(out) == 1 {
		for i := range out[0] {
			out[0][i] = 0.5 * (left[i] + right[i])
		}
		return
	}
	for ch := range out {
		if ch%2 == 0 {
			copy(out[ch], left)
		} else {
			copy(out[ch], right)
		}
	}
}

// Close drops every soundfont and the synthesizer.
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fonts = nil
	s.synth = nil
	s.resetChannels()
	return nil
}

// rebuild recreates the synthesizer for the top of the soundfont stack.
// Callers hold s.mu.
func (s *Synth) rebuild() {
	if len(s.fonts) == 0 {
		s.synth = nil
		return
	}

	settings := meltysynth.NewSynthesizerSettings(s.sampleRate)
	settings.BlockSize = DefaultBlockSize
	settings.MaximumPolyphony = int32(clampPolyphony(s.polyphony))
	settings.EnableReverbAndChorus = s.chorus || s.reverb

	top := s.fonts[len(s.fonts)-1]
	synth, err := meltysynth.NewSynthesizer(top.font, settings)
	if err != nil {
		s.log.Error("build synthesizer for soundfont %d: %v", top.id, err)
		s.synth = nil
		return
	}
	synth.MasterVolume = s.gain
	s.synth = synth
	s.replay()
}

// replay restores recorded channel state into a fresh synthesizer. Bank
// select precedes the program change, coarse controllers precede fine ones.
func (s *Synth) replay() {
	for ch := range s.channels {
		st := &s.channels[ch]
		for controller, value := range st.controls {
			if value >= 0 {
				s.send(ch, 0xB0, controller, int(value))
			}
		}
		if st.program >= 0 {
			s.send(ch, 0xC0, int(st.program), 0)
		}
		if st.bend >= 0 {
			s.send(ch, 0xE0, int(st.bend)&0x7F, int(st.bend)>>7)
		}
	}
}

func clampPolyphony(voices int) int {
	if voices < MinPolyphony {
		return MinPolyphony
	}
	if voices > MaxPolyphony {
		return MaxPolyphony
	}
	return voices
}
