package synth

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/mock/gomock"

	"github.com/justyntemme/handysynth/pkg/engine"
	"github.com/justyntemme/handysynth/pkg/engine/enginemock"
	"github.com/justyntemme/handysynth/pkg/framework/process"
	"github.com/justyntemme/handysynth/pkg/framework/state"
)

func expectSync(e *enginemock.MockEngineMockRecorder, gain float32, voices int, chorus, reverb bool) {
	gomock.InOrder(
		e.SetGain(gain),
		e.SetPolyphony(voices),
		e.SetChorusActive(chorus),
		e.SetReverbActive(reverb),
	)
}

func newTestProcessor(t *testing.T, opts Options) (*Processor, *enginemock.MockEngine) {
	t.Helper()
	e := enginemock.NewMockEngine(gomock.NewController(t))
	expectSync(e.EXPECT(), float32(DefaultGain), DefaultPolyphony, false, false)

	opts.Engine = e
	opts.Logger = quietLogger()
	p, err := NewProcessor(opts)
	if err != nil {
		t.Fatal(err)
	}
	return p, e
}

func TestProcessorDefaults(t *testing.T) {
	p, _ := newTestProcessor(t, Options{})

	if err := p.Info().Validate(); err != nil {
		t.Errorf("Info() invalid: %v", err)
	}
	if !p.AcceptsMIDI() || p.ProducesMIDI() {
		t.Error("instrument should accept MIDI and produce none")
	}
	if p.TailSeconds() != 0 || p.GetTailSamples() != 0 || p.GetLatencySamples() != 0 {
		t.Error("tail and latency should be zero")
	}
	if p.GetParameters().Count() != 4 {
		t.Errorf("parameter count = %d, want 4", p.GetParameters().Count())
	}
	if p.SoundfontPath() != "" || p.SoundfontLoaded() {
		t.Error("no soundfont should be bound")
	}
	if !p.Presets().IsEmpty() {
		t.Error("preset tree should start empty")
	}
	if p.Profiler() != nil {
		t.Error("profiler should be off by default")
	}

	for _, tt := range []struct {
		channels int
		want     bool
	}{
		{0, false}, {1, true}, {2, true}, {6, false},
	} {
		if got := p.SupportsLayout(tt.channels); got != tt.want {
			t.Errorf("SupportsLayout(%d) = %v, want %v", tt.channels, got, tt.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	p, e := newTestProcessor(t, Options{})

	e.EXPECT().SetSampleRate(48000.0)
	if err := p.Initialize(48000, 256); err != nil {
		t.Fatal(err)
	}
	if p.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %v", p.SampleRate())
	}

	if err := p.Initialize(0, 256); err == nil {
		t.Error("Initialize accepted a zero sample rate")
	}
	if err := p.Initialize(44100, 0); err == nil {
		t.Error("Initialize accepted a zero block size")
	}
}

func TestProcessAudioDispatchesBeforeRendering(t *testing.T) {
	tests := []struct {
		name     string
		channels int
	}{
		{"stereo", 2},
		{"mono", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, e := newTestProcessor(t, Options{})
			if !p.SetOutputChannels(tt.channels) {
				t.Fatalf("SetOutputChannels(%d) rejected", tt.channels)
			}

			ctx := process.NewContext(p.GetBuses().MainOutputChannels(), 64, p.GetParameters())
			ctx.SetBlock(p.GetBuses().MainOutputChannels(), 64)
			ctx.Events.Add(0, []byte{0x90, 60, 100})
			ctx.Events.Add(12, []byte{0xE1, 0x00, 0x40})

			gomock.InOrder(
				e.EXPECT().NoteOn(0, 60, 100),
				e.EXPECT().PitchBend(1, 8192),
				e.EXPECT().Process(gomock.Any()).Do(func(out [][]float32) {
					if len(out) != tt.channels {
						t.Errorf("Process got %d channels, want %d", len(out), tt.channels)
					}
					if len(out[0]) != 64 {
						t.Errorf("Process got %d frames, want 64", len(out[0]))
					}
				}),
			)
			p.ProcessAudio(ctx)
		})
	}
}

func TestProcessAudioNoOutput(t *testing.T) {
	p, e := newTestProcessor(t, Options{})
	ctx := process.NewContext(0, 0, nil)
	ctx.Events.Add(0, []byte{0x80, 60, 0})

	e.EXPECT().NoteOff(0, 60)
	p.ProcessAudio(ctx)
}

func TestProcessAudioWithoutEvents(t *testing.T) {
	p, e := newTestProcessor(t, Options{})
	ctx := process.NewContext(2, 32, nil)
	ctx.SetBlock(2, 32)
	ctx.Events = nil

	// Only the render reaches the engine
	e.EXPECT().Process(gomock.Any())
	p.ProcessAudio(ctx)
}

func TestProfiledBlocks(t *testing.T) {
	p, e := newTestProcessor(t, Options{ProfileBlocks: true})
	e.EXPECT().Process(gomock.Any()).Times(3)

	ctx := process.NewContext(2, 32, nil)
	ctx.SetBlock(2, 32)
	p.SetActive(true)
	for range 3 {
		p.ProcessAudio(ctx)
	}
	if got := p.Profiler().Stats().Blocks; got != 3 {
		t.Errorf("profiled %d blocks, want 3", got)
	}

	p.SetActive(false)
	if p.IsActive() {
		t.Error("IsActive() after SetActive(false)")
	}
	if got := p.Profiler().Stats().Blocks; got != 0 {
		t.Errorf("profile not reset on deactivation: %d blocks", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	src, se := newTestProcessor(t, Options{})
	se.EXPECT().SetGain(float32(0.8))
	se.EXPECT().SetPolyphony(512)
	se.EXPECT().SetReverbActive(true)
	se.EXPECT().LoadSoundfont("/fonts/piano.sf2").Return(engine.SoundfontID(1), nil)

	params := src.GetParameters()
	params.SetPlainByKey(KeyGain, 0.8)
	params.SetPlainByKey(KeyPolyphony, 512)
	params.SetPlainByKey(KeyReverb, 1)
	if err := src.SetSoundfontPath("/fonts/piano.sf2"); err != nil {
		t.Fatal(err)
	}

	blob, err := src.GetState()
	if err != nil {
		t.Fatal(err)
	}

	dst, de := newTestProcessor(t, Options{})
	gomock.InOrder(
		de.EXPECT().LoadSoundfont("/fonts/piano.sf2").Return(engine.SoundfontID(1), nil).Times(1),
		de.EXPECT().SetGain(float32(0.8)),
		de.EXPECT().SetPolyphony(512),
		de.EXPECT().SetChorusActive(false),
		de.EXPECT().SetReverbActive(true),
	)
	if err := dst.SetState(blob); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	for _, want := range src.GetParameters().All() {
		got := dst.GetParameters().GetByKey(want.Key).GetPlainValue()
		if math.Abs(got-want.GetPlainValue()) > 1e-9 {
			t.Errorf("%s = %v, want %v", want.Key, got, want.GetPlainValue())
		}
	}
	if dst.SoundfontPath() != "/fonts/piano.sf2" || !dst.SoundfontLoaded() {
		t.Errorf("soundfont not restored: %q", dst.SoundfontPath())
	}
}

func TestSetStateWithoutSoundfont(t *testing.T) {
	src, se := newTestProcessor(t, Options{})
	se.EXPECT().SetChorusActive(true)
	src.GetParameters().SetPlainByKey(KeyChorus, 1)
	blob, err := src.GetState()
	if err != nil {
		t.Fatal(err)
	}

	// Sync only, no LoadSoundfont.
	dst, de := newTestProcessor(t, Options{})
	expectSync(de.EXPECT(), float32(DefaultGain), DefaultPolyphony, true, false)
	if err := dst.SetState(blob); err != nil {
		t.Fatal(err)
	}
}

func TestSetStateRejected(t *testing.T) {
	foreign := func() []byte {
		var buf bytes.Buffer
		tree := state.Tree{Type: "OTHERPLUGIN", Soundfont: &state.Soundfont{Path: "x.sf2"}}
		if err := state.Encode(&buf, tree, semver.MustParse(StateVersion)); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, nil},
		{"foreign tree", foreign, nil},
		{"garbage", []byte("not a state blob"), state.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No engine expectations beyond construction.
			p, _ := newTestProcessor(t, Options{})
			p.GetParameters().GetByKey(KeyGain).SetPlainValue(0.3)

			err := p.SetState(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetState() error = %v, want %v", err, tt.wantErr)
			}
			if v := p.GetParameters().GetByKey(KeyGain).GetPlainValue(); math.Abs(v-0.3) > 1e-9 {
				t.Errorf("gain changed to %v", v)
			}
			if p.SoundfontPath() != "" {
				t.Errorf("soundfont bound to %q", p.SoundfontPath())
			}
		})
	}
}

func TestSetStateLoadFailure(t *testing.T) {
	src, se := newTestProcessor(t, Options{})
	se.EXPECT().LoadSoundfont("gone.sf2").Return(engine.NoSoundfont, engine.ErrSoundfontNotFound)
	src.SetSoundfontPath("gone.sf2")
	blob, err := src.GetState()
	if err != nil {
		t.Fatal(err)
	}

	dst, de := newTestProcessor(t, Options{})
	de.EXPECT().LoadSoundfont("gone.sf2").Return(engine.NoSoundfont, engine.ErrSoundfontNotFound)
	expectSync(de.EXPECT(), float32(DefaultGain), DefaultPolyphony, false, false)

	if err := dst.SetState(blob); !errors.Is(err, engine.ErrSoundfontNotFound) {
		t.Fatalf("SetState() error = %v, want ErrSoundfontNotFound", err)
	}
	if dst.SoundfontPath() != "gone.sf2" {
		t.Errorf("SoundfontPath() = %q, want the saved path", dst.SoundfontPath())
	}
}

func TestSetSoundfontPathEmpty(t *testing.T) {
	p, e := newTestProcessor(t, Options{})
	e.EXPECT().LoadSoundfont("a.sf2").Return(engine.SoundfontID(1), nil)

	p.SetSoundfontPath("a.sf2")
	if err := p.SetSoundfontPath(""); err != nil {
		t.Fatal(err)
	}
	if p.SoundfontPath() != "a.sf2" || !p.SoundfontLoaded() {
		t.Error("empty path replaced the soundfont")
	}
}

func TestTerminate(t *testing.T) {
	p, e := newTestProcessor(t, Options{})
	e.EXPECT().LoadSoundfont("a.sf2").Return(engine.SoundfontID(4), nil)
	gomock.InOrder(
		e.EXPECT().UnloadSoundfont(engine.SoundfontID(4)).Return(nil),
		e.EXPECT().Close().Return(nil),
	)

	p.SetSoundfontPath("a.sf2")
	if err := p.Terminate(); err != nil {
		t.Fatal(err)
	}
	// The bridge is detached: this must not reach the engine.
	p.GetParameters().SetPlainByKey(KeyGain, 0.1)
}

func TestProcessorWithDefaultEngine(t *testing.T) {
	p, err := NewProcessor(Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Terminate()

	e := p.Engine()
	if e.Gain() != float32(DefaultGain) || e.Polyphony() != DefaultPolyphony {
		t.Errorf("defaults not pushed: gain %v, polyphony %d", e.Gain(), e.Polyphony())
	}
	p.GetParameters().SetPlainByKey(KeyGain, 0.8)
	if e.Gain() != float32(0.8) {
		t.Errorf("Gain() = %v, want 0.8", e.Gain())
	}
}

func TestWatchedSoundfontReloads(t *testing.T) {
	p, e := newTestProcessor(t, Options{WatchSoundfont: true})
	if p.watcher == nil {
		t.Skip("fsnotify not supported")
	}
	p.watcher.SetDelay(50 * time.Millisecond)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "piano.sf2"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	// The bound path is not clean; the watcher reports the cleaned one
	font := dir + "/./piano.sf2"

	reloaded := make(chan struct{})
	gomock.InOrder(
		e.EXPECT().LoadSoundfont(font).Return(engine.SoundfontID(1), nil),
		e.EXPECT().UnloadSoundfont(engine.SoundfontID(1)).Return(nil),
		e.EXPECT().LoadSoundfont(font).DoAndReturn(func(string) (engine.SoundfontID, error) {
			close(reloaded)
			return engine.SoundfontID(2), nil
		}),
		e.EXPECT().UnloadSoundfont(engine.SoundfontID(2)).Return(nil),
		e.EXPECT().Close().Return(nil),
	)

	if err := p.SetSoundfontPath(font); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(font, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
	// A second reload would be an unexpected engine call
	time.Sleep(300 * time.Millisecond)

	if got := p.binding.ID(); got != engine.SoundfontID(2) {
		t.Errorf("bound id = %d after reload, want 2", got)
	}
	if err := p.Terminate(); err != nil {
		t.Fatal(err)
	}
}

func TestUnwatchedSoundfontIgnored(t *testing.T) {
	p, e := newTestProcessor(t, Options{})
	if p.watcher != nil {
		t.Fatal("watcher created without WatchSoundfont")
	}
	e.EXPECT().LoadSoundfont("a.sf2").Return(engine.SoundfontID(1), nil)
	if err := p.SetSoundfontPath("a.sf2"); err != nil {
		t.Fatal(err)
	}

	// Changes to some other file never reach the engine
	p.reloadSoundfont("b.sf2")
}

func TestLoadParametersFromEngine(t *testing.T) {
	p, e := newTestProcessor(t, Options{})
	e.EXPECT().Gain().Return(float32(0.25))
	e.EXPECT().Polyphony().Return(512)
	e.EXPECT().ChorusActive().Return(false)
	e.EXPECT().ReverbActive().Return(true)
	// Any setter call would be unexpected

	p.LoadParametersFromEngine()

	params := p.GetParameters()
	if v := params.GetByKey(KeyGain).GetPlainValue(); math.Abs(v-0.25) > 1e-6 {
		t.Errorf("gain = %v, want 0.25", v)
	}
	if v := params.GetByKey(KeyPolyphony).Int(); v != 512 {
		t.Errorf("polyphony = %d, want 512", v)
	}
	if params.GetByKey(KeyChorus).Bool() || !params.GetByKey(KeyReverb).Bool() {
		t.Error("effects not copied from the engine")
	}
}
