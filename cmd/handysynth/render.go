package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/justyntemme/handysynth/pkg/framework/config"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
	"github.com/justyntemme/handysynth/pkg/midi"
	"github.com/justyntemme/handysynth/pkg/plugin"
	"github.com/justyntemme/handysynth/pkg/synth"
)

var errNoSoundfont = errors.New("no soundfont loaded (use -sf or -state)")

type renderOptions struct {
	Soundfont  string
	In         string
	Out        string
	SampleRate int
	BlockSize  int
	Tail       time.Duration
	Mono       bool
	State      string
	SaveState  string

	// Parameter overrides in plain values, applied after -state.
	Overrides map[uint32]float64
}

// soundfontHolder is the part of the processor the renderer binds fonts
// through.
type soundfontHolder interface {
	SetSoundfontPath(path string) error
	SoundfontPath() string
	SoundfontLoaded() bool
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)

	cfgPath := configFlag(fs)
	sf := fs.String("sf", "", "soundfont file (.sf2)")
	in := fs.String("in", "", "standard MIDI file to render")
	out := fs.String("out", "out.wav", "WAV file to write")
	rate := fs.Int("rate", 44100, "sample rate in Hz")
	block := fs.Int("block", 512, "host block size in frames")
	tail := fs.Duration("tail", 2*time.Second, "render time after the last event")
	gain := fs.Float64("gain", synth.DefaultGain, "output gain, 0 to 1")
	polyphony := fs.Int("polyphony", synth.DefaultPolyphony, "voice limit")
	chorus := fs.Bool("chorus", false, "enable chorus")
	reverb := fs.Bool("reverb", false, "enable reverb")
	mono := fs.Bool("mono", false, "render a mono file")
	statePath := fs.String("state", "", "restore plugin state from file")
	saveState := fs.String("save-state", "", "write plugin state to file after rendering")
	verbose := fs.Bool("v", false, "debug logging and note listing")

	fs.Usage = renderUsage
	_ = fs.Parse(args)

	if *in == "" {
		return errors.New("-in is required")
	}

	cfg, log, closer, err := setup(*cfgPath, *verbose)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	opts := renderOptions{
		Soundfont:  cfg.ResolveSoundfont(*sf),
		In:         *in,
		Out:        *out,
		SampleRate: *rate,
		BlockSize:  *block,
		Tail:       *tail,
		Mono:       *mono,
		State:      *statePath,
		SaveState:  *saveState,
		Overrides:  map[uint32]float64{},
	}
	// Only flags given on the command line override a restored state.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "gain":
			opts.Overrides[synth.ParamGain] = *gain
		case "polyphony":
			opts.Overrides[synth.ParamPolyphony] = float64(*polyphony)
		case "chorus":
			opts.Overrides[synth.ParamChorus] = boolPlain(*chorus)
		case "reverb":
			opts.Overrides[synth.ParamReverb] = boolPlain(*reverb)
		}
	})

	return render(opts, cfg, log, *verbose)
}

func boolPlain(on bool) float64 {
	if on {
		return 1
	}
	return 0
}

// pluginOptions maps the loaded configuration onto the instrument.
func pluginOptions(cfg *config.Config, log *debug.Logger) synth.Options {
	return synth.Options{
		Logger:         log,
		ProfileBlocks:  cfg.ProfileBlocks,
		WatchSoundfont: cfg.WatchSoundfont,
	}
}

func render(opts renderOptions, cfg *config.Config, log *debug.Logger, verbose bool) error {
	if opts.SampleRate <= 0 || opts.BlockSize <= 0 {
		return fmt.Errorf("invalid rate %d or block size %d", opts.SampleRate, opts.BlockSize)
	}

	plugin.Register(&synth.Plugin{Options: pluginOptions(cfg, log)})
	inst, err := plugin.CreateInstance()
	if err != nil {
		return err
	}
	defer inst.Release()

	fonts, ok := inst.Processor().(soundfontHolder)
	if !ok {
		return fmt.Errorf("%s cannot bind soundfonts", inst.Info().Name)
	}

	if opts.State != "" {
		data, err := os.ReadFile(opts.State)
		if err != nil {
			return err
		}
		if err := inst.SetState(data); err != nil {
			return fmt.Errorf("restore %s: %w", opts.State, err)
		}
	}
	if opts.Soundfont != "" {
		if err := fonts.SetSoundfontPath(opts.Soundfont); err != nil {
			return err
		}
	}
	if !fonts.SoundfontLoaded() {
		return errNoSoundfont
	}
	for id, plain := range opts.Overrides {
		if err := inst.SetParamNormalized(id, inst.PlainParamToNormalized(id, plain)); err != nil {
			return err
		}
	}

	f, err := os.Open(opts.In)
	if err != nil {
		return err
	}
	sg, notes, err := readSong(f, float64(opts.SampleRate))
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", opts.In, err)
	}
	if verbose {
		for _, n := range notes {
			log.Debug("%8.3fs ch %2d %s", seconds(n.frame, float64(opts.SampleRate)), n.channel+1, midi.NoteNumberToName(n.key))
		}
	}

	channels := 2
	if opts.Mono {
		channels = 1
	}
	host, err := plugin.NewOfflineHost(inst, float64(opts.SampleRate), opts.BlockSize, channels)
	if err != nil {
		return err
	}
	defer host.Close()

	wf, err := os.Create(opts.Out)
	if err != nil {
		return err
	}
	defer wf.Close()
	w := newWavWriter(wf, opts.SampleRate, channels)

	analyzers := make([]debug.Analyzer, channels)
	total := sg.frames + int64(opts.Tail.Seconds()*float64(opts.SampleRate))
	err = host.Render(sg.messages, total, func(block [][]float32) error {
		for ch := range block {
			analyzers[ch].Add(block[ch])
		}
		return w.Write(block)
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write %s: %w", opts.Out, err)
	}

	fmt.Printf("%s: %d notes, %.2fs at %d Hz, soundfont %s\n",
		opts.Out, sg.notes, seconds(total, float64(opts.SampleRate)), opts.SampleRate, fonts.SoundfontPath())
	for ch := range analyzers {
		r := analyzers[ch].Result()
		name := channelName(ch, channels)
		fmt.Printf("  %s %s\n", name, r)
		for _, issue := range r.Issues(name) {
			log.Warn("%s", issue)
		}
	}

	if opts.SaveState != "" {
		data, err := inst.GetState()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.SaveState, data, 0o644); err != nil {
			return err
		}
		log.Info("state saved to %s", opts.SaveState)
	}
	return nil
}

func channelName(ch, channels int) string {
	if channels == 1 {
		return "mono"
	}
	if ch == 0 {
		return "left"
	}
	return "right"
}

func renderUsage() {
	fmt.Println("handysynth render - render a standard MIDI file to WAV")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  handysynth render -in song.mid [-sf font.sf2] [-out song.wav] [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -sf PATH          soundfont; relative paths resolve against soundfont_dir")
	fmt.Println("  -in PATH          standard MIDI file (format 0 or 1)")
	fmt.Println("  -out PATH         output WAV, 16-bit PCM (default out.wav)")
	fmt.Println("  -rate HZ          sample rate (default 44100)")
	fmt.Println("  -block N          frames per host block (default 512)")
	fmt.Println("  -tail DUR         extra time after the last event (default 2s)")
	fmt.Println("  -gain 0..1        output gain (default 0.6)")
	fmt.Println("  -polyphony N      voice limit, 32 to 1024 (default 128)")
	fmt.Println("  -chorus           enable chorus")
	fmt.Println("  -reverb           enable reverb")
	fmt.Println("  -mono             write one channel")
	fmt.Println("  -state PATH       restore a saved plugin state first")
	fmt.Println("  -save-state PATH  save the plugin state when done")
	fmt.Println("  -config PATH      config file")
	fmt.Println("  -v                debug logging, list every note")
	fmt.Println("")
	fmt.Println("Parameters given on the command line override the restored state.")
}
