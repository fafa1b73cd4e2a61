// Command handysynth is an offline host for the HandySynth instrument: it
// lists soundfont presets and renders standard MIDI files to WAV.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/justyntemme/handysynth/pkg/framework/config"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
)

// Overridable with ldflags:
// go build -ldflags "-X main.version=1.2.3 -X main.commit=abcd123 -X main.date=2026-01-02T03:04:05Z"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "presets":
		exit(runPresets(os.Args[2:]))
	case "render":
		exit(runRender(os.Args[2:]))
	case "version", "-v", "--version":
		printVersion()
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			switch os.Args[2] {
			case "presets":
				presetsUsage()
			case "render":
				renderUsage()
			default:
				usage()
			}
		} else {
			usage()
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func exit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "handysynth: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("handysynth - soundfont instrument, offline host")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  handysynth <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  presets   list the banks and presets of a soundfont")
	fmt.Println("  render    render a standard MIDI file to WAV")
	fmt.Println("  version   print version information")
	fmt.Println("")
	fmt.Println("Help:")
	fmt.Println("  handysynth help presets")
	fmt.Println("  handysynth help render")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  handysynth presets GeneralUser.sf2")
	fmt.Println("  handysynth render -sf GeneralUser.sf2 -in song.mid -out song.wav -reverb")
	fmt.Println("  handysynth render -in song.mid -out song.wav -state session.state")
}

func printVersion() {
	fmt.Printf("handysynth %s (commit %s, built %s)\n", version, commit, date)
}

// configFlag adds the -config flag shared by every command.
func configFlag(fs *flag.FlagSet) *string {
	def, err := config.Path()
	if err != nil {
		def = ""
	}
	return fs.String("config", def, "config file (JSON)")
}

// setup loads the config and builds the root logger. verbose forces the
// debug level.
func setup(path string, verbose bool) (*config.Config, *debug.Logger, io.Closer, error) {
	cfg := config.Default()
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, nil, nil, err
		}
		cfg = c
	}
	if verbose {
		cfg.LogLevel = debug.LogLevelDebug.String()
	}
	log, closer, err := cfg.NewLogger("handysynth")
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closer, nil
}
