package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/justyntemme/handysynth/pkg/editor"
	"github.com/justyntemme/handysynth/pkg/engine/melty"
	"github.com/justyntemme/handysynth/pkg/synth"
)

func runPresets(args []string) error {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	cfgPath := configFlag(fs)
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = presetsUsage
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		presetsUsage()
		return errors.New("expected one soundfont file")
	}

	cfg, log, closer, err := setup(*cfgPath, *verbose)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	path := cfg.ResolveSoundfont(fs.Arg(0))
	if !editor.AcceptSoundfontFile(path) {
		return fmt.Errorf("%w: %s", editor.ErrUnsupportedFile, path)
	}

	e := melty.New(log.WithPrefix("engine"))
	defer e.Close()
	b := synth.NewBinding(e, log)
	defer b.Close()
	if err := b.SetSoundfont(path); err != nil {
		return err
	}

	tree := b.EnumeratePresets()
	fmt.Print(editor.RenderTree(tree))
	log.Info("%s: %d banks, %d presets", path, len(tree.Banks), tree.Len())
	return nil
}

func presetsUsage() {
	fmt.Println("handysynth presets - list the banks and presets of a soundfont")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  handysynth presets [-config PATH] [-v] FONT")
}
