package main

import (
	"io"
	"testing"

	"github.com/justyntemme/handysynth/pkg/framework/config"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
)

func TestPluginOptions(t *testing.T) {
	log := debug.New(io.Discard, "test", 0)

	tests := []struct {
		name    string
		watch   bool
		profile bool
	}{
		{"defaults", false, true},
		{"watch soundfont", true, true},
		{"profiling off", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.WatchSoundfont = tt.watch
			cfg.ProfileBlocks = tt.profile

			opts := pluginOptions(cfg, log)
			if opts.WatchSoundfont != tt.watch {
				t.Errorf("WatchSoundfont = %v, want %v", opts.WatchSoundfont, tt.watch)
			}
			if opts.ProfileBlocks != tt.profile {
				t.Errorf("ProfileBlocks = %v, want %v", opts.ProfileBlocks, tt.profile)
			}
			if opts.Logger != log || opts.Engine != nil {
				t.Error("logger not passed through or engine preset")
			}
		})
	}
}
