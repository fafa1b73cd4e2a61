package synth

import (
	"github.com/justyntemme/handysynth/pkg/framework/plugin"
	hostplugin "github.com/justyntemme/handysynth/pkg/plugin"
)

// Plugin creates HandySynth processors for a host.
type Plugin struct {
	Options Options
}

var _ hostplugin.Plugin = (*Plugin)(nil)

func (s *Plugin) GetInfo() plugin.Info {
	return Info
}

func (s *Plugin) CreateProcessor() (hostplugin.Processor, error) {
	p, err := NewProcessor(s.Options)
	if err != nil {
		return nil, err
	}
	return p, nil
}
