// Package plugin is the host-facing side of the framework: the interfaces a
// plugin implements and the instance table a host adapter drives.
package plugin

import (
	"github.com/justyntemme/handysynth/pkg/framework/bus"
	"github.com/justyntemme/handysynth/pkg/framework/param"
	"github.com/justyntemme/handysynth/pkg/framework/plugin"
	"github.com/justyntemme/handysynth/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() (Processor, error)
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called before processing starts and whenever the
	// sample rate or maximum block size changes.
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio renders one block. It must not block or allocate.
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32

	// GetState serializes the plugin state into an opaque blob.
	GetState() ([]byte, error)

	// SetState restores a blob produced by GetState.
	SetState(data []byte) error

	// Terminate releases everything the processor holds.
	Terminate() error
}
