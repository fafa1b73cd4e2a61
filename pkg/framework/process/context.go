// Package process provides the per-block context handed to the processor
// by the host.
package process

import (
	"github.com/justyntemme/handysynth/pkg/framework/param"
	"github.com/justyntemme/handysynth/pkg/midi"
)

// DefaultEventCapacity is the number of MIDI messages a context holds per
// block before its buffer grows.
const DefaultEventCapacity = 512

// Context is one audio block: the output channels to fill, the MIDI
// messages that arrived for the block and the sample rate.
type Context struct {
	Output     [][]float32
	SampleRate float64
	Events     *midi.Buffer

	storage [][]float32
	params  *param.Registry
}

// NewContext creates a context with room for maxChannels channels of
// maxBlockSize frames. SetBlock reuses that storage.
func NewContext(maxChannels, maxBlockSize int, params *param.Registry) *Context {
	storage := make([][]float32, maxChannels)
	for ch := range storage {
		storage[ch] = make([]float32, maxBlockSize)
	}
	return &Context{
		Events:  midi.NewBuffer(DefaultEventCapacity),
		storage: storage,
		params:  params,
	}
}

// SetBlock points Output at channels x frames of the context's storage and
// clears the event buffer. It grows the storage if needed.
func (c *Context) SetBlock(channels, frames int) {
	for len(c.storage) < channels {
		c.storage = append(c.storage, nil)
	}
	c.Output = c.Output[:0]
	for ch := 0; ch < channels; ch++ {
		if cap(c.storage[ch]) < frames {
			c.storage[ch] = make([]float32, frames)
		}
		c.Output = append(c.Output, c.storage[ch][:frames])
	}
	c.Events.Clear()
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Output) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}
