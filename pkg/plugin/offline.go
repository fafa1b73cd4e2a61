package plugin

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/justyntemme/handysynth/pkg/framework/process"
)

// TimedMessage is a raw MIDI message at an absolute frame position.
type TimedMessage struct {
	Frame int64
	Data  []byte
}

// OfflineHost drives an instance faster than real time: it cuts a message
// list into host-sized blocks, stamps each message with its offset inside
// the block and renders block after block.
type OfflineHost struct {
	inst       *Instance
	ctx        *process.Context
	sampleRate float64
	blockSize  int
	channels   int
}

// NewOfflineHost negotiates the layout, initializes and activates inst.
func NewOfflineHost(inst *Instance, sampleRate float64, blockSize, channels int) (*OfflineHost, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("plugin: block size %d", blockSize)
	}
	if err := inst.SetBusArrangement(channels); err != nil {
		return nil, err
	}
	if err := inst.Initialize(sampleRate, int32(blockSize)); err != nil {
		return nil, err
	}
	if err := inst.SetActive(true); err != nil {
		return nil, err
	}
	ctx := process.NewContext(channels, blockSize, inst.Processor().GetParameters())
	ctx.SampleRate = sampleRate
	return &OfflineHost{
		inst:       inst,
		ctx:        ctx,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		channels:   channels,
	}, nil
}

// Render renders frames frames. Messages are delivered in frame order,
// ties keep their list order; messages at or after frames are dropped.
// sink sees each block before the next one is rendered and must not keep
// the slices.
func (h *OfflineHost) Render(messages []TimedMessage, frames int64, sink func(block [][]float32) error) error {
	msgs := slices.Clone(messages)
	slices.SortStableFunc(msgs, func(a, b TimedMessage) int {
		return cmp.Compare(a.Frame, b.Frame)
	})

	next := 0
	for pos := int64(0); pos < frames; {
		n := int(min(int64(h.blockSize), frames-pos))
		h.ctx.SetBlock(h.channels, n)

		for next < len(msgs) && msgs[next].Frame < pos+int64(n) {
			offset := max(msgs[next].Frame-pos, 0)
			h.ctx.Events.Add(int32(offset), msgs[next].Data)
			next++
		}

		if err := h.inst.Process(h.ctx); err != nil {
			return err
		}
		if sink != nil {
			if err := sink(h.ctx.Output); err != nil {
				return err
			}
		}
		pos += int64(n)
	}
	return nil
}

// SampleRate returns the rendering sample rate.
func (h *OfflineHost) SampleRate() float64 {
	return h.sampleRate
}

// Channels returns the rendered channel count.
func (h *OfflineHost) Channels() int {
	return h.channels
}

// Close deactivates the instance. It does not release it.
func (h *OfflineHost) Close() error {
	return h.inst.SetActive(false)
}
