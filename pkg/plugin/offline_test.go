package plugin

import (
	"errors"
	"slices"
	"testing"
)

func TestOfflineHostSetup(t *testing.T) {
	inst, proc := newInstance(t)

	h, err := NewOfflineHost(inst, 48000, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	if proc.sampleRate != 48000 || proc.blockSize != 64 {
		t.Errorf("initialized with %v / %d", proc.sampleRate, proc.blockSize)
	}
	if inst.OutputChannels() != 1 || h.Channels() != 1 || h.SampleRate() != 48000 {
		t.Error("layout not negotiated")
	}

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(proc.active, []bool{true, false}) {
		t.Errorf("SetActive calls = %v", proc.active)
	}
}

func TestOfflineHostRejects(t *testing.T) {
	inst, _ := newInstance(t)

	if _, err := NewOfflineHost(inst, 44100, 0, 2); err == nil {
		t.Error("zero block size accepted")
	}
	if _, err := NewOfflineHost(inst, 44100, 64, 8); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("8 channels: %v", err)
	}
}

func TestOfflineRenderBlocks(t *testing.T) {
	inst, proc := newInstance(t)
	h, err := NewOfflineHost(inst, 44100, 100, 2)
	if err != nil {
		t.Fatal(err)
	}

	messages := []TimedMessage{
		{Frame: 250, Data: []byte{0x80, 60, 0}},
		{Frame: 0, Data: []byte{0x90, 60, 100}},
		{Frame: 99, Data: []byte{0xB0, 7, 100}},
		{Frame: 100, Data: []byte{0xC0, 3}},
		{Frame: 250, Data: []byte{0xE0, 0, 64}},
		{Frame: 300, Data: []byte{0x90, 62, 90}}, // past the end
	}

	var sunk [][]float32
	err = h.Render(messages, 300, func(block [][]float32) error {
		if len(block) != 2 {
			t.Fatalf("sink got %d channels", len(block))
		}
		sunk = append(sunk, slices.Clone(block[0]))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(proc.blocks, []int{100, 100, 100}) {
		t.Errorf("block sizes = %v", proc.blocks)
	}
	want := []renderedEvent{
		{0, 0, 0x90},
		{0, 99, 0xB0},
		{1, 0, 0xC0},
		{2, 50, 0x80},
		{2, 50, 0xE0},
	}
	if !slices.Equal(proc.events, want) {
		t.Errorf("events = %v, want %v", proc.events, want)
	}
	if len(sunk) != 3 || sunk[0][0] != 1 || sunk[2][99] != 3 {
		t.Error("sink did not see blocks in render order")
	}
}

func TestOfflineRenderPartialBlock(t *testing.T) {
	inst, proc := newInstance(t)
	h, err := NewOfflineHost(inst, 44100, 64, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Render([]TimedMessage{{Frame: 130, Data: []byte{0x90, 1, 1}}}, 150, nil); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(proc.blocks, []int{64, 64, 22}) {
		t.Errorf("block sizes = %v", proc.blocks)
	}
	if len(proc.events) != 1 || proc.events[0] != (renderedEvent{2, 2, 0x90}) {
		t.Errorf("events = %v", proc.events)
	}
}

func TestOfflineRenderSinkError(t *testing.T) {
	inst, proc := newInstance(t)
	h, err := NewOfflineHost(inst, 44100, 32, 2)
	if err != nil {
		t.Fatal(err)
	}

	stop := errors.New("disk full")
	err = h.Render(nil, 320, func([][]float32) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("Render() = %v, want %v", err, stop)
	}
	if len(proc.blocks) != 1 {
		t.Errorf("rendered %d blocks after sink error", len(proc.blocks))
	}
}
