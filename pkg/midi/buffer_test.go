package midi

import (
	"bytes"
	"testing"
)

func TestBufferKeepsInsertionOrder(t *testing.T) {
	b := NewBuffer(4)

	if !b.IsEmpty() {
		t.Error("Expected buffer to be empty")
	}
	var none *Buffer
	if !none.IsEmpty() {
		t.Error("nil buffer should be empty")
	}

	// Offsets deliberately out of order
	b.Add(300, []byte{0x90, 62, 100})
	b.Add(100, []byte{0x90, 60, 100})
	b.Add(200, []byte{0xC0, 5})

	if b.Len() != 3 {
		t.Fatalf("Expected 3 messages, got %d", b.Len())
	}

	wantOffsets := []int32{300, 100, 200}
	wantFirst := []byte{62, 60, 5}
	i := 0
	b.Each(func(offset int32, raw []byte) {
		if offset != wantOffsets[i] {
			t.Errorf("message %d: offset %d, want %d", i, offset, wantOffsets[i])
		}
		if raw[1] != wantFirst[i] {
			t.Errorf("message %d: data % X", i, raw)
		}
		i++
	})
}

func TestBufferCopiesInput(t *testing.T) {
	b := NewBuffer(1)
	raw := []byte{0x90, 60, 100}
	b.Add(0, raw)
	raw[1] = 0

	_, got := b.At(0)
	if !bytes.Equal(got, []byte{0x90, 60, 100}) {
		t.Errorf("buffer aliased caller slice: % X", got)
	}
}

func TestBufferDropsEmptyMessages(t *testing.T) {
	b := NewBuffer(1)
	b.Add(0, nil)
	b.Add(0, []byte{})
	if b.Len() != 0 {
		t.Errorf("Expected empty messages to be dropped, got %d", b.Len())
	}
}

func TestBufferEventsSkipsMalformed(t *testing.T) {
	b := NewBuffer(3)
	b.Add(0, []byte{0x90, 60, 100})
	b.Add(5, []byte{0x90})
	b.Add(9, []byte{0x80, 60, 0})

	events := b.Events()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Type() != EventTypeNoteOn || events[1].Type() != EventTypeNoteOff {
		t.Errorf("unexpected events: %v", events)
	}
	if events[1].SampleOffset() != 9 {
		t.Errorf("offset = %d, want 9", events[1].SampleOffset())
	}
}

func TestBufferClearReusesStorage(t *testing.T) {
	b := NewBuffer(2)
	b.Add(0, []byte{0x90, 60, 100})
	b.Add(1, []byte{0x80, 60, 0})
	b.Clear()

	if !b.IsEmpty() {
		t.Fatal("Expected buffer to be empty after Clear")
	}

	b.Add(7, []byte{0xB0, 7, 90})
	offset, raw := b.At(0)
	if offset != 7 || !bytes.Equal(raw, []byte{0xB0, 7, 90}) {
		t.Errorf("At(0) = %d, % X", offset, raw)
	}
}
