package midi

// Buffer holds the timestamped raw messages the host delivers for one audio
// block. Messages keep the order in which they were added; the sample offset
// is carried along but never used to reorder them.
//
// A Buffer is owned by the audio thread and is not safe for concurrent use.
type Buffer struct {
	data []byte
	msgs []span
}

type span struct {
	offset int32
	start  int
	end    int
}

// NewBuffer creates a buffer with room for capacity messages before it
// needs to grow.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		data: make([]byte, 0, capacity*3),
		msgs: make([]span, 0, capacity),
	}
}

// Add appends a copy of raw at the given sample offset. Empty messages are
// dropped.
func (b *Buffer) Add(offset int32, raw []byte) {
	if len(raw) == 0 {
		return
	}
	start := len(b.data)
	b.data = append(b.data, raw...)
	b.msgs = append(b.msgs, span{offset: offset, start: start, end: len(b.data)})
}

// Len returns the number of messages in the buffer.
func (b *Buffer) Len() int {
	return len(b.msgs)
}

// IsEmpty reports whether the buffer has no messages. A nil buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b == nil || len(b.msgs) == 0
}

// At returns the i-th message. The returned slice aliases the buffer and is
// only valid until the next Clear.
func (b *Buffer) At(i int) (offset int32, raw []byte) {
	m := b.msgs[i]
	return m.offset, b.data[m.start:m.end:m.end]
}

// Each calls fn for every message in insertion order.
func (b *Buffer) Each(fn func(offset int32, raw []byte)) {
	for i := range b.msgs {
		fn(b.At(i))
	}
}

// Events decodes every well-formed message. Malformed ones are skipped.
func (b *Buffer) Events() []Event {
	events := make([]Event, 0, len(b.msgs))
	b.Each(func(offset int32, raw []byte) {
		if e, err := Decode(offset, raw); err == nil {
			events = append(events, e)
		}
	})
	return events
}

// Clear empties the buffer and keeps its storage for the next block.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
	b.msgs = b.msgs[:0]
}
