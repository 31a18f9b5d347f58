package midi

// Buffer is a fixed-capacity event list for one processing block.
//
// Unlike an unbounded queue it never grows, so it is safe to fill and
// drain from the real-time audio path. Its capacity also defines the
// per-event activity increment used by MIDI metering (1/capacity).
type Buffer struct {
	events []Event
}

// NewBuffer creates a buffer holding at most capacity events per block.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		events: make([]Event, 0, capacity),
	}
}

// Add appends an event. It returns false and drops the event when the
// buffer is full - no allocations
func (b *Buffer) Add(event Event) bool {
	if len(b.events) == cap(b.events) {
		return false
	}
	b.events = append(b.events, event)
	return true
}

// Events returns the events accumulated this block. The returned slice
// shares the buffer's backing storage and is only valid until Clear.
func (b *Buffer) Events() []Event {
	return b.events
}

// Len returns the number of events currently in the buffer.
func (b *Buffer) Len() int {
	return len(b.events)
}

// Capacity returns the fixed capacity of the buffer.
func (b *Buffer) Capacity() int {
	return cap(b.events)
}

// Clear drops all events, keeping the backing storage.
func (b *Buffer) Clear() {
	b.events = b.events[:0]
}
