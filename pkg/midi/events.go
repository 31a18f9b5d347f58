package midi

import "fmt"

// EventType identifies the kind of a MIDI event.
type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
)

// Event is a single MIDI event within a processing block.
type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	String() string
}

// BaseEvent carries the fields shared by all event kinds.
type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

// Channel returns the MIDI channel of the event.
func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

// SampleOffset returns the event position within the block.
func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

// NoteOnEvent is a note-on message.
type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

// Type returns EventTypeNoteOn.
func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

// NoteOffEvent is a note-off message.
type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

// Type returns EventTypeNoteOff.
func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

// ControlChangeEvent is a controller change message.
type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

// Type returns EventTypeControlChange.
func (e ControlChangeEvent) Type() EventType {
	return EventTypeControlChange
}

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.EventChannel, e.Controller, e.Value, e.Offset)
}

// ProgramChangeEvent is a program change message.
type ProgramChangeEvent struct {
	BaseEvent
	Program uint8
}

// Type returns EventTypeProgramChange.
func (e ProgramChangeEvent) Type() EventType {
	return EventTypeProgramChange
}

func (e ProgramChangeEvent) String() string {
	return fmt.Sprintf("ProgramChange{ch:%d, prog:%d, offset:%d}",
		e.EventChannel, e.Program, e.Offset)
}

// PitchBendEvent is a pitch bend message.
type PitchBendEvent struct {
	BaseEvent
	Value int16 // -8192 to 8191
}

// Type returns EventTypePitchBend.
func (e PitchBendEvent) Type() EventType {
	return EventTypePitchBend
}

func (e PitchBendEvent) String() string {
	return fmt.Sprintf("PitchBend{ch:%d, val:%d, offset:%d}",
		e.EventChannel, e.Value, e.Offset)
}

// ChannelPressureEvent is a channel aftertouch message.
type ChannelPressureEvent struct {
	BaseEvent
	Pressure uint8
}

// Type returns EventTypeChannelPressure.
func (e ChannelPressureEvent) Type() EventType {
	return EventTypeChannelPressure
}

func (e ChannelPressureEvent) String() string {
	return fmt.Sprintf("ChannelPressure{ch:%d, val:%d, offset:%d}",
		e.EventChannel, e.Pressure, e.Offset)
}

// PolyPressureEvent is a polyphonic aftertouch message.
type PolyPressureEvent struct {
	BaseEvent
	NoteNumber uint8
	Pressure   uint8
}

// Type returns EventTypePolyPressure.
func (e PolyPressureEvent) Type() EventType {
	return EventTypePolyPressure
}

func (e PolyPressureEvent) String() string {
	return fmt.Sprintf("PolyPressure{ch:%d, note:%d, val:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Pressure, e.Offset)
}
