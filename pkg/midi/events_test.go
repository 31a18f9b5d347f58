package midi

import (
	"strings"
	"testing"
)

func TestEventTypes(t *testing.T) {
	cases := []struct {
		event Event
		want  EventType
	}{
		{NoteOnEvent{NoteNumber: 60, Velocity: 100}, EventTypeNoteOn},
		{NoteOffEvent{NoteNumber: 60}, EventTypeNoteOff},
		{ControlChangeEvent{Controller: 7, Value: 100}, EventTypeControlChange},
		{ProgramChangeEvent{Program: 5}, EventTypeProgramChange},
		{PitchBendEvent{Value: 1024}, EventTypePitchBend},
		{ChannelPressureEvent{Pressure: 64}, EventTypeChannelPressure},
		{PolyPressureEvent{NoteNumber: 60, Pressure: 64}, EventTypePolyPressure},
	}

	for _, c := range cases {
		if got := c.event.Type(); got != c.want {
			t.Errorf("%s: expected type %d, got %d", c.event, c.want, got)
		}
	}
}

func TestEventAccessors(t *testing.T) {
	ev := NoteOnEvent{
		BaseEvent:  BaseEvent{EventChannel: 3, Offset: 128},
		NoteNumber: 64,
		Velocity:   90,
	}

	if got := ev.Channel(); got != 3 {
		t.Errorf("Expected channel 3, got %d", got)
	}
	if got := ev.SampleOffset(); got != 128 {
		t.Errorf("Expected offset 128, got %d", got)
	}
}

func TestEventString(t *testing.T) {
	ev := NoteOnEvent{
		BaseEvent:  BaseEvent{EventChannel: 1, Offset: 64},
		NoteNumber: 60,
		Velocity:   100,
	}

	s := ev.String()
	for _, part := range []string{"NoteOn", "ch:1", "note:60", "vel:100", "offset:64"} {
		if !strings.Contains(s, part) {
			t.Errorf("String %q missing %q", s, part)
		}
	}
}
