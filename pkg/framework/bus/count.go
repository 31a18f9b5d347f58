// Package bus provides channel layout types for processing-graph I/O
// negotiation.
package bus

import "fmt"

// Count describes a channel layout: an ordered count of MIDI channels
// followed by audio channels. The flat channel index space covers MIDI
// channels first ([0, MIDI)), then audio ([MIDI, Total())).
type Count struct {
	MIDI  int32
	Audio int32
}

// Total returns the total number of channels.
func (c Count) Total() int32 {
	return c.MIDI + c.Audio
}

// IsAudio reports whether flat index n addresses an audio channel.
func (c Count) IsAudio(n int32) bool {
	return n >= c.MIDI && n < c.Total()
}

// String returns the layout in "midi/audio" form.
func (c Count) String() string {
	return fmt.Sprintf("{midi:%d audio:%d}", c.MIDI, c.Audio)
}

// Min returns the per-kind minimum of two layouts.
func Min(a, b Count) Count {
	out := a
	if b.MIDI < out.MIDI {
		out.MIDI = b.MIDI
	}
	if b.Audio < out.Audio {
		out.Audio = b.Audio
	}
	return out
}
