// Package process provides the per-block buffer set handed to
// processing-graph nodes - audio sample blocks plus MIDI event streams.
package process

import (
	"github.com/justyntemme/metergo/pkg/dsp"
	"github.com/justyntemme/metergo/pkg/midi"
)

// DefaultMIDICapacity is the event capacity of each MIDI buffer when
// none is specified.
const DefaultMIDICapacity = 128

// Context is the buffer set for one processing call. All storage is
// pre-allocated at construction; nothing in the hot path allocates.
type Context struct {
	SampleRate float64

	audio   [][]float32
	silent  []bool
	midi    []*midi.Buffer
	nframes int32
}

// NewContext creates a context with nMIDI event streams and nAudio
// sample blocks of up to maxBlockSize frames each.
func NewContext(nMIDI, nAudio, maxBlockSize int32, sampleRate float64) *Context {
	c := &Context{
		SampleRate: sampleRate,
		audio:      make([][]float32, nAudio),
		silent:     make([]bool, nAudio),
		midi:       make([]*midi.Buffer, nMIDI),
		nframes:    maxBlockSize,
	}
	for i := range c.audio {
		c.audio[i] = make([]float32, maxBlockSize)
		c.silent[i] = true
	}
	for i := range c.midi {
		c.midi[i] = midi.NewBuffer(DefaultMIDICapacity)
	}
	return c
}

// SetBlockSize sets the number of frames valid for the current call.
// It is clamped to the pre-allocated maximum.
func (c *Context) SetBlockSize(nframes int32) {
	if len(c.audio) > 0 && nframes > int32(len(c.audio[0])) {
		nframes = int32(len(c.audio[0]))
	}
	if nframes < 0 {
		nframes = 0
	}
	c.nframes = nframes
}

// NumSamples returns the number of frames valid for the current call.
func (c *Context) NumSamples() int32 {
	return c.nframes
}

// NumAudio returns the number of audio blocks supplied.
func (c *Context) NumAudio() int32 {
	return int32(len(c.audio))
}

// NumMIDI returns the number of MIDI event streams supplied.
func (c *Context) NumMIDI() int32 {
	return int32(len(c.midi))
}

// AudioBlock returns the sample block for audio channel i, sized to the
// current block size - no allocation
func (c *Context) AudioBlock(i int32) []float32 {
	return c.audio[i][:c.nframes]
}

// IsSilent reports whether audio channel i is declared silent for this
// call. Declared-silent blocks may short-circuit peak computation.
func (c *Context) IsSilent(i int32) bool {
	return c.silent[i]
}

// MIDIBuffer returns the event buffer for MIDI stream i.
func (c *Context) MIDIBuffer(i int32) *midi.Buffer {
	return c.midi[i]
}

// WriteAudio copies samples into audio channel i and clears its silence
// flag. Samples beyond the current block size are ignored.
func (c *Context) WriteAudio(i int32, samples []float32) {
	copy(c.audio[i][:c.nframes], samples)
	c.silent[i] = false
}

// ClearAudio zeroes every audio block and declares all of them silent.
func (c *Context) ClearAudio() {
	for i := range c.audio {
		dsp.Clear(c.audio[i])
		c.silent[i] = true
	}
}

// ClearMIDI drops all pending MIDI events.
func (c *Context) ClearMIDI() {
	for _, buf := range c.midi {
		buf.Clear()
	}
}
