package process

import (
	"testing"

	"github.com/justyntemme/metergo/pkg/midi"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext(2, 4, 512, 48000)

	if got := ctx.NumMIDI(); got != 2 {
		t.Errorf("Expected 2 MIDI streams, got %d", got)
	}
	if got := ctx.NumAudio(); got != 4 {
		t.Errorf("Expected 4 audio blocks, got %d", got)
	}
	if got := ctx.NumSamples(); got != 512 {
		t.Errorf("Expected 512 samples, got %d", got)
	}
	if ctx.SampleRate != 48000 {
		t.Errorf("Expected sample rate 48000, got %f", ctx.SampleRate)
	}
}

func TestSetBlockSizeClamps(t *testing.T) {
	ctx := NewContext(0, 1, 256, 48000)

	ctx.SetBlockSize(64)
	if got := ctx.NumSamples(); got != 64 {
		t.Errorf("Expected 64 samples, got %d", got)
	}
	if got := len(ctx.AudioBlock(0)); got != 64 {
		t.Errorf("Block should be sized to 64, got %d", got)
	}

	ctx.SetBlockSize(1024)
	if got := ctx.NumSamples(); got != 256 {
		t.Errorf("Block size should clamp to 256, got %d", got)
	}

	ctx.SetBlockSize(-1)
	if got := ctx.NumSamples(); got != 0 {
		t.Errorf("Negative block size should clamp to 0, got %d", got)
	}
}

func TestSilenceFlags(t *testing.T) {
	ctx := NewContext(0, 2, 64, 48000)

	if !ctx.IsSilent(0) || !ctx.IsSilent(1) {
		t.Error("Fresh context should declare all blocks silent")
	}

	ctx.WriteAudio(0, []float32{0.5, 0.25})
	if ctx.IsSilent(0) {
		t.Error("Written block should no longer be silent")
	}
	if ctx.IsSilent(1) != true {
		t.Error("Untouched block should stay silent")
	}

	block := ctx.AudioBlock(0)
	if block[0] != 0.5 || block[1] != 0.25 {
		t.Errorf("Samples not written: %f %f", block[0], block[1])
	}

	ctx.ClearAudio()
	if !ctx.IsSilent(0) {
		t.Error("ClearAudio should restore silence")
	}
	if got := ctx.AudioBlock(0)[0]; got != 0 {
		t.Errorf("ClearAudio should zero samples, got %f", got)
	}
}

func TestMIDIBuffers(t *testing.T) {
	ctx := NewContext(1, 0, 64, 48000)

	buf := ctx.MIDIBuffer(0)
	if buf.Capacity() != DefaultMIDICapacity {
		t.Errorf("Expected capacity %d, got %d", DefaultMIDICapacity, buf.Capacity())
	}

	buf.Add(midi.NoteOnEvent{NoteNumber: 60, Velocity: 100})
	if buf.Len() != 1 {
		t.Errorf("Expected 1 event, got %d", buf.Len())
	}

	ctx.ClearMIDI()
	if buf.Len() != 0 {
		t.Errorf("ClearMIDI should drop events, got %d", buf.Len())
	}
}

func TestNoAllocationAfterConstruction(t *testing.T) {
	ctx := NewContext(1, 2, 128, 48000)
	samples := make([]float32, 128)

	allocs := testing.AllocsPerRun(100, func() {
		ctx.SetBlockSize(128)
		ctx.WriteAudio(0, samples)
		_ = ctx.AudioBlock(0)
		_ = ctx.AudioBlock(1)
		ctx.ClearAudio()
		ctx.ClearMIDI()
	})
	if allocs != 0 {
		t.Errorf("Expected zero allocations in the block path, got %f", allocs)
	}
}
