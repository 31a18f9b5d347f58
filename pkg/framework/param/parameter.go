// Package param provides configuration parameters with lock-free value
// access for real-time and timer contexts.
package param

import (
	"math"
	"sync/atomic"
)

// Well-known parameter IDs.
const (
	// MeterFalloff is the display falloff rate polled by the metering
	// reduction tick, in dB per second at the reference tick rate.
	MeterFalloff uint32 = 1
)

// Parameter is a single configuration value. Reads and writes go
// through an atomic so the audio and timer threads never lock.
type Parameter struct {
	ID           uint32
	Name         string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64

	// Atomic value for lock-free access in audio/timer threads
	value uint64 // float64 bits
}

// New creates a parameter initialized to its default value.
func New(id uint32, name, unit string, min, max, def float64) *Parameter {
	p := &Parameter{
		ID:           id,
		Name:         name,
		Unit:         unit,
		Min:          min,
		Max:          max,
		DefaultValue: def,
	}
	p.SetValue(def)
	return p
}

// NewMeterFalloff creates the standard meter falloff parameter
// (0 disables falloff entirely).
func NewMeterFalloff() *Parameter {
	return New(MeterFalloff, "Meter Falloff", "dB/s", 0, 48.0, 13.5)
}

// Value returns the current value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(atomic.LoadUint64(&p.value))
}

// SetValue sets the value, clamped to [Min, Max].
func (p *Parameter) SetValue(v float64) {
	if v < p.Min {
		v = p.Min
	} else if v > p.Max {
		v = p.Max
	}
	atomic.StoreUint64(&p.value, math.Float64bits(v))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}
