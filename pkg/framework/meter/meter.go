// Package meter implements the level-metering aggregator: real-time
// capture of per-channel signal peaks, periodic reduction into smoothed
// display values and running maxima, and dB scaling for the standard
// meter families.
package meter

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/metergo/pkg/dsp"
	"github.com/justyntemme/metergo/pkg/dsp/ballistics"
	"github.com/justyntemme/metergo/pkg/framework/bus"
	"github.com/justyntemme/metergo/pkg/framework/debug"
	"github.com/justyntemme/metergo/pkg/framework/event"
	"github.com/justyntemme/metergo/pkg/framework/graph"
	"github.com/justyntemme/metergo/pkg/framework/param"
	"github.com/justyntemme/metergo/pkg/framework/process"
	"github.com/justyntemme/metergo/pkg/midi"
)

const (
	// Reduction runs at the reference rate of 100 ticks per second;
	// falloff rates in dB/s convert to dB/tick through this scale.
	tickScale = 0.01

	// K-system display falloff: 24dB of decay over 2s at 100 Hz.
	kFalloffPerTick = 0.12

	// MIDI activity below this decays straight to zero.
	midiFloor = 1.0 / 512.0
)

// PeakMeter captures instantaneous signal levels per channel on every
// processing block and reduces them to display state on a periodic
// tick.
//
// Run executes in the real-time audio context and never allocates,
// locks or blocks. Tick executes in a periodic non-real-time context;
// the caller must guarantee Tick and ConfigureIO/ReflectInputs never
// run concurrently (the surrounding graph node's lock, conventionally).
// The raw per-channel accumulator is the only state shared between the
// two contexts and is exchanged atomically.
type PeakMeter struct {
	name       string
	sampleRate float64
	falloff    *param.Parameter
	notifier   *event.Notifier

	typeMask      uint32 // Type bits, atomic
	active        uint32 // atomic bool, latched by Run
	pendingActive uint32 // atomic bool
	layoutBits    uint64 // packed bus.Count, atomic

	// rawSignal is written by capture (CAS max, or store on silence)
	// and swapped to zero by reduction. Values are float64 bits.
	rawSignal []uint64

	// Owned exclusively by reduction; read by queries.
	visiblePower []float64
	maxSignal    []float64
	maxPower     []float64

	// One unit per audio channel per family, always sized to the
	// audio channel count regardless of the selected type mask.
	kMeters    []ballistics.Unit
	iec1Meters []ballistics.Unit
	iec2Meters []ballistics.Unit
	vuMeters   []ballistics.Unit
}

// New creates a meter with no channels configured. The falloff
// parameter is polled once per reduction tick; passing nil uses a
// parameter with the standard default.
func New(name string, sampleRate float64, falloff *param.Parameter) *PeakMeter {
	if falloff == nil {
		falloff = param.NewMeterFalloff()
	}
	m := &PeakMeter{
		name:       name,
		sampleRate: sampleRate,
		falloff:    falloff,
		notifier:   event.NewNotifier(),
	}
	atomic.StoreUint32(&m.typeMask, uint32(TypePeak))
	atomic.StoreUint32(&m.pendingActive, 1)
	return m
}

// NewFromRegistry creates a meter whose falloff comes from the shared
// parameter registry. The lookup happens once, here; if the registry
// has no falloff parameter yet the standard one is registered.
func NewFromRegistry(name string, sampleRate float64, params *param.Registry) *PeakMeter {
	falloff := params.Get(param.MeterFalloff)
	if falloff == nil {
		falloff = param.NewMeterFalloff()
		params.Add(falloff)
	}
	return New(name, sampleRate, falloff)
}

// Name returns the meter's processor name.
func (m *PeakMeter) Name() string {
	return m.name
}

// Notifier exposes the meter's change notifications
// (event.ConfigurationChanged, event.TypeChanged).
func (m *PeakMeter) Notifier() *event.Notifier {
	return m.notifier
}

// MeterType returns the currently selected type mask.
func (m *PeakMeter) MeterType() Type {
	return Type(atomic.LoadUint32(&m.typeMask))
}

// Activate schedules the meter active or inactive; the change takes
// effect at the end of the next Run call.
func (m *PeakMeter) Activate(active bool) {
	var v uint32
	if active {
		v = 1
	}
	atomic.StoreUint32(&m.pendingActive, v)
}

// Layout returns the currently configured channel layout.
func (m *PeakMeter) Layout() bus.Count {
	bits := atomic.LoadUint64(&m.layoutBits)
	return bus.Count{
		MIDI:  int32(bits >> 32),
		Audio: int32(bits & 0xffffffff),
	}
}

func (m *PeakMeter) storeLayout(c bus.Count) {
	atomic.StoreUint64(&m.layoutBits, uint64(uint32(c.MIDI))<<32|uint64(uint32(c.Audio)))
}

// captureMax folds a new capture value into the raw accumulator,
// keeping the maximum. Lock-free; contends only with the reduction
// swap, so the CAS retries at most once in practice.
func captureMax(addr *uint64, v float64) {
	for {
		old := atomic.LoadUint64(addr)
		if v <= math.Float64frombits(old) {
			return
		}
		if atomic.CompareAndSwapUint64(addr, old, math.Float64bits(v)) {
			return
		}
	}
}

// noteOnLevel folds a note-on velocity into a channel's running
// activity level, keeping the maximum.
func noteOnLevel(val float64, velocity uint8) float64 {
	vel := float64(velocity) / 127.0
	if vel > 1 {
		vel = 1
	}
	if vel > val {
		return vel
	}
	return val
}

// Run captures peaks from the supplied buffer set.
//
// Input acceptance is lenient: only min(configured, supplied) channels
// of each kind are processed; excess configured channels are zeroed,
// excess supplied channels are ignored.
//
// Runs in the real-time audio context - no allocations, no locks.
func (m *PeakMeter) Run(ctx *process.Context) {
	if atomic.LoadUint32(&m.active) == 0 && atomic.LoadUint32(&m.pendingActive) == 0 {
		return
	}

	supplied := bus.Count{MIDI: ctx.NumMIDI(), Audio: ctx.NumAudio()}
	metered := bus.Min(m.Layout(), supplied)
	nMIDI := metered.MIDI
	nAudio := metered.Audio
	mask := Type(atomic.LoadUint32(&m.typeMask))

	n := int32(0)

	// MIDI channels meter event activity, not amplitude: a note-on
	// contributes its velocity, anything else a fixed density increment.
	// Only the concrete note-on types carry a velocity we can read;
	// unknown Event implementations count as plain activity, never a
	// failure - this loop runs on the audio thread.
	for i := int32(0); i < nMIDI; i, n = i+1, n+1 {
		buf := ctx.MIDIBuffer(i)
		increment := 1.0 / float64(buf.Capacity())
		val := 0.0
		for _, ev := range buf.Events() {
			switch on := ev.(type) {
			case midi.NoteOnEvent:
				val = noteOnLevel(val, on.Velocity)
			case *midi.NoteOnEvent:
				val = noteOnLevel(val, on.Velocity)
			default:
				val += increment
				if val > 1 {
					val = 1
				}
			}
		}
		if int(n) < len(m.rawSignal) {
			captureMax(&m.rawSignal[n], val)
		}
	}

	// Audio channels meter the block peak and feed the ballistics
	// units of every currently selected family.
	for i := int32(0); i < nAudio; i, n = i+1, n+1 {
		if int(n) < len(m.rawSignal) {
			if ctx.IsSilent(i) {
				atomic.StoreUint64(&m.rawSignal[n], 0)
			} else {
				captureMax(&m.rawSignal[n], dsp.Peak(ctx.AudioBlock(i)))
			}
		}

		block := ctx.AudioBlock(i)
		if mask&FamilyMaskK != 0 && int(i) < len(m.kMeters) {
			m.kMeters[i].Process(block)
		}
		if mask&FamilyMaskIEC1 != 0 && int(i) < len(m.iec1Meters) {
			m.iec1Meters[i].Process(block)
		}
		if mask&FamilyMaskIEC2 != 0 && int(i) < len(m.iec2Meters) {
			m.iec2Meters[i].Process(block)
		}
		if mask&FamilyMaskVU != 0 && int(i) < len(m.vuMeters) {
			m.vuMeters[i].Process(block)
		}
	}

	// Zero any excess configured channels.
	for i := n; int(i) < len(m.rawSignal); i++ {
		atomic.StoreUint64(&m.rawSignal[i], 0)
	}

	atomic.StoreUint32(&m.active, atomic.LoadUint32(&m.pendingActive))
}

// Tick reduces the raw captures into visible and maximum state. It is
// driven by the shared metering tick at the reference 100 Hz rate.
//
// The caller must hold the lock that excludes reconfiguration. If the
// per-channel arrays are mid-resize the tick is silently skipped; it
// self-heals once reconfiguration completes.
func (m *PeakMeter) Tick() {
	if atomic.LoadUint32(&m.active) == 0 {
		return
	}

	if len(m.visiblePower) != len(m.rawSignal) ||
		len(m.maxPower) != len(m.rawSignal) ||
		len(m.maxSignal) != len(m.rawSignal) {
		debug.Debugf("meter %s: skipping tick, channel arrays mid-resize", m.name)
		return
	}

	layout := m.Layout()
	limit := len(m.rawSignal)
	if t := int(layout.Total()); t < limit {
		limit = t
	}
	nMIDI := len(m.rawSignal)
	if c := int(layout.MIDI); c < nMIDI {
		nMIDI = c
	}

	midiFalloff := m.falloff.Value() * tickScale
	audioFalloff := midiFalloff
	if Type(atomic.LoadUint32(&m.typeMask))&FamilyMaskKFalloff != 0 {
		audioFalloff = kFalloffPerTick
	}

	for n := 0; n < limit; n++ {
		// Grab and clear the peak since the last tick in one atomic
		// exchange so no capture is lost in between.
		newPeak := math.Float64frombits(atomic.SwapUint64(&m.rawSignal[n], 0))

		if n < nMIDI {
			// MIDI channels carry no running maximum.
			m.maxPower[n] = dsp.MinusInfinity()
			m.maxSignal[n] = 0

			if midiFalloff != 0 && newPeak <= m.visiblePower[n] {
				// square-root decay reads closer to the audio falloff
				// times than a linear ramp would
				newPeak = m.visiblePower[n] - math.Sqrt(m.visiblePower[n]*midiFalloff*0.0002)
				if newPeak < midiFloor {
					newPeak = 0
				}
			}
			m.visiblePower[n] = newPeak
			continue
		}

		// Audio: maxima on both scales, then dB conversion and falloff.
		if newPeak > m.maxSignal[n] {
			m.maxSignal[n] = newPeak
		}

		newPeak = dsp.LinearToDB(newPeak)

		if newPeak > m.maxPower[n] {
			m.maxPower[n] = newPeak
		}

		if audioFalloff == 0 || newPeak > m.visiblePower[n] {
			m.visiblePower[n] = newPeak
		} else {
			m.visiblePower[n] = math.Max(m.visiblePower[n]-audioFalloff, dsp.MinusInfinity())
		}
	}
}

// unitLevel reads one ballistics unit in dB, validating the flat index
// against the audio sub-range covered by the unit array.
func (m *PeakMeter) unitLevel(units []ballistics.Unit, n int32) float64 {
	nMIDI := m.Layout().MIDI
	if n >= nMIDI && int(n-nMIDI) < len(units) {
		return dsp.LinearToDB(units[n-nMIDI].Read())
	}
	return dsp.MinusInfinity()
}

// LevelFor returns the current level of flat channel n on the requested
// scale. Out-of-range indices and unsupported combinations return the
// minus-infinity sentinel - this is a polling read used by presentation
// code at arbitrary rates and never fails.
func (m *PeakMeter) LevelFor(n int32, t Type) float64 {
	if n < 0 {
		return dsp.MinusInfinity()
	}

	switch t {
	case TypeKRMS, TypeK20, TypeK14, TypeK12:
		return m.unitLevel(m.kMeters, n)
	case TypeIEC1DIN, TypeIEC1NOR:
		return m.unitLevel(m.iec1Meters, n)
	case TypeIEC2BBC, TypeIEC2EBU:
		return m.unitLevel(m.iec2Meters, n)
	case TypeVU:
		return m.unitLevel(m.vuMeters, n)
	case TypePeak:
		if int(n) < len(m.visiblePower) {
			return m.visiblePower[n]
		}
	case TypeMaxSignal:
		if int(n) < len(m.maxSignal) {
			return m.maxSignal[n]
		}
	default:
		// TypeMaxPeak and anything unrecognized
		if int(n) < len(m.maxPower) {
			return m.maxPower[n]
		}
	}
	return dsp.MinusInfinity()
}

// SetType replaces the selected type mask. Units of families whose
// selection changed are reset; families that stay selected or stay
// unselected keep their state. A TypeChanged notification is emitted
// once state is consistent.
func (m *PeakMeter) SetType(t Type) {
	old := Type(atomic.LoadUint32(&m.typeMask))
	if t == old {
		return
	}

	atomic.StoreUint32(&m.typeMask, uint32(t))

	if familyToggled(old, t, FamilyMaskK) {
		resetUnits(m.kMeters)
	}
	if familyToggled(old, t, FamilyMaskIEC1) {
		resetUnits(m.iec1Meters)
	}
	if familyToggled(old, t, FamilyMaskIEC2) {
		resetUnits(m.iec2Meters)
	}
	if familyToggled(old, t, FamilyMaskVU) {
		resetUnits(m.vuMeters)
	}

	debug.Debugf("meter %s: type set to %s", m.name, t)
	m.notifier.Emit(event.Event{Type: event.TypeChanged, MeterType: uint32(t)})
}

// familyToggled reports whether a family's selection state differs
// between two masks. Families whose selection did not change keep
// their accumulated detector state across a type switch.
func familyToggled(old, next, family Type) bool {
	return (old&family != 0) != (next&family != 0)
}

func resetUnits(units []ballistics.Unit) {
	for _, u := range units {
		u.Reset()
	}
}

// CanSupportIO accepts any input layout; metering is strictly 1:1.
func (m *PeakMeter) CanSupportIO(in bus.Count) (bus.Count, bool) {
	return in, true
}

// ConfigureIO applies a negotiated channel layout. Layouts whose output
// differs from their input are rejected - a meter never fans in or out.
// On success all per-channel state is resized and fully reset, and a
// ConfigurationChanged notification is emitted.
//
// Must not be called concurrently with Tick.
func (m *PeakMeter) ConfigureIO(in, out bus.Count) error {
	if in != out {
		return graph.ErrChannelMismatch
	}

	m.storeLayout(in)
	m.resizeChannels(in)

	debug.Debugf("meter %s: configured for %s", m.name, in)
	m.notifier.Emit(event.Event{Type: event.ConfigurationChanged, Layout: in})
	return nil
}

// resizeChannels grows or shrinks the per-channel arrays at the tail,
// never relocating indices in use, then resets all state.
func (m *PeakMeter) resizeChannels(c bus.Count) {
	limit := int(c.Total())
	nAudio := int(c.Audio)

	for len(m.rawSignal) > limit {
		last := len(m.rawSignal) - 1
		m.rawSignal = m.rawSignal[:last]
		m.visiblePower = m.visiblePower[:last]
		m.maxSignal = m.maxSignal[:last]
		m.maxPower = m.maxPower[:last]
	}
	for len(m.rawSignal) < limit {
		m.rawSignal = append(m.rawSignal, 0)
		m.visiblePower = append(m.visiblePower, dsp.MinusInfinity())
		m.maxSignal = append(m.maxSignal, 0)
		m.maxPower = append(m.maxPower, dsp.MinusInfinity())
	}

	for len(m.kMeters) > nAudio {
		last := len(m.kMeters) - 1
		m.kMeters = m.kMeters[:last]
		m.iec1Meters = m.iec1Meters[:last]
		m.iec2Meters = m.iec2Meters[:last]
		m.vuMeters = m.vuMeters[:last]
	}
	for len(m.kMeters) < nAudio {
		m.kMeters = append(m.kMeters, ballistics.New(ballistics.FamilyK, m.sampleRate))
		m.iec1Meters = append(m.iec1Meters, ballistics.New(ballistics.FamilyIEC1, m.sampleRate))
		m.iec2Meters = append(m.iec2Meters, ballistics.New(ballistics.FamilyIEC2, m.sampleRate))
		m.vuMeters = append(m.vuMeters, ballistics.New(ballistics.FamilyVU, m.sampleRate))
	}

	m.Reset()
	m.ResetMax()
}

// ReflectInputs adapts to a temporarily shrunk live input count without
// a full layout renegotiation: state for channels beyond the live count
// is zeroed and their ballistics units reset in place, maxima restart,
// and a ConfigurationChanged notification is emitted.
//
// Must not be called concurrently with Tick.
func (m *PeakMeter) ReflectInputs(in bus.Count) {
	current := m.Layout()

	for i := in.Total(); i < current.Total(); i++ {
		if int(i) < len(m.rawSignal) {
			atomic.StoreUint64(&m.rawSignal[i], 0)
		}
	}
	for i := in.Audio; i < current.Audio; i++ {
		if int(i) >= len(m.kMeters) {
			continue
		}
		m.kMeters[i].Reset()
		m.iec1Meters[i].Reset()
		m.iec2Meters[i].Reset()
		m.vuMeters[i].Reset()
	}

	m.storeLayout(in)
	m.ResetMax()

	debug.Debugf("meter %s: inputs reflected to %s", m.name, in)
	m.notifier.Emit(event.Event{Type: event.ConfigurationChanged, Layout: in})
}

// Reset clears the raw accumulators and every ballistics unit.
func (m *PeakMeter) Reset() {
	for i := range m.rawSignal {
		atomic.StoreUint64(&m.rawSignal[i], 0)
	}
	resetUnits(m.kMeters)
	resetUnits(m.iec1Meters)
	resetUnits(m.iec2Meters)
	resetUnits(m.vuMeters)
}

// ResetMax restarts the running maxima and returns the visible levels
// to their baseline: zero for MIDI channels, minus infinity for audio.
func (m *PeakMeter) ResetMax() {
	for i := range m.maxPower {
		m.maxPower[i] = dsp.MinusInfinity()
		m.maxSignal[i] = 0
	}

	nMIDI := len(m.visiblePower)
	if c := int(m.Layout().MIDI); c < nMIDI {
		nMIDI = c
	}
	for n := range m.visiblePower {
		if n < nMIDI {
			m.visiblePower[n] = 0
		} else {
			m.visiblePower[n] = dsp.MinusInfinity()
		}
	}
}

// State returns the meter's topology node. Levels are never persisted.
func (m *PeakMeter) State() graph.NodeState {
	return graph.NodeState{
		Name: m.name,
		Type: "meter",
	}
}
