// Package ballistics implements the attack/release behavior of the
// standard meter families (K-system, IEC type I and II PPM, VU).
//
// Every family satisfies the same narrow Unit contract so the metering
// aggregator can own and drive them without knowing their internals.
package ballistics

// Unit is a single-channel meter ballistics processor.
//
// Process must not allocate - it is called from the real-time audio
// path. Read and Reset are only called from non-real-time contexts.
type Unit interface {
	// Process feeds a block of samples through the detector.
	Process(samples []float32)
	// Read returns the current detector level (linear scale).
	Read() float64
	// Reset clears all internal filter state.
	Reset()
}

// Family identifies a meter ballistics family.
type Family int

const (
	// FamilyK is the K-system RMS family (K-20, K-14, K-12, K/RMS).
	FamilyK Family = iota
	// FamilyIEC1 is the IEC 60268-10 type I quasi-peak family (DIN, Nordic).
	FamilyIEC1
	// FamilyIEC2 is the IEC 60268-10 type II quasi-peak family (BBC, EBU).
	FamilyIEC2
	// FamilyVU is the classic VU (volume unit) family.
	FamilyVU

	// NumFamilies is the number of ballistics families.
	NumFamilies = 4
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyK:
		return "K"
	case FamilyIEC1:
		return "IEC1"
	case FamilyIEC2:
		return "IEC2"
	case FamilyVU:
		return "VU"
	default:
		return "Unknown"
	}
}

// New constructs a fresh unit of the given family for one audio channel.
func New(f Family, sampleRate float64) Unit {
	switch f {
	case FamilyK:
		return NewKMeter(sampleRate)
	case FamilyIEC1:
		return NewIEC1PPM(sampleRate)
	case FamilyIEC2:
		return NewIEC2PPM(sampleRate)
	case FamilyVU:
		return NewVUMeter(sampleRate)
	default:
		return nil
	}
}
