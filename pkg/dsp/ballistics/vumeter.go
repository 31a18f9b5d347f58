package ballistics

import "math"

// VUMeter implements the classic VU response: a second-order lowpass on
// the rectified signal reaching 99% of a steady tone in about 300ms,
// with the same time constant in both directions.
type VUMeter struct {
	omega float64
	gain  float64 // calibration so a steady sine reads near its RMS
	z1    float64
	z2    float64
}

// NewVUMeter creates a VU detector for the given sample rate.
func NewVUMeter(sampleRate float64) *VUMeter {
	return &VUMeter{
		omega: 11.1 / sampleRate,
		gain:  1.571,
	}
}

// Process feeds a block of samples through the detector - no allocations
func (v *VUMeter) Process(samples []float32) {
	z1 := v.z1
	z2 := v.z2
	w := v.omega

	for _, sample := range samples {
		x := math.Abs(float64(sample))
		z1 += w * (x - z1)
		z2 += w * (z1 - z2)
	}

	v.z1 = z1
	v.z2 = z2
}

// Read returns the current VU level (linear)
func (v *VUMeter) Read() float64 {
	return v.gain * v.z2
}

// Reset clears the filter state
func (v *VUMeter) Reset() {
	v.z1 = 0
	v.z2 = 0
}
