package ballistics

import "math"

// KMeter implements the K-system RMS detector: a second-order lowpass
// on the squared signal with roughly 600ms settling, read out as RMS.
type KMeter struct {
	omega float64 // filter coefficient, derived from sample rate
	z1    float64
	z2    float64
}

// NewKMeter creates a K-system detector for the given sample rate.
func NewKMeter(sampleRate float64) *KMeter {
	return &KMeter{
		omega: 9.72 / sampleRate,
	}
}

// Process feeds a block of samples through the detector - no allocations
func (k *KMeter) Process(samples []float32) {
	z1 := k.z1
	z2 := k.z2
	w := k.omega

	for _, sample := range samples {
		s := float64(sample)
		p := s * s
		z1 += w * (p - z1)
		z2 += w * (z1 - z2)
	}

	k.z1 = z1
	k.z2 = z2
}

// Read returns the current RMS level (linear)
func (k *KMeter) Read() float64 {
	if k.z2 <= 0 {
		return 0
	}
	// sqrt(2) calibration so a full-scale sine reads full scale
	return math.Sqrt(2.0 * k.z2)
}

// Reset clears the filter state
func (k *KMeter) Reset() {
	k.z1 = 0
	k.z2 = 0
}
