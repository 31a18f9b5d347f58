package ballistics

import "math"

// IEC1PPM implements the IEC 60268-10 type I quasi-peak detector
// (DIN 45406 / Nordic variants): 5ms integration time, 20dB return
// over 1.7 seconds.
type IEC1PPM struct {
	attack  float64 // per-sample rise coefficient
	release float64 // per-sample decay factor
	z       float64
}

// NewIEC1PPM creates a type I PPM detector for the given sample rate.
func NewIEC1PPM(sampleRate float64) *IEC1PPM {
	return &IEC1PPM{
		// rise to 80% of a steady tone within the 5ms integration time
		attack: 1.0 - math.Exp(math.Log(0.2)/(0.005*sampleRate)),
		// 20dB of decay over 1.7s
		release: math.Pow(10.0, -20.0/(20.0*1.7*sampleRate)),
	}
}

// Process feeds a block of samples through the detector - no allocations
func (p *IEC1PPM) Process(samples []float32) {
	z := p.z
	for _, sample := range samples {
		x := math.Abs(float64(sample))
		if x > z {
			z += p.attack * (x - z)
		} else {
			z *= p.release
		}
	}
	p.z = z
}

// Read returns the current quasi-peak level (linear)
func (p *IEC1PPM) Read() float64 {
	return p.z
}

// Reset clears the detector state
func (p *IEC1PPM) Reset() {
	p.z = 0
}
