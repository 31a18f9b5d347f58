package ballistics

import "math"

// IEC2PPM implements the IEC 60268-10 type II quasi-peak detector
// (BBC / EBU variants): 10ms integration time, 24dB return over
// 2.8 seconds.
type IEC2PPM struct {
	attack  float64
	release float64
	z       float64
}

// NewIEC2PPM creates a type II PPM detector for the given sample rate.
func NewIEC2PPM(sampleRate float64) *IEC2PPM {
	return &IEC2PPM{
		// rise to 80% of a steady tone within the 10ms integration time
		attack: 1.0 - math.Exp(math.Log(0.2)/(0.010*sampleRate)),
		// 24dB of decay over 2.8s
		release: math.Pow(10.0, -24.0/(20.0*2.8*sampleRate)),
	}
}

// Process feeds a block of samples through the detector - no allocations
func (p *IEC2PPM) Process(samples []float32) {
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
func (p *IEC2PPM) Read() float64 {
	return p.z
}

// Reset clears the detector state
func (p *IEC2PPM) Reset() {
	p.z = 0
}
