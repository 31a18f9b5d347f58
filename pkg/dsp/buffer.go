package dsp

import "math"

// Buffer utilities for common metering operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Peak returns the maximum absolute sample value in a buffer
func Peak(buffer []float32) float64 {
	peak := float64(0)
	for _, sample := range buffer {
		abs := math.Abs(float64(sample))
		if abs > peak {
			peak = abs
		}
	}
	return peak
}

// IsSilent reports whether every sample in a buffer is exactly zero
func IsSilent(buffer []float32) bool {
	for _, sample := range buffer {
		if sample != 0 {
			return false
		}
	}
	return true
}

// RMS calculates the root mean square of a buffer
func RMS(buffer []float32) float64 {
	if len(buffer) == 0 {
		return 0
	}

	sum := float64(0)
	for _, sample := range buffer {
		s := float64(sample)
		sum += s * s
	}

	return math.Sqrt(sum / float64(len(buffer)))
}
