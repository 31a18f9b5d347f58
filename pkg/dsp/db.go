// Package dsp provides digital signal processing utilities for audio metering
package dsp

import "math"

// minusInfinity is the sentinel for "no signal" on a dB scale.
var minusInfinity = math.Inf(-1)

// MinusInfinity returns the dB-scale sentinel used for silent or
// never-measured levels.
func MinusInfinity() float64 {
	return minusInfinity
}

// CoefficientToDB converts a linear gain coefficient to decibels.
// The coefficient must be greater than zero.
func CoefficientToDB(coeff float64) float64 {
	return 20.0 * math.Log10(coeff)
}

// LinearToDB converts a linear level to decibels, returning the
// minus-infinity sentinel for zero or negative input.
func LinearToDB(level float64) float64 {
	if level > 0 {
		return CoefficientToDB(level)
	}
	return minusInfinity
}

// DBToCoefficient converts decibels to a linear gain coefficient.
func DBToCoefficient(db float64) float64 {
	return math.Pow(10.0, db/20.0)
}
