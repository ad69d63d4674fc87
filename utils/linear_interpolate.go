// SPDX-License-Identifier: EPL-2.0

package utils

// LinearInterpolate blends a and b by frac, where frac is the fractional
// distance from a towards b (0 <= frac < 1).
// A constant sequence (a == b) returns a exactly for every frac.
func LinearInterpolate(a, b, frac float32) float32 {
	if a == b {
		return a
	}
	return a*(1-frac) + b*frac
}

// SampleAt returns data[i], or 0 when i is outside data.
func SampleAt(data []float32, i int) float32 {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

// InterpolateAt reads data at the fractional index idx+frac using linear
// interpolation between idx and idx+1. Reads outside data are silence.
func InterpolateAt(data []float32, idx int, frac float32) float32 {
	return LinearInterpolate(SampleAt(data, idx), SampleAt(data, idx+1), frac)
}
