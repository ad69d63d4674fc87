// SPDX-License-Identifier: EPL-2.0

package sample

import "github.com/ik5/sfzpbx/utils"

// Sample is a decoded, immutable stereo buffer. Left and Right are indexed
// independently; reading past either one yields silence.
type Sample struct {
	// Identity is the key the sample was registered under, usually its path.
	Identity   string
	Left       []float32
	Right      []float32
	SampleRate int
}

// Channel indexes for At.
const (
	Left = iota
	Right
)

// At returns the value of channel at frame i, or 0 when i is out of range.
func (s *Sample) At(channel, i int) float32 {
	if channel == Left {
		return utils.SampleAt(s.Left, i)
	}
	return utils.SampleAt(s.Right, i)
}

// Interpolate reads both channels at the fractional frame idx+frac.
func (s *Sample) Interpolate(idx int, frac float32) (left, right float32) {
	return utils.InterpolateAt(s.Left, idx, frac), utils.InterpolateAt(s.Right, idx, frac)
}

// Len returns the number of frames, the longer of the two channels.
func (s *Sample) Len() int {
	return max(len(s.Left), len(s.Right))
}

// Handle is a stable index into a Store's arena. Regions and voices carry
// handles instead of sample data.
type Handle int

// NoHandle never resolves to a sample.
const NoHandle Handle = -1
