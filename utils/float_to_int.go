// SPDX-License-Identifier: EPL-2.0

package utils

func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(x, 16))
}

// FloatToPCM clamps x to [-1, 1] and scales it to a signed integer of the
// given bit depth (8, 16, 24 or 32). Mixed output is unclamped until here.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 2^(n-1)-1 for the positive max to avoid overflow
	maxVal := float64(int64(1)<<(bitDepth-1) - 1)
	return int(float64(x) * maxVal)
}

// PCMScale returns the divisor that normalizes signed PCM of bitDepth into
// [-1, 1]. Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}
