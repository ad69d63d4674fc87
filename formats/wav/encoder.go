// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sfzpbx/utils"
)

// encodeChunk is the number of frames converted per encoder write.
const encodeChunk = 8192

// WriteStereo writes left and right as an interleaved stereo PCM WAV at
// sampleRate. bitDepth must be 16, 24 or 32. Samples outside [-1, 1] are
// clamped; this is the only place rendered output is limited.
// Both channels must have the same length.
func WriteStereo(ws io.WriteSeeker, sampleRate, bitDepth int, left, right []float32) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}
	if len(left) != len(right) {
		return ErrChannelMismatch
	}

	enc := gowav.NewEncoder(ws, sampleRate, bitDepth, 2, formatPCM)

	frames := len(left)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           make([]int, min(frames, encodeChunk)*2),
		SourceBitDepth: bitDepth,
	}

	for start := 0; start < frames; start += encodeChunk {
		end := min(start+encodeChunk, frames)
		buf.Data = buf.Data[:(end-start)*2]

		for i := start; i < end; i++ {
			j := (i - start) * 2
			buf.Data[j] = utils.FloatToPCM(left[i], bitDepth)
			buf.Data[j+1] = utils.FloatToPCM(right[i], bitDepth)
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav frames: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
