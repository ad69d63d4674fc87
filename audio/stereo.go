// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadStereo drains src and splits it into two equal-length channel slices.
// Mono sources are duplicated into both channels. Sources with more than two
// channels are rejected with ErrUnsupportedChannels instead of being mixed down.
//
// ReadStereo does not close src.
func ReadStereo(src Source) (left, right []float32, err error) {
	channels := src.Channels()
	if channels != 1 && channels != 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrUnsupportedChannels, channels)
	}

	frames := 0
	if sz, ok := src.(Sized); ok && sz.Frames() > 0 {
		frames = sz.Frames()
	}
	left = make([]float32, 0, frames)
	right = make([]float32, 0, frames)

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	// Keep whole frames per read
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)

	// Carry a dangling left sample when a source returns an odd count
	var pending []float32

	for {
		n, rerr := src.ReadSamples(buf)
		if n > 0 {
			chunk := buf[:n]
			if len(pending) > 0 {
				chunk = append(pending, chunk...)
				pending = pending[:0]
			}

			switch channels {
			case 1:
				left = append(left, chunk...)
				right = append(right, chunk...)
			case 2:
				whole := len(chunk) - len(chunk)%2
				for i := 0; i < whole; i += 2 {
					left = append(left, chunk[i])
					right = append(right, chunk[i+1])
				}
				if whole < len(chunk) {
					pending = append(pending, chunk[whole])
				}
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, nil, fmt.Errorf("reading samples: %w", rerr)
		}
		if n == 0 {
			// Some decoders report (0, nil) at the end of the stream
			break
		}
	}

	return left, right, nil
}
