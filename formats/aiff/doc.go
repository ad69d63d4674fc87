// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files, which
// are common in sample libraries produced on macOS.
//
// # Supported Formats
//
//   - PCM 16-bit and 24-bit
//   - Mono and stereo
//   - Any sample rate
//
// Other bit depths return ErrUnsupportedBitDepth and more than two channels
// return audio.ErrUnsupportedChannels.
//
// # Decoding AIFF Files
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("C4.aif")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	left, right, err := audio.ReadStereo(source)
//
// go-audio needs an io.ReadSeeker. Plain readers are buffered into memory
// before decoding.
package aiff
