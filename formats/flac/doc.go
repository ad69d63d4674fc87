// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding.
//
// This package uses github.com/mewkiz/flac to decode FLAC streams. Decoded
// frames are converted to interleaved float32 samples in the range
// [-1.0, 1.0].
//
// # Supported Formats
//
//   - Bit depths: 8, 16, 24 and 32
//   - Mono and stereo
//
// # Decoding FLAC Files
//
//	decoder := flac.Decoder{}
//	file, _ := os.Open("piano_C4.flac")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer source.Close()
//	left, right, err := audio.ReadStereo(source)
//
// The total length from the STREAMINFO block is exposed through
// audio.Sized; it is -1 when the encoder did not record it.
package flac
