// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
//
// # Supported Formats
//
//   - Ogg Vorbis (.ogg and .oga files)
//   - Mono and stereo streams
//   - Any sample rate the stream declares
//
// Streams with more than two channels are rejected with
// ErrUnsupportedChannelLayout.
//
// # Decoding Vorbis Files
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("choir.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	left, right, err := audio.ReadStereo(source)
//
// Reads are kept frame aligned. A buffer shorter than one frame returns
// zero samples and no error.
package vorbis
