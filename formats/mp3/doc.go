// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("pad.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	left, right, err := audio.ReadStereo(source)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: always 2 (go-mp3 duplicates mono streams)
//   - Sample rate: taken from the file
//
// When the input is an io.Seeker the source also reports its length through
// audio.Sized, so the sample loader can allocate channel buffers once.
//
// # Limitations
//
// MP3 encoders add a short silent lead-in. Samples used for pitched
// instrument zones should prefer WAV, AIFF or FLAC so the attack is not
// delayed.
package mp3
