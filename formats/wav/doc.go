// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions use the github.com/go-audio/wav library for RIFF chunk
// handling.
//
// # Supported Formats
//
// Decoding:
//   - Integer PCM, 16, 24 and 32-bit
//   - Mono and stereo
//   - Any sample rate
//
// Everything else (8-bit, IEEE float, more than two channels) is rejected
// with a sentinel error instead of being decoded incorrectly.
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("C4.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	left, right, err := audio.ReadStereo(source)
//
// The decoder returns an audio.Source that provides samples as float32
// values in the range [-1.0, 1.0]. It also implements audio.Sized.
//
// # Writing WAV Files
//
// Rendered instrument output is written with WriteStereo:
//
//	file, _ := os.Create("render.wav")
//	err := wav.WriteStereo(file, 44100, 16, left, right)
//
// The rendering engine does not clip; WriteStereo clamps to [-1, 1] while
// converting to integer PCM.
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrOnlyPCMSupported: compressed or floating point data
//   - ErrUnsupportedBitDepth: bit depth other than 16, 24 or 32
//   - audio.ErrUnsupportedChannels: more than two channels
//   - ErrUnsupportedWavChunks: no data chunk could be located
//
// Example:
//
//	source, err := decoder.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
package wav
