// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding primitives the sample loader is built on.
//
// This package contains:
//   - Source interface for decoded audio input
//   - Decoder interface implemented by every format in formats/
//   - Registry mapping file extensions to decoders
//   - ReadStereo, which turns a Source into two equal-length channels
//
// # Source Interface
//
// The Source interface is the foundation of audio decoding:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources that know their length up front also implement Sized, which lets
// ReadStereo allocate the channel slices once.
//
// # Format Registry
//
// The registry selects a decoder by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("samples/C4.wav")
//
// Keys are case-insensitive and the leading dot is optional. The formats
// package provides a registry with every built-in decoder.
//
// # Stereo Split
//
// The sampler stores every sample as separate left and right channels:
//
//	left, right, err := audio.ReadStereo(source)
//
// Mono input is duplicated into both channels. Inputs with more than two
// channels are rejected with ErrUnsupportedChannels rather than mixed down.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors
// indicate problems with the source:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Decode error
//	    }
//	    // Process n samples from buf
//	}
package audio
