// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/sfzpbx/audio"
	"github.com/ik5/sfzpbx/formats/aiff"
	"github.com/ik5/sfzpbx/formats/flac"
	"github.com/ik5/sfzpbx/formats/mp3"
	"github.com/ik5/sfzpbx/formats/vorbis"
	"github.com/ik5/sfzpbx/formats/wav"
)

// NewRegistry returns a registry keyed by the file extensions SFZ
// instruments commonly reference.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}
