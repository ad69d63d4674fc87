package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/sfzpbx/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// Frames reports the stream length per channel. oggvorbis only knows it for
// seekable inputs, so zero is treated as unknown.
func (s *source) Frames() int {
	if n := s.dec.Length(); n > 0 {
		return int(n)
	}
	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	// keep reads frame aligned so a stereo pair is never split
	usable := len(dst) - len(dst)%s.channels
	if usable == 0 {
		return 0, nil
	}

	// oggvorbis returns the number of interleaved values written
	n, err := s.dec.Read(dst[:usable])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if ch := dec.Channels(); ch < 1 || ch > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannelLayout, ch)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
