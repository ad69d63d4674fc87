// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/sfzpbx/audio"
	"github.com/ik5/sfzpbx/utils"
	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	dec        frameParser
	sampleRate int
	channels   int
	frames     int
	scale      float32

	// decoded frame waiting to be drained, interleaved
	pending []float32
	pos     int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Frames() int     { return s.frames }
func (s *source) Close() error    { return s.dec.Close() }

// BufSize matches the largest common FLAC block of 4096 frames.
func (s *source) BufSize() int { return 4096 * s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.pos >= len(s.pending) {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(dst, s.pending[s.pos:])
	s.pos += n
	return n, nil
}

// fill decodes the next FLAC frame into pending.
func (s *source) fill() error {
	f, err := s.dec.ParseNext()
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if len(f.Subframes) < s.channels {
		return fmt.Errorf("%w: got %d, want %d", ErrMissingSubframe, len(f.Subframes), s.channels)
	}

	blockSize := len(f.Subframes[0].Samples)
	need := blockSize * s.channels
	if cap(s.pending) < need {
		s.pending = make([]float32, need)
	}
	s.pending = s.pending[:need]
	s.pos = 0

	for ch := range s.channels {
		samples := f.Subframes[ch].Samples
		for i := 0; i < blockSize && i < len(samples); i++ {
			s.pending[i*s.channels+ch] = float32(samples[i]) / s.scale
		}
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// flac.New reads the whole metadata section eagerly; buffering keeps
	// short reads from network or pipe sources from tripping it
	if _, ok := r.(io.ReadSeeker); !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		r = bytes.NewReader(data)
	}

	stream, err := goflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	if info.NChannels < 1 || info.NChannels > 2 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannelLayout, info.NChannels)
	}
	switch info.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	frames := -1
	if info.NSamples > 0 {
		frames = int(info.NSamples)
	}

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		frames:     frames,
		scale:      utils.PCMScale(int(info.BitsPerSample)),
	}, nil
}
