// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sfzpbx/audio"
)

func writeTemp(t *testing.T, sampleRate, bitDepth int, left, right []float32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	if err := WriteStereo(f, sampleRate, bitDepth, left, right); err != nil {
		t.Fatalf("WriteStereo() error = %v", err)
	}
	return path
}

func TestWriteStereo_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, bitDepth := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%d-bit", bitDepth), func(t *testing.T) {
			t.Parallel()

			left := make([]float32, 10000)
			right := make([]float32, 10000)
			for i := range left {
				left[i] = float32(math.Sin(float64(i) * 0.05))
				right[i] = -left[i] / 2
			}

			path := writeTemp(t, 44100, bitDepth, left, right)

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("os.Open() error = %v", err)
			}
			defer f.Close()

			src, err := Decoder{}.Decode(f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != 44100 || src.Channels() != 2 {
				t.Fatalf("decoded format = %d Hz / %d ch, want 44100 Hz / 2 ch", src.SampleRate(), src.Channels())
			}

			gotLeft, gotRight, err := audio.ReadStereo(src)
			if err != nil {
				t.Fatalf("ReadStereo() error = %v", err)
			}
			if len(gotLeft) != len(left) {
				t.Fatalf("decoded %d frames, want %d", len(gotLeft), len(left))
			}

			// One LSB of the written depth, plus float32 rounding
			tolerance := 2.0/math.Pow(2, float64(bitDepth-1)) + 1e-6
			for i := range left {
				if math.Abs(float64(gotLeft[i]-left[i])) > tolerance ||
					math.Abs(float64(gotRight[i]-right[i])) > tolerance {
					t.Fatalf("frame %d = (%v, %v), want (%v, %v)", i, gotLeft[i], gotRight[i], left[i], right[i])
				}
			}
		})
	}
}

func TestWriteStereo_ClampsMixedOutput(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, 8000, 16, []float32{1.8, -3}, []float32{0.5, 0})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("os.Open() error = %v", err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	left, _, err := audio.ReadStereo(src)
	if err != nil {
		t.Fatalf("ReadStereo() error = %v", err)
	}

	if left[0] < 0.999 || left[0] > 1 {
		t.Errorf("clamped positive = %v, want ≈1", left[0])
	}
	if left[1] > -0.999 || left[1] < -1 {
		t.Errorf("clamped negative = %v, want ≈-1", left[1])
	}
}

func TestWriteStereo_Errors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	if err := WriteStereo(f, 44100, 12, nil, nil); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("WriteStereo(12-bit) error = %v, want ErrUnsupportedBitDepth", err)
	}
	if err := WriteStereo(f, 44100, 16, make([]float32, 3), make([]float32, 2)); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("WriteStereo(mismatch) error = %v, want ErrChannelMismatch", err)
	}
}
