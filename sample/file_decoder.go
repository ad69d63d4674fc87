// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"fmt"
	"os"

	"github.com/ik5/sfzpbx/audio"
)

// FileDecoder decodes identities as file paths, picking the codec from the
// file extension.
type FileDecoder struct {
	Registry *audio.Registry
}

func (d FileDecoder) Decode(path string) (*Sample, error) {
	dec, err := d.Registry.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	left, right, err := audio.ReadStereo(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Sample{
		Identity:   path,
		Left:       left,
		Right:      right,
		SampleRate: src.SampleRate(),
	}, nil
}
