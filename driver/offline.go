// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"context"
	"fmt"

	"github.com/ik5/sfzpbx/event"
	"github.com/ik5/sfzpbx/instrument"
)

// Offline renders a whole timeline into memory, block by block, the same
// way a sound card driver would call the instrument.
type Offline struct {
	BlockSize int
	// Tail is the number of frames rendered after the last event.
	Tail int
}

// Render returns len(tl)+Tail frames of stereo output. ctx is checked
// between blocks.
func (o Offline) Render(ctx context.Context, inst *instrument.Instrument, tl event.Timeline) (left, right []float32, err error) {
	if o.BlockSize <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, o.BlockSize)
	}

	total := int(tl.Length()) + max(o.Tail, 0)
	left = make([]float32, total)
	right = make([]float32, total)

	sched := event.NewScheduler(tl, tl.MaxPerBlock(o.BlockSize))
	for start := 0; start < total; start += o.BlockSize {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		end := min(start+o.BlockSize, total)
		inst.Render(sched.Next(end-start), left[start:end], right[start:end])
	}

	return left, right, nil
}
