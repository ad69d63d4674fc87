// SPDX-License-Identifier: EPL-2.0

package sample

// Bank is a frozen view of a Store's arena. It is safe to read from any
// number of goroutines and takes no locks, which makes it the only sample
// lookup allowed on the render path.
type Bank struct {
	samples []*Sample
}

// NewBank builds a bank directly from samples; handle i resolves to
// samples[i].
func NewBank(samples ...*Sample) *Bank {
	return &Bank{samples: samples}
}

// Get resolves h, returning nil for a handle outside the bank.
func (b *Bank) Get(h Handle) *Sample {
	if b == nil || h < 0 || int(h) >= len(b.samples) {
		return nil
	}
	return b.samples[h]
}

// Len returns the number of samples in the bank.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.samples)
}
