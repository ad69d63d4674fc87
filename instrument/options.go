// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/ik5/sfzpbx/audio"
)

const (
	DefaultSampleRate       = 44100
	DefaultVolume           = 0.4
	DefaultMaxVoicesPerNote = 8
	// MaxVoicesPerNoteLimit bounds the per-note table so it can be
	// allocated up front.
	MaxVoicesPerNoteLimit = 32
)

// OverflowPolicy decides what happens when a note that already holds the
// maximum number of voices is struck again.
type OverflowPolicy uint8

const (
	// StealOldest retires the oldest voice of that note that is already
	// done, else the oldest still playing, else the oldest overall.
	StealOldest OverflowPolicy = iota
	// DropNew ignores the new voice.
	DropNew
)

func (p OverflowPolicy) String() string {
	switch p {
	case StealOldest:
		return "steal_oldest"
	case DropNew:
		return "drop_new"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", p)
	}
}

func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "steal_oldest", "":
		return StealOldest, nil
	case "drop_new":
		return DropNew, nil
	default:
		return StealOldest, fmt.Errorf("%w: %q", ErrUnknownOverflowPolicy, s)
	}
}

type options struct {
	sampleRate       int
	volume           float32
	velocityTracking float32
	maxVoices        int
	overflow         OverflowPolicy

	// loading only
	logger      *slog.Logger
	concurrency int
	registry    *audio.Registry
}

func defaultOptions() options {
	return options{
		sampleRate:  DefaultSampleRate,
		volume:      DefaultVolume,
		maxVoices:   DefaultMaxVoicesPerNote,
		overflow:    StealOldest,
		logger:      slog.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
}

func (o *options) validate() error {
	switch {
	case o.sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidOption, o.sampleRate)
	case o.volume < 0:
		return fmt.Errorf("%w: volume %v", ErrInvalidOption, o.volume)
	case o.velocityTracking < 0 || o.velocityTracking > 1:
		return fmt.Errorf("%w: velocity tracking %v", ErrInvalidOption, o.velocityTracking)
	case o.maxVoices < 1 || o.maxVoices > MaxVoicesPerNoteLimit:
		return fmt.Errorf("%w: max voices per note %d", ErrInvalidOption, o.maxVoices)
	case o.overflow > DropNew:
		return fmt.Errorf("%w: %v", ErrInvalidOption, o.overflow)
	}
	return nil
}

type Option func(*options)

// WithSampleRate sets the render rate used to size release envelopes.
func WithSampleRate(rate int) Option {
	return func(o *options) { o.sampleRate = rate }
}

// WithVolume sets the initial amplitude of every voice.
func WithVolume(v float32) Option {
	return func(o *options) { o.volume = v }
}

// WithVelocityTracking sets how much note velocity scales voice volume,
// from 0 (ignored) to 1 (fully proportional).
func WithVelocityTracking(amount float32) Option {
	return func(o *options) { o.velocityTracking = amount }
}

func WithMaxVoicesPerNote(n int) Option {
	return func(o *options) { o.maxVoices = n }
}

func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(o *options) { o.overflow = p }
}

// WithLogger sets the logger used while loading. Rendering never logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLoadConcurrency limits how many samples decode at once. Zero or less
// means GOMAXPROCS.
func WithLoadConcurrency(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.concurrency = n
	}
}

// WithRegistry sets the decoders Load uses. Defaults to every bundled
// format.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) { o.registry = r }
}
