// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Decoder turns a sample identity into decoded audio.
type Decoder interface {
	Decode(identity string) (*Sample, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(identity string) (*Sample, error)

func (f DecoderFunc) Decode(identity string) (*Sample, error) { return f(identity) }

type StoreOption func(*Store)

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// entry tracks one identity; done is closed once its decode finished.
type entry struct {
	handle Handle
	ready  bool
	err    error
	done   chan struct{}
}

// Store deduplicates decoded samples by identity. Identities are reserved
// before decoding starts, so concurrent callers never decode the same
// identity twice. The store is meant for load time; the render path reads
// from a Bank instead.
type Store struct {
	dec    Decoder
	logger *slog.Logger

	mtx     *sync.RWMutex
	index   map[string]*entry
	samples []*Sample
}

func NewStore(dec Decoder, opts ...StoreOption) *Store {
	s := &Store{
		dec:    dec,
		logger: slog.Default(),
		mtx:    &sync.RWMutex{},
		index:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register decodes identity and adds it to the store. A repeated
// registration, including one racing an in-flight decode, fails with
// ErrAlreadyLoaded and leaves the store untouched.
func (s *Store) Register(identity string) (Handle, error) {
	if identity == "" {
		return NoHandle, ErrEmptyIdentity
	}

	s.mtx.Lock()
	if _, ok := s.index[identity]; ok {
		s.mtx.Unlock()
		return NoHandle, fmt.Errorf("%w: %s", ErrAlreadyLoaded, identity)
	}
	e := s.reserve(identity)
	s.mtx.Unlock()

	return s.load(identity, e)
}

// Acquire returns the handle for identity, decoding it first when no one
// has. Callers that race an in-flight decode wait for it and share its
// result.
func (s *Store) Acquire(identity string) (Handle, error) {
	if identity == "" {
		return NoHandle, ErrEmptyIdentity
	}

	s.mtx.Lock()
	if e, ok := s.index[identity]; ok {
		s.mtx.Unlock()
		<-e.done
		if e.err != nil {
			return NoHandle, e.err
		}
		return e.handle, nil
	}
	e := s.reserve(identity)
	s.mtx.Unlock()

	return s.load(identity, e)
}

// reserve must be called with mtx held.
func (s *Store) reserve(identity string) *entry {
	e := &entry{handle: NoHandle, done: make(chan struct{})}
	s.index[identity] = e
	return e
}

func (s *Store) load(identity string, e *entry) (Handle, error) {
	start := time.Now()
	s.logger.Debug("decoding sample", "identity", identity)

	smp, err := s.dec.Decode(identity)
	if err == nil && smp == nil {
		err = ErrNoSample
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	defer close(e.done)

	if err != nil {
		// drop the reservation so the caller may retry with a fixed file
		delete(s.index, identity)
		e.err = fmt.Errorf("decoding %s: %w", identity, err)
		return NoHandle, e.err
	}

	if smp.Identity == "" {
		smp.Identity = identity
	}
	s.samples = append(s.samples, smp)
	e.handle = Handle(len(s.samples) - 1)
	e.ready = true

	s.logger.Debug("sample decoded",
		"identity", identity,
		"handle", int(e.handle),
		"frames", smp.Len(),
		"sample_rate", smp.SampleRate,
		"took", time.Since(start),
	)
	return e.handle, nil
}

// Lookup returns the handle of an already decoded identity.
func (s *Store) Lookup(identity string) (Handle, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	e, ok := s.index[identity]
	if !ok || !e.ready {
		return NoHandle, false
	}
	return e.handle, true
}

// Get returns the decoded sample behind h, or ErrUnknownHandle.
func (s *Store) Get(h Handle) (*Sample, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if h < 0 || int(h) >= len(s.samples) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return s.samples[h], nil
}

// Len returns the number of decoded samples.
func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.samples)
}

// Bank snapshots the arena. Samples registered afterwards are not visible
// through the returned bank.
func (s *Store) Bank() *Bank {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	samples := make([]*Sample, len(s.samples))
	copy(samples, s.samples)
	return &Bank{samples: samples}
}
