// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/sfzpbx/event"
	"github.com/ik5/sfzpbx/instrument"
)

const bytesPerFrame = 2 * 4 // stereo float32

// Stream turns an Instrument into interleaved float32 little-endian stereo
// PCM. It renders whole blocks on demand from Read, mixing a prepared
// timeline with events sent live through Send.
//
// Read must be called from a single goroutine, which then owns the
// instrument. Send is safe from any goroutine.
type Stream struct {
	inst      *instrument.Instrument
	sched     *event.Scheduler
	blockSize int

	queue   chan []byte
	dropped atomic.Int64

	timeline event.Timeline
	timed    bool

	left   []float32
	right  []float32
	events []event.Event
	buf    []byte
	pos    int

	tail     int
	stop     atomic.Bool
	stopped  bool
	finished atomic.Bool
	rendered atomic.Int64
}

type StreamOption func(*Stream)

// WithTimeline plays tl from the start. Without a timeline the stream only
// plays what Send delivers and never ends.
func WithTimeline(tl event.Timeline) StreamOption {
	return func(s *Stream) { s.timeline, s.timed = tl, true }
}

// WithTail keeps rendering for frames after the timeline ends.
func WithTail(frames int) StreamOption {
	return func(s *Stream) { s.tail = max(frames, 0) }
}

// WithQueueSize sets how many live events may wait for the next block.
func WithQueueSize(n int) StreamOption {
	return func(s *Stream) {
		if n > 0 {
			s.queue = make(chan []byte, n)
		}
	}
}

func NewStream(inst *instrument.Instrument, blockSize int, opts ...StreamOption) (*Stream, error) {
	if blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}

	s := &Stream{
		inst:      inst,
		blockSize: blockSize,
		queue:     make(chan []byte, 256),
		left:      make([]float32, blockSize),
		right:     make([]float32, blockSize),
		buf:       make([]byte, 0, blockSize*bytesPerFrame),
	}
	for _, opt := range opts {
		opt(s)
	}

	// sized for the densest block so rendering never grows a buffer
	perBlock := 0
	if s.timed {
		perBlock = s.timeline.MaxPerBlock(blockSize)
		s.sched = event.NewScheduler(s.timeline, perBlock)
	}
	s.events = make([]event.Event, 0, cap(s.queue)+perBlock)

	return s, nil
}

// Send queues a raw MIDI message for the start of the next block. It never
// blocks: when the queue is full the message is dropped and counted.
func (s *Stream) Send(data []byte) bool {
	msg := make([]byte, len(data))
	copy(msg, data)

	select {
	case s.queue <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Stop releases every sounding note at the next block and ends the stream
// once they have faded. The rest of the timeline and anything sent
// afterwards is ignored.
func (s *Stream) Stop() { s.stop.Store(true) }

// Dropped returns how many sent messages were lost to a full queue.
func (s *Stream) Dropped() int64 { return s.dropped.Load() }

// Finished reports whether the timeline and its tail have been rendered.
func (s *Stream) Finished() bool { return s.finished.Load() }

// Frames returns the number of frames rendered so far.
func (s *Stream) Frames() int64 { return s.rendered.Load() }

// Read fills p with PCM, rendering more blocks as needed. It returns
// io.EOF once a timeline stream has finished.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.pos >= len(s.buf) {
			if s.finished.Load() {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			s.renderBlock()
		}

		c := copy(p[n:], s.buf[s.pos:])
		s.pos += c
		n += c
	}
	return n, nil
}

func (s *Stream) renderBlock() {
	events := s.events[:0]

	if s.stop.Load() && !s.stopped {
		s.stopped = true
		s.inst.AllNotesOff()
	}

	// at most one queue's worth, so a busy sender cannot outgrow events
drain:
	for range cap(s.queue) {
		select {
		case msg := <-s.queue:
			if !s.stopped {
				events = append(events, event.Event{Offset: 0, Data: msg})
			}
		default:
			break drain
		}
	}

	if s.sched != nil && !s.stopped {
		events = append(events, s.sched.Next(s.blockSize)...)
	}
	s.events = events

	s.inst.Render(events, s.left, s.right)
	s.rendered.Add(int64(s.blockSize))

	s.buf = s.buf[:s.blockSize*bytesPerFrame]
	for i := range s.blockSize {
		binary.LittleEndian.PutUint32(s.buf[i*bytesPerFrame:], math.Float32bits(s.left[i]))
		binary.LittleEndian.PutUint32(s.buf[i*bytesPerFrame+4:], math.Float32bits(s.right[i]))
	}
	s.pos = 0

	switch {
	case s.stopped:
		if s.inst.ActiveVoices() == 0 {
			s.finished.Store(true)
		}
	case s.sched != nil && s.sched.Done():
		if s.tail <= 0 && s.inst.ActiveVoices() == 0 {
			s.finished.Store(true)
		}
		s.tail -= s.blockSize
	}
}
