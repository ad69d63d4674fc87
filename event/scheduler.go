// SPDX-License-Identifier: EPL-2.0

package event

// Scheduler slices a Timeline into render blocks. The slice returned by
// Next is reused by the following call.
type Scheduler struct {
	timeline Timeline
	next     int
	frame    int64
	buf      []Event
}

// NewScheduler prepares a scheduler whose buffer fits capacity events per
// block without growing.
func NewScheduler(tl Timeline, capacity int) *Scheduler {
	return &Scheduler{
		timeline: tl,
		buf:      make([]Event, 0, capacity),
	}
}

// Next returns the events that fall in the next blockSize frames, with
// offsets relative to the block start, and advances by one block.
func (s *Scheduler) Next(blockSize int) []Event {
	s.buf = s.buf[:0]
	end := s.frame + int64(blockSize)

	for s.next < len(s.timeline) && s.timeline[s.next].Frame < end {
		t := s.timeline[s.next]
		offset := max(t.Frame-s.frame, 0)
		s.buf = append(s.buf, Event{Offset: int(offset), Data: t.Data})
		s.next++
	}

	s.frame = end
	return s.buf
}

// Frame is the absolute frame at the start of the next block.
func (s *Scheduler) Frame() int64 { return s.frame }

// Done reports whether every event has been handed out.
func (s *Scheduler) Done() bool { return s.next >= len(s.timeline) }

func (s *Scheduler) Reset() {
	s.next = 0
	s.frame = 0
	s.buf = s.buf[:0]
}
