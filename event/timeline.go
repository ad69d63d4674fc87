// SPDX-License-Identifier: EPL-2.0

package event

import (
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

const defaultBPM = 120.0

// Timed is a raw MIDI channel message stamped with an absolute frame.
type Timed struct {
	Frame int64
	Data  []byte
}

// Timeline is a frame-ordered list of events for a whole song.
type Timeline []Timed

// Length returns the frame just after the last event.
func (tl Timeline) Length() int64 {
	if len(tl) == 0 {
		return 0
	}
	return tl[len(tl)-1].Frame + 1
}

// MaxPerBlock returns the largest number of events that fall into one
// block when the timeline is cut into blockSize frames from frame 0, as
// Scheduler does.
func (tl Timeline) MaxPerBlock(blockSize int) int {
	if blockSize <= 0 {
		return len(tl)
	}

	most, count := 0, 0
	block := int64(-1)
	for _, t := range tl {
		b := max(t.Frame, 0) / int64(blockSize)
		if b != block {
			block, count = b, 0
		}
		count++
		most = max(most, count)
	}
	return most
}

// ReadSMF loads a Standard MIDI File and converts it with FromSMF.
func ReadSMF(path string, sampleRate int) (Timeline, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return FromSMF(s, sampleRate)
}

type tickedMessage struct {
	tick  int64
	track int
	msg   smf.Message
}

// FromSMF merges every track of s into one timeline, converting ticks to
// frames at sampleRate. Tempo changes on any track apply to all tracks.
// Only channel messages are kept.
func FromSMF(s *smf.SMF, sampleRate int) (Timeline, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrUnsupportedTimeFormat
	}
	ppq := float64(ticks.Ticks4th())
	if ppq == 0 {
		return nil, fmt.Errorf("%w: zero ticks per quarter", ErrUnsupportedTimeFormat)
	}

	var merged []tickedMessage
	for i, track := range s.Tracks {
		var abs int64
		for _, ev := range track {
			abs += int64(ev.Delta)
			merged = append(merged, tickedMessage{tick: abs, track: i, msg: ev.Message})
		}
	}
	// equal ticks keep track order, and file order within a track
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].tick != merged[j].tick {
			return merged[i].tick < merged[j].tick
		}
		return merged[i].track < merged[j].track
	})

	var (
		tl       Timeline
		bpm      = defaultBPM
		lastTick int64
		seconds  float64
	)
	for _, m := range merged {
		seconds += float64(m.tick-lastTick) * 60 / (bpm * ppq)
		lastTick = m.tick

		var tempo float64
		if m.msg.GetMetaTempo(&tempo) {
			if tempo > 0 {
				bpm = tempo
			}
			continue
		}
		if len(m.msg) == 0 || m.msg[0] < 0x80 || m.msg[0] >= 0xF0 {
			continue
		}

		data := make([]byte, len(m.msg))
		copy(data, m.msg)
		tl = append(tl, Timed{
			Frame: int64(math.Round(seconds * float64(sampleRate))),
			Data:  data,
		})
	}
	return tl, nil
}
