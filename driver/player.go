// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Stream to the default audio device through oto. oto
// allows a single context per process, so only one Player may exist.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	stream *Stream

	mtx     sync.Mutex
	started bool
}

// NewPlayer opens the audio device at sampleRate. bufferSize is the
// device latency; zero lets oto choose.
func NewPlayer(stream *Stream, sampleRate int, bufferSize time.Duration) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
		stream: stream,
	}, nil
}

func (p *Player) Play() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
	}
}

// Send forwards a raw MIDI message to the stream.
func (p *Player) Send(data []byte) bool { return p.stream.Send(data) }

// Stop asks the stream to release all notes and end.
func (p *Player) Stop() { p.stream.Stop() }

func (p *Player) Dropped() int64 { return p.stream.Dropped() }

// Wait blocks until the stream has ended and the device drained it, or
// ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !p.player.IsPlaying() {
				return p.player.Err()
			}
		}
	}
}

func (p *Player) Close() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.started = false
	return p.player.Close()
}
