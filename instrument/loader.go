// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ik5/sfzpbx/formats"
	"github.com/ik5/sfzpbx/sample"
	"github.com/ik5/sfzpbx/sfz"
	"golang.org/x/sync/errgroup"
)

// Load parses the SFZ file at path, decodes every referenced sample and
// returns a ready instrument.
func Load(ctx context.Context, path string, opts ...Option) (*Instrument, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	def, err := sfz.ParseFile(path)
	if err != nil {
		return nil, err
	}

	registry := o.registry
	if registry == nil {
		registry = formats.NewRegistry()
	}
	store := sample.NewStore(sample.FileDecoder{Registry: registry}, sample.WithLogger(o.logger))

	regions, bank, err := Build(ctx, def, store, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(regions, bank, opts...)
}

// Build resolves every region of def, decoding samples through store in
// parallel. Any failure aborts the whole build. Opcodes without meaning
// here are logged and ignored.
func Build(ctx context.Context, def *sfz.Definition, store *sample.Store, opts ...Option) ([]Region, *sample.Bank, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	regions := make([]Region, len(def.Regions))

	var (
		mtx         sync.Mutex
		unsupported = make(map[string]int)
	)
	report := func(name string) {
		mtx.Lock()
		unsupported[name]++
		mtx.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, desc := range def.Regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := buildRegion(def, desc, store, report)
			if err != nil {
				return fmt.Errorf("region at line %d: %w", desc.Line, err)
			}
			regions[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(unsupported))
	for name := range unsupported {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		o.logger.Warn("unsupported opcode ignored", "opcode", name, "regions", unsupported[name])
	}
	for _, header := range def.SkippedHeaders {
		o.logger.Warn("unsupported header ignored", "header", header)
	}

	bank := store.Bank()
	for h := range bank.Len() {
		smp := bank.Get(sample.Handle(h))
		if smp.SampleRate != o.sampleRate {
			o.logger.Warn("sample rate differs from render rate, pitch will be off",
				"sample", smp.Identity,
				"sample_rate", smp.SampleRate,
				"render_rate", o.sampleRate,
			)
		}
	}

	o.logger.Info("instrument loaded",
		"regions", len(regions),
		"samples", bank.Len(),
		"took", time.Since(start),
	)
	return regions, bank, nil
}

func buildRegion(def *sfz.Definition, desc sfz.Descriptor, store *sample.Store, report func(string)) (Region, error) {
	r := NewRegion(sample.NoHandle)

	var (
		keyCenter     uint8 = 60
		centerIsFixed bool
		samplePath    string
	)

	for _, op := range desc.Opcodes {
		var err error
		switch op.Name {
		case "sample":
			samplePath, _ = def.SamplePath(desc)
		case "loop_mode":
			r.LoopMode, err = ParseLoopMode(op.Value)
		case "lokey":
			r.LowKey, err = op.Note()
		case "hikey":
			r.HighKey, err = op.Note()
		case "key":
			var n uint8
			n, err = op.Note()
			r.LowKey, r.HighKey = n, n
			if !centerIsFixed {
				keyCenter = n
			}
		case "pitch_keycenter":
			keyCenter, err = op.Note()
			centerIsFixed = true
		case "lovel":
			r.LowVelocity, err = velocity(op)
		case "hivel":
			r.HighVelocity, err = velocity(op)
		case "ampeg_release":
			r.Release, err = op.Float()
			if err == nil && r.Release < 0 {
				err = fmt.Errorf("%w: %s", ErrInvalidRegion, op)
			}
		default:
			report(op.Name)
		}
		if err != nil {
			return Region{}, err
		}
	}

	if samplePath == "" {
		return Region{}, ErrMissingSample
	}
	if r.LowKey > r.HighKey || r.LowVelocity > r.HighVelocity {
		return Region{}, fmt.Errorf("%w: keys %d-%d velocities %d-%d",
			ErrInvalidRegion, r.LowKey, r.HighKey, r.LowVelocity, r.HighVelocity)
	}

	h, err := store.Acquire(samplePath)
	if err != nil {
		return Region{}, err
	}
	r.Sample = h
	r.PitchFrequency = NoteFrequency(keyCenter)
	return r, nil
}

func velocity(op sfz.Opcode) (uint8, error) {
	n, err := op.Int()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRegion, op)
	}
	return uint8(n), nil
}
