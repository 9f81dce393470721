// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/audbatch"
	"github.com/ik5/audbatch/audio"
	"github.com/ik5/audbatch/formats/wav"
	"github.com/ik5/audbatch/internal/config"
	"github.com/ik5/audbatch/loudness"
)

// DecodeFunc decodes a whole file into a buffer at its native rate.
type DecodeFunc func(ctx context.Context, path string) (*audio.Buffer, error)

// Processor runs the per-file transform: decode, resample, trim,
// normalize and encode. It only reads its fields, so one Processor serves
// every worker.
type Processor struct {
	cfg     config.Config
	baseDir string
	outRoot string
	decode  DecodeFunc
	meter   loudness.Meter
	log     *zap.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithDecoder replaces the default registry based decoder.
func WithDecoder(fn DecodeFunc) Option {
	return func(p *Processor) { p.decode = fn }
}

// WithMeter replaces the BS.1770 loudness meter.
func WithMeter(m loudness.Meter) Option {
	return func(p *Processor) { p.meter = m }
}

// NewProcessor returns a Processor writing outputs for files under baseDir
// into outRoot.
func NewProcessor(cfg config.Config, baseDir, outRoot string, log *zap.Logger, opts ...Option) *Processor {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Processor{
		cfg:     cfg,
		baseDir: baseDir,
		outRoot: outRoot,
		decode:  audbatch.DecodeFile,
		meter:   loudness.NewMeter(),
		log:     log,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process converts one file. It never returns an error or panics; every
// problem ends up in the Outcome.
func (p *Processor) Process(ctx context.Context, task FileTask) (out Outcome) {
	out.Path = task.Path
	log := p.log.With(zap.String("file", task.Path))

	defer func() {
		if r := recover(); r != nil {
			log.Debug("panic while processing", zap.ByteString("stack", debug.Stack()))
			out.Err = stageError("panic", fmt.Errorf("%v", r))
		}
	}()

	start := time.Now()
	out.Err = p.process(ctx, task, log)

	if out.Err != nil {
		log.Debug("failed", zap.Error(out.Err), zap.Duration("took", time.Since(start)))
	} else {
		log.Debug("done", zap.Duration("took", time.Since(start)))
	}

	return out
}

func (p *Processor) process(ctx context.Context, task FileTask, log *zap.Logger) error {
	outPath, err := OutputPath(task.Path, p.baseDir, p.outRoot)
	if err != nil {
		return stageError("output path", err)
	}

	subtype, err := wav.SubtypeFor(p.cfg.BitDepth)
	if err != nil {
		return stageError("encode", err)
	}

	buf, err := p.decode(ctx, task.Path)
	if err != nil {
		return stageError("decode", err)
	}
	buf.ToFrameMajor()
	log.Debug("decoded",
		zap.Int("rate", buf.SampleRate),
		zap.Int("channels", buf.Channels),
		zap.Duration("length", buf.Duration()))

	if buf.SampleRate != p.cfg.SampleRate {
		buf, err = audio.Resample(buf, p.cfg.SampleRate)
		if err != nil {
			return stageError("resample", err)
		}
		log.Debug("resampled", zap.Int("rate", buf.SampleRate))
	}

	if p.cfg.TrimSilence {
		before := buf.Frames()
		if err := audio.TrimSilence(buf, p.cfg.SilenceThresholdDB); err != nil {
			return stageError("trim", err)
		}
		log.Debug("trimmed", zap.Int("frames_removed", before-buf.Frames()))
	}

	if p.cfg.Normalize {
		p.normalize(buf, log)
	}

	if err := wav.WriteFile(outPath, buf, subtype); err != nil {
		return stageError("encode", err)
	}
	log.Debug("written", zap.String("output", outPath), zap.Stringer("subtype", subtype))

	return nil
}

// normalize applies the gain that brings buf to the target loudness.
// Unmeasurable input is left as is with a warning.
func (p *Processor) normalize(buf *audio.Buffer, log *zap.Logger) {
	if buf.Frames() == 0 {
		log.Warn("skipping loudness normalization: no audio left")
		return
	}

	lufs, err := p.meter.Integrated(buf)
	switch {
	case errors.Is(err, loudness.ErrUndefined):
		log.Warn("skipping loudness normalization: loudness undefined")
		return
	case err != nil:
		log.Warn("skipping loudness normalization", zap.Error(err))
		return
	case math.IsNaN(lufs) || math.IsInf(lufs, 0):
		log.Warn("skipping loudness normalization: loudness not finite", zap.Float64("lufs", lufs))
		return
	}

	gain := loudness.GainFor(lufs, p.cfg.TargetLUFS)
	buf.Gain(float32(gain))
	log.Debug("normalized",
		zap.Float64("lufs", lufs),
		zap.Float64("target", p.cfg.TargetLUFS),
		zap.Float64("gain", gain))

	if peak := buf.Peak(); peak > 1.0 {
		log.Warn("output will clip after loudness normalization",
			zap.Float64("peak_db", 20*math.Log10(float64(peak))))
	}
}
