// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	soxr "github.com/tphakala/go-audio-resampler"
)

// resampleChunkFrames is how many source frames are pulled per refill.
const resampleChunkFrames = 4096

// channelEngine converts one mono channel. Process may hold samples back
// for its filter delay; Flush returns them at end of stream.
type channelEngine interface {
	Process(input []float32) ([]float32, error)
	Flush() ([]float32, error)
}

// Resampler streams from src to a target sample rate. Each channel runs
// through its own high quality polyphase engine, so the output is free of
// the aliasing a plain interpolator lets through when downsampling.
// Works on interleaved samples; preserves channel count.
type Resampler struct {
	src      Source
	dstRate  int
	channels int

	// nil when the rates match and samples are passed through.
	engines []channelEngine

	in      []float32   // interleaved read buffer
	plane   []float32   // one deinterleaved channel
	pending [][]float32 // converted samples not yet handed out, per channel

	fed  bool // at least one frame reached the engines
	eof  bool // source drained and engines flushed
	done bool
}

// NewResampler wraps src so it reads at dstRate.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
		in:       make([]float32, resampleChunkFrames*channels),
		plane:    make([]float32, resampleChunkFrames),
		pending:  make([][]float32, channels),
	}

	if src.SampleRate() == dstRate {
		return r, nil
	}

	r.engines = make([]channelEngine, channels)
	for c := range channels {
		engine, err := soxr.NewEngineFloat32(float64(src.SampleRate()), float64(dstRate), soxr.QualityHigh)
		if err != nil {
			return nil, fmt.Errorf("creating resampler %d Hz to %d Hz: %w", src.SampleRate(), dstRate, err)
		}
		r.engines[c] = engine
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pendingFrames is the number of whole frames ready for output.
func (r *Resampler) pendingFrames() int {
	frames := len(r.pending[0])
	for _, p := range r.pending[1:] {
		frames = min(frames, len(p))
	}
	return frames
}

// convert feeds one channel's block through its engine, or straight to
// pending when the rates match.
func (r *Resampler) convert(c int, block []float32) error {
	if r.engines == nil {
		r.pending[c] = append(r.pending[c], block...)
		return nil
	}

	out, err := r.engines[c].Process(block)
	if err != nil {
		return fmt.Errorf("resampling channel %d: %w", c, err)
	}
	r.pending[c] = append(r.pending[c], out...)
	return nil
}

// flush drains the filter tails once the source has ended.
func (r *Resampler) flush() error {
	if r.engines == nil || !r.fed {
		return nil
	}

	for c, engine := range r.engines {
		out, err := engine.Flush()
		if err != nil {
			return fmt.Errorf("flushing channel %d: %w", c, err)
		}
		r.pending[c] = append(r.pending[c], out...)
	}
	return nil
}

// fill reads one chunk from the source and converts it. It reports how
// many frames the source produced.
func (r *Resampler) fill() (int, error) {
	n, readErr := r.src.ReadSamples(r.in)
	if readErr != nil && readErr != io.EOF {
		return 0, fmt.Errorf("%w", readErr)
	}

	frames := n / r.channels
	if frames > 0 {
		r.fed = true
		for c := range r.channels {
			block := r.plane[:frames]
			for i := range frames {
				block[i] = r.in[i*r.channels+c]
			}
			if err := r.convert(c, block); err != nil {
				return 0, err
			}
		}
	}

	if readErr == io.EOF {
		r.eof = true
		return frames, r.flush()
	}
	return frames, nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	empty := 0
	for r.pendingFrames() == 0 && !r.eof {
		frames, err := r.fill()
		if err != nil {
			return 0, err
		}
		if frames > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyReads {
			return 0, ErrNoProgress
		}
	}

	frames := min(len(dst)/r.channels, r.pendingFrames())
	for c := range r.channels {
		p := r.pending[c]
		for i := range frames {
			dst[i*r.channels+c] = p[i]
		}
		r.pending[c] = p[frames:]
	}

	if r.eof && r.pendingFrames() == 0 {
		r.done = true
		return frames * r.channels, io.EOF
	}
	return frames * r.channels, nil
}
