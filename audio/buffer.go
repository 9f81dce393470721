// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Layout describes how the samples of a multi-channel Buffer are ordered.
type Layout int

const (
	// FrameMajor stores one frame after another: L0 R0 L1 R1 ...
	FrameMajor Layout = iota
	// ChannelMajor stores one whole channel after another: L0 L1 ... R0 R1 ...
	ChannelMajor
)

func (l Layout) String() string {
	switch l {
	case FrameMajor:
		return "frame-major"
	case ChannelMajor:
		return "channel-major"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadAll
// tolerates before giving up on a source.
const maxEmptyReads = 100

// Buffer is a fully decoded block of float32 samples in [-1, 1].
// It is owned by a single processing pass and is not safe for
// concurrent use.
type Buffer struct {
	Samples    []float32
	Channels   int
	SampleRate int
	Layout     Layout
}

// NewBuffer wraps interleaved samples in a frame-major Buffer.
func NewBuffer(sampleRate, channels int, samples []float32) *Buffer {
	return &Buffer{
		Samples:    samples,
		Channels:   channels,
		SampleRate: sampleRate,
		Layout:     FrameMajor,
	}
}

// Frames returns the number of sample frames held.
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}

	return len(b.Samples) / b.Channels
}

// Duration returns the playing time of the buffer at its current rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// ToFrameMajor transposes a channel-major buffer in place so every later
// stage sees (frames, channels) ordering. Mono and frame-major buffers are
// left untouched.
func (b *Buffer) ToFrameMajor() {
	if b.Layout == FrameMajor {
		return
	}
	if b.Channels <= 1 {
		b.Layout = FrameMajor
		return
	}

	frames := b.Frames()
	out := make([]float32, frames*b.Channels)
	for c := range b.Channels {
		plane := b.Samples[c*frames : (c+1)*frames]
		for f, v := range plane {
			out[f*b.Channels+c] = v
		}
	}

	b.Samples = out
	b.Layout = FrameMajor
}

// Slice narrows the buffer to frames [start, end). The underlying array
// is shared, no samples are copied.
func (b *Buffer) Slice(start, end int) error {
	if b.Layout != FrameMajor {
		return ErrNotFrameMajor
	}
	if start < 0 || end < start || end > b.Frames() {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrFrameRange, start, end, b.Frames())
	}

	b.Samples = b.Samples[start*b.Channels : end*b.Channels]
	return nil
}

// Gain multiplies every sample by g.
func (b *Buffer) Gain(g float32) {
	for i := range b.Samples {
		b.Samples[i] *= g
	}
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float32 {
	var peak float32
	for _, v := range b.Samples {
		if a := float32(math.Abs(float64(v))); a > peak {
			peak = a
		}
	}

	return peak
}

// Source returns a streaming view over a frame-major buffer so it can be
// fed through Source based processors such as the Resampler.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src into a frame-major Buffer. A PlanarSource is drained
// through ReadPlanar instead, keeping its channel-major layout so the
// caller decides when to transpose.
func ReadAll(src Source) (*Buffer, error) {
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	if ps, ok := src.(PlanarSource); ok {
		buf, err := ps.ReadPlanar()
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		return buf, nil
	}

	bufferSize := max(src.BufSize(), 4096)
	bufferSize -= bufferSize % channels
	tmp := make([]float32, bufferSize)

	var samples []float32
	empty := 0

	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			samples = append(samples, tmp[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// Drop a trailing partial frame from truncated input.
	samples = samples[:len(samples)-len(samples)%channels]

	return NewBuffer(src.SampleRate(), channels, samples), nil
}
