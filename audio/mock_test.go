// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// genSource produces frames computed by fn until it runs out. It counts
// Close calls so tests can check ownership.
type genSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	fn         func(frame, channel int) float32
	closed     int
}

func newGenSource(sampleRate, channels, frames int, fn func(frame, channel int) float32) *genSource {
	return &genSource{sampleRate: sampleRate, channels: channels, frames: frames, fn: fn}
}

func constant(v float32) func(int, int) float32 {
	return func(int, int) float32 { return v }
}

func sine(sampleRate int, freq float64) func(int, int) float32 {
	return func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(sampleRate)))
	}
}

func (g *genSource) SampleRate() int { return g.sampleRate }
func (g *genSource) Channels() int   { return g.channels }
func (g *genSource) BufSize() int    { return 4096 }
func (g *genSource) Close() error    { g.closed++; return nil }

func (g *genSource) ReadSamples(dst []float32) (int, error) {
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.fn(g.pos+f, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}
