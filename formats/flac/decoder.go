// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	mflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audbatch/audio"
)

// frameParser is the part of flac.Stream the source depends on.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

// source yields FLAC audio either interleaved (ReadSamples) or as whole
// channel planes (ReadPlanar). A source is drained through one or the
// other, not both.
type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float64
	pending    []float32
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame returns the decoded channel planes of the next frame.
func (s *source) nextFrame() ([][]int32, error) {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if len(f.Subframes) != s.channels {
		return nil, fmt.Errorf("%w: frame has %d channels, stream has %d",
			audio.ErrRaggedPlanarSource, len(f.Subframes), s.channels)
	}

	planes := make([][]int32, s.channels)
	for c, sf := range f.Subframes {
		if len(sf.Samples) != len(f.Subframes[0].Samples) {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				audio.ErrRaggedPlanarSource, c, len(sf.Samples), len(f.Subframes[0].Samples))
		}
		planes[c] = sf.Samples
	}

	return planes, nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.done {
			return 0, io.EOF
		}

		planes, err := s.nextFrame()
		if err == io.EOF {
			s.done = true
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}

		frames := len(planes[0])
		s.pending = make([]float32, frames*s.channels)
		for c, plane := range planes {
			for f, v := range plane {
				s.pending[f*s.channels+c] = float32(float64(v) * s.scale)
			}
		}
	}

	n := copy(dst, s.pending)
	s.pending = s.pending[n:]

	return n, nil
}

// ReadPlanar decodes the remaining frames into a channel-major buffer:
// every sample of channel 0, then every sample of channel 1, and so on.
func (s *source) ReadPlanar() (*audio.Buffer, error) {
	planes := make([][]float32, s.channels)

	for !s.done {
		block, err := s.nextFrame()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return nil, err
		}

		for c, plane := range block {
			for _, v := range plane {
				planes[c] = append(planes[c], float32(float64(v)*s.scale))
			}
		}
	}

	frames := len(planes[0])
	samples := make([]float32, 0, frames*s.channels)
	for _, plane := range planes {
		samples = append(samples, plane...)
	}

	return &audio.Buffer{
		Samples:    samples,
		Channels:   s.channels,
		SampleRate: s.sampleRate,
		Layout:     audio.ChannelMajor,
	}, nil
}

// Decoder decodes FLAC streams with github.com/mewkiz/flac.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := mflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info == nil || info.SampleRate == 0 || info.NChannels == 0 {
		_ = stream.Close()
		return nil, ErrNotFlacFile
	}

	bps := int(info.BitsPerSample)
	if bps < 4 || bps > 32 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bps)
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      1 / float64(int64(1)<<(bps-1)),
	}, nil
}
