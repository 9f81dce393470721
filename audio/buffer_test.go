// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
	"time"
)

// planarMock hands out its samples as a single channel-major block.
type planarMock struct {
	*genSource
	planes [][]float32
}

func (p *planarMock) ReadPlanar() (*Buffer, error) {
	var samples []float32
	for _, plane := range p.planes {
		samples = append(samples, plane...)
	}
	return &Buffer{
		Samples:    samples,
		Channels:   len(p.planes),
		SampleRate: p.sampleRate,
		Layout:     ChannelMajor,
	}, nil
}

// stallingSource never produces samples and never ends.
type stallingSource struct{ genSource }

func (s *stallingSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestBuffer_Frames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  int
		want     int
	}{
		{"mono", 1, 10, 10},
		{"stereo", 2, 10, 5},
		{"six channels", 6, 12, 2},
		{"no channels", 0, 10, 0},
		{"empty", 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := NewBuffer(8000, tt.channels, make([]float32, tt.samples))
			if got := buf.Frames(); got != tt.want {
				t.Errorf("Frames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuffer_Duration(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(8000, 2, make([]float32, 8000))
	if got := buf.Duration(); got != 500*time.Millisecond {
		t.Errorf("Duration() = %v, want 500ms", got)
	}
}

func TestBuffer_ToFrameMajor(t *testing.T) {
	t.Parallel()

	buf := &Buffer{
		Samples:    []float32{1, 2, 3, 10, 20, 30},
		Channels:   2,
		SampleRate: 8000,
		Layout:     ChannelMajor,
	}

	buf.ToFrameMajor()

	want := []float32{1, 10, 2, 20, 3, 30}
	if buf.Layout != FrameMajor {
		t.Errorf("Layout = %v, want frame-major", buf.Layout)
	}
	for i, v := range want {
		if buf.Samples[i] != v {
			t.Fatalf("Samples = %v, want %v", buf.Samples, want)
		}
	}
}

func TestBuffer_ToFrameMajor_NoOp(t *testing.T) {
	t.Parallel()

	samples := []float32{1, 10, 2, 20}
	buf := NewBuffer(8000, 2, samples)
	buf.ToFrameMajor()

	if &buf.Samples[0] != &samples[0] {
		t.Error("ToFrameMajor() copied a buffer that was already frame-major")
	}

	mono := &Buffer{Samples: []float32{1, 2, 3}, Channels: 1, SampleRate: 8000, Layout: ChannelMajor}
	mono.ToFrameMajor()
	if mono.Layout != FrameMajor || mono.Samples[2] != 3 {
		t.Errorf("mono ToFrameMajor() = %v %v", mono.Layout, mono.Samples)
	}
}

func TestBuffer_Slice(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(8000, 2, []float32{0, 0, 1, 1, 2, 2, 3, 3})

	if err := buf.Slice(1, 3); err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if buf.Frames() != 2 || buf.Samples[0] != 1 || buf.Samples[3] != 2 {
		t.Errorf("Slice(1, 3) samples = %v", buf.Samples)
	}

	if err := buf.Slice(0, 5); !errors.Is(err, ErrFrameRange) {
		t.Errorf("Slice(0, 5) error = %v, want ErrFrameRange", err)
	}
	if err := buf.Slice(2, 1); !errors.Is(err, ErrFrameRange) {
		t.Errorf("Slice(2, 1) error = %v, want ErrFrameRange", err)
	}

	planar := &Buffer{Samples: []float32{1, 2}, Channels: 2, SampleRate: 8000, Layout: ChannelMajor}
	if err := planar.Slice(0, 1); !errors.Is(err, ErrNotFrameMajor) {
		t.Errorf("Slice() on channel-major error = %v, want ErrNotFrameMajor", err)
	}
}

func TestBuffer_GainAndPeak(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(8000, 1, []float32{0.1, -0.4, 0.2})
	if got := buf.Peak(); got != 0.4 {
		t.Errorf("Peak() = %v, want 0.4", got)
	}

	buf.Gain(2)
	if got := buf.Peak(); got != 0.8 {
		t.Errorf("Peak() after Gain(2) = %v, want 0.8", got)
	}
	if buf.Samples[1] != -0.8 {
		t.Errorf("Samples[1] = %v, want -0.8", buf.Samples[1])
	}
}

func TestBuffer_Source(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(16000, 2, []float32{1, 2, 3, 4, 5, 6})
	src := buf.Source()

	if src.SampleRate() != 16000 || src.Channels() != 2 {
		t.Fatalf("Source() metadata = %d Hz/%d ch", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v; want 4, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != io.EOF {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, io.EOF", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("read past end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	src := newGenSource(8000, 2, 10000, func(sample, channel int) float32 {
		return float32(channel)
	})

	buf, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Frames() != 10000 || buf.Channels != 2 || buf.SampleRate != 8000 {
		t.Fatalf("ReadAll() = %d frames, %d ch, %d Hz", buf.Frames(), buf.Channels, buf.SampleRate)
	}
	if buf.Layout != FrameMajor {
		t.Errorf("Layout = %v, want frame-major", buf.Layout)
	}
	if buf.Samples[0] != 0 || buf.Samples[1] != 1 {
		t.Errorf("first frame = %v, want [0 1]", buf.Samples[:2])
	}
}

func TestReadAll_PlanarSource(t *testing.T) {
	t.Parallel()

	src := &planarMock{
		genSource: newGenSource(22050, 2, 0, constant(0)),
		planes:     [][]float32{{1, 2}, {3, 4}},
	}

	buf, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Layout != ChannelMajor {
		t.Errorf("Layout = %v, want channel-major to be preserved", buf.Layout)
	}
	if buf.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", buf.Frames())
	}
}

func TestReadAll_InvalidSource(t *testing.T) {
	t.Parallel()

	if _, err := ReadAll(newGenSource(0, 1, 10, constant(0))); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("zero rate error = %v, want ErrInvalidSampleRate", err)
	}
	if _, err := ReadAll(newGenSource(8000, 0, 10, constant(0))); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("zero channels error = %v, want ErrInvalidChannels", err)
	}
}

func TestReadAll_NoProgress(t *testing.T) {
	t.Parallel()

	src := &stallingSource{genSource: *newGenSource(8000, 1, 10, constant(0))}
	if _, err := ReadAll(src); !errors.Is(err, ErrNoProgress) {
		t.Errorf("ReadAll() error = %v, want ErrNoProgress", err)
	}
}
