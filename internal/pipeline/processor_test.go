// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/audbatch"
	"github.com/ik5/audbatch/audio"
	"github.com/ik5/audbatch/formats/wav"
	"github.com/ik5/audbatch/internal/audiotest"
	"github.com/ik5/audbatch/internal/config"
	"github.com/ik5/audbatch/loudness"
)

// fixture lays out an input and an output directory and returns a config
// pointing at them.
type fixture struct {
	in, out string
	cfg     config.Config
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	root := t.TempDir()
	f := fixture{
		in:  filepath.Join(root, "in"),
		out: filepath.Join(root, "out"),
		cfg: config.DefaultConfig(),
	}
	if err := os.MkdirAll(f.in, 0o755); err != nil {
		t.Fatal(err)
	}
	f.cfg.InputPath = f.in
	f.cfg.OutputDir = f.out

	return f
}

// task returns a task for rel inside the input directory. The file itself
// only exists when the test writes it.
func (f fixture) task(rel string) FileTask {
	return FileTask{Path: filepath.Join(f.in, filepath.FromSlash(rel)), RelPath: rel}
}

func (f fixture) outPath(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".wav"
	return filepath.Join(f.out, filepath.FromSlash(rel))
}

func writeInput(t *testing.T, path string, buf *audio.Buffer) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := wav.WriteFile(path, buf, wav.PCM24); err != nil {
		t.Fatalf("write input: %v", err)
	}
}

func decodeOutput(t *testing.T, path string) *audio.Buffer {
	t.Helper()

	buf, err := audbatch.DecodeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("decode output %s: %v", path, err)
	}
	return buf
}

// bufferDecoder hands out copies of buf, ignoring the path.
func bufferDecoder(buf *audio.Buffer) DecodeFunc {
	return func(context.Context, string) (*audio.Buffer, error) {
		cp := *buf
		cp.Samples = append([]float32(nil), buf.Samples...)
		return &cp, nil
	}
}

type meterFunc func(*audio.Buffer) (float64, error)

func (f meterFunc) Integrated(buf *audio.Buffer) (float64, error) { return f(buf) }

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestProcess_ResamplesTo16Bit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	task := f.task("album/song.wav")
	writeInput(t, task.Path, audiotest.SineBuffer(48000, 2, 48000, 440, 0.5))

	proc := NewProcessor(f.cfg, f.in, f.out, nil)
	out := proc.Process(context.Background(), task)
	if !out.OK() {
		t.Fatalf("Process() failed: %v", out.Err)
	}
	if out.Path != task.Path {
		t.Errorf("Outcome.Path = %q, want %q", out.Path, task.Path)
	}

	buf := decodeOutput(t, f.outPath(task.RelPath))
	if buf.SampleRate != 44100 {
		t.Errorf("output rate = %d, want 44100", buf.SampleRate)
	}
	if buf.Channels != 2 {
		t.Errorf("output channels = %d, want 2", buf.Channels)
	}
	if diff := math.Abs(float64(buf.Frames() - 44100)); diff > 441 {
		t.Errorf("output frames = %d, want about 44100", buf.Frames())
	}
}

func TestProcess_BitDepth(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		t.Run(wav.Subtype(depth).String(), func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.cfg.BitDepth = depth
			task := f.task("tone.flac")

			proc := NewProcessor(f.cfg, f.in, f.out, nil,
				WithDecoder(bufferDecoder(audiotest.SineBuffer(44100, 1, 4410, 440, 0.5))))
			if out := proc.Process(context.Background(), task); !out.OK() {
				t.Fatalf("Process() failed: %v", out.Err)
			}

			data, err := os.ReadFile(f.outPath(task.RelPath))
			if err != nil {
				t.Fatal(err)
			}
			if got := int(binary.LittleEndian.Uint16(data[34:36])); got != depth {
				t.Errorf("bits per sample = %d, want %d", got, depth)
			}
			if got := int(binary.LittleEndian.Uint16(data[20:22])); got != 1 {
				t.Errorf("audio format = %d, want 1 (PCM)", got)
			}
		})
	}
}

func TestProcess_InvalidBitDepth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cfg.BitDepth = 8
	task := f.task("tone.wav")

	proc := NewProcessor(f.cfg, f.in, f.out, nil,
		WithDecoder(bufferDecoder(audiotest.SineBuffer(44100, 1, 4410, 440, 0.5))))
	out := proc.Process(context.Background(), task)

	if !errors.Is(out.Err, ErrFileProcessing) || !errors.Is(out.Err, wav.ErrUnsupportedSubtype) {
		t.Errorf("Process() error = %v, want unsupported subtype", out.Err)
	}
}

func TestProcess_SameRatePassesThrough(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cfg.Normalize = true
	src := audiotest.SineBuffer(44100, 2, 44100, 440, 0.5)

	var seen *audio.Buffer
	proc := NewProcessor(f.cfg, f.in, f.out, nil,
		WithDecoder(bufferDecoder(src)),
		WithMeter(meterFunc(func(buf *audio.Buffer) (float64, error) {
			cp := *buf
			cp.Samples = append([]float32(nil), buf.Samples...)
			seen = &cp
			return 0, loudness.ErrUndefined
		})))

	if out := proc.Process(context.Background(), f.task("a.wav")); !out.OK() {
		t.Fatalf("Process() failed: %v", out.Err)
	}

	if seen == nil {
		t.Fatal("meter never called")
	}
	if len(seen.Samples) != len(src.Samples) {
		t.Fatalf("samples = %d, want %d", len(seen.Samples), len(src.Samples))
	}
	for i := range src.Samples {
		if math.Float32bits(seen.Samples[i]) != math.Float32bits(src.Samples[i]) {
			t.Fatalf("sample %d changed: %v != %v", i, seen.Samples[i], src.Samples[i])
		}
	}
}

func TestProcess_TrimAllSilence(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cfg.TrimSilence = true
	f.cfg.Normalize = true
	task := f.task("quiet.ogg")

	logger, logs := observedLogger()
	proc := NewProcessor(f.cfg, f.in, f.out, logger,
		WithDecoder(bufferDecoder(audiotest.SilentBuffer(44100, 2, 44100))))

	if out := proc.Process(context.Background(), task); !out.OK() {
		t.Fatalf("Process() failed: %v", out.Err)
	}

	info, err := os.Stat(f.outPath(task.RelPath))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 44 {
		t.Errorf("output size = %d, want a bare 44 byte header", info.Size())
	}

	if logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("normalization").Len() != 1 {
		t.Errorf("expected one normalization warning, got %v", logs.All())
	}
}

func TestProcess_NormalizeSkipsUndefined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		meter meterFunc
	}{
		{"undefined", func(*audio.Buffer) (float64, error) { return 0, loudness.ErrUndefined }},
		{"wrapped undefined", func(*audio.Buffer) (float64, error) {
			return 0, errors.Join(errors.New("too short"), loudness.ErrUndefined)
		}},
		{"other error", func(*audio.Buffer) (float64, error) { return 0, loudness.ErrInvalidBuffer }},
		{"negative infinity", func(*audio.Buffer) (float64, error) { return math.Inf(-1), nil }},
		{"NaN", func(*audio.Buffer) (float64, error) { return math.NaN(), nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.cfg.Normalize = true
			task := f.task("a.wav")
			src := audiotest.SineBuffer(44100, 1, 4410, 440, 0.25)

			logger, logs := observedLogger()
			proc := NewProcessor(f.cfg, f.in, f.out, logger,
				WithDecoder(bufferDecoder(src)), WithMeter(tt.meter))

			if out := proc.Process(context.Background(), task); !out.OK() {
				t.Fatalf("Process() failed: %v", out.Err)
			}

			if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
				t.Errorf("expected one warning, got %v", logs.All())
			}

			buf := decodeOutput(t, f.outPath(task.RelPath))
			if peak := buf.Peak(); math.Abs(float64(peak)-0.25) > 0.01 {
				t.Errorf("peak = %v, gain should not have been applied", peak)
			}
		})
	}
}

func TestProcess_Normalizes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cfg.Normalize = true
	f.cfg.TargetLUFS = -20
	task := f.task("a.wav")

	proc := NewProcessor(f.cfg, f.in, f.out, nil,
		WithDecoder(bufferDecoder(audiotest.SineBuffer(44100, 2, 3*44100, 1000, 0.5))))
	if out := proc.Process(context.Background(), task); !out.OK() {
		t.Fatalf("Process() failed: %v", out.Err)
	}

	lufs, err := loudness.NewMeter().Integrated(decodeOutput(t, f.outPath(task.RelPath)))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lufs-(-20)) > 0.1 {
		t.Errorf("output loudness = %.2f LUFS, want -20", lufs)
	}
}

func TestProcess_ClippingWarning(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cfg.Normalize = true
	f.cfg.TargetLUFS = 3

	logger, logs := observedLogger()
	proc := NewProcessor(f.cfg, f.in, f.out, logger,
		WithDecoder(bufferDecoder(audiotest.SineBuffer(44100, 2, 44100, 1000, 0.5))))
	if out := proc.Process(context.Background(), f.task("a.wav")); !out.OK() {
		t.Fatalf("Process() failed: %v", out.Err)
	}

	if logs.FilterMessageSnippet("clip").Len() != 1 {
		t.Errorf("expected a clipping warning, got %v", logs.All())
	}
}

func TestProcess_DecodeFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	task := f.task("broken.mp3")
	if err := os.WriteFile(task.Path, []byte("definitely not an mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := NewProcessor(f.cfg, f.in, f.out, nil)
	out := proc.Process(context.Background(), task)

	if out.OK() {
		t.Fatal("Process() succeeded on a corrupt file")
	}
	if !errors.Is(out.Err, ErrFileProcessing) {
		t.Errorf("error %v does not wrap ErrFileProcessing", out.Err)
	}
	if !strings.HasPrefix(out.Err.Error(), "decode: ") {
		t.Errorf("error message = %q, want decode stage", out.Err)
	}
	if _, err := os.Stat(f.outPath(task.RelPath)); !os.IsNotExist(err) {
		t.Error("output written for a failed file")
	}
}

func TestProcess_RecoversPanic(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	proc := NewProcessor(f.cfg, f.in, f.out, nil,
		WithDecoder(func(context.Context, string) (*audio.Buffer, error) {
			panic("decoder exploded")
		}))

	out := proc.Process(context.Background(), f.task("a.wav"))
	if !errors.Is(out.Err, ErrFileProcessing) {
		t.Fatalf("Process() error = %v, want ErrFileProcessing", out.Err)
	}
	if !strings.Contains(out.Err.Error(), "decoder exploded") {
		t.Errorf("error message %q lost the panic value", out.Err)
	}
}

func TestProcess_OutsideBaseDir(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	proc := NewProcessor(f.cfg, f.in, f.out, nil,
		WithDecoder(bufferDecoder(audiotest.SilentBuffer(44100, 1, 10))))

	out := proc.Process(context.Background(), FileTask{Path: filepath.Join(t.TempDir(), "x.wav")})
	if !errors.Is(out.Err, ErrPath) || !errors.Is(out.Err, ErrFileProcessing) {
		t.Errorf("Process() error = %v, want ErrPath", out.Err)
	}
}
