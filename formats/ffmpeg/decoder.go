// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/ik5/audbatch/audio"
)

const bytesPerSample = 4

// Decoder hands containers the pure Go decoders cannot read (AAC in MP4,
// WMA) to ffmpeg, which streams them back as native-rate float32 PCM.
// The zero value looks both binaries up on PATH.
type Decoder struct {
	FFmpegPath  string
	FFprobePath string
}

func (d Decoder) ffmpeg() string {
	if d.FFmpegPath != "" {
		return d.FFmpegPath
	}
	return "ffmpeg"
}

func (d Decoder) ffprobe() string {
	if d.FFprobePath != "" {
		return d.FFprobePath
	}
	return "ffprobe"
}

// Available reports whether both ffmpeg and ffprobe can be found.
func (d Decoder) Available() bool {
	if _, err := exec.LookPath(d.ffmpeg()); err != nil {
		return false
	}
	_, err := exec.LookPath(d.ffprobe())
	return err == nil
}

// DecodeFile probes path for its first audio stream and starts ffmpeg
// decoding it. The returned source must be closed to reap the process.
func (d Decoder) DecodeFile(ctx context.Context, path string) (audio.Source, error) {
	info, err := Probe(ctx, d.ffprobe(), path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, d.ffmpeg(),
		"-nostdin",
		"-v", "error",
		"-i", path,
		"-map", "0:a:0",
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"pipe:1",
	)

	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrDecode, d.ffmpeg(), err)
	}

	return &source{
		cmd:        cmd,
		stdout:     stdout,
		stderr:     stderr,
		sampleRate: info.SampleRate,
		channels:   info.Channels,
	}, nil
}

// Decode spools r to a temporary file so ffprobe and ffmpeg can seek in
// it. The file is removed when the source is closed.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	tmp, err := os.CreateTemp("", "audbatch-ffmpeg-*")
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	_, err = io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w", err)
	}

	src, err := d.DecodeFile(context.Background(), tmp.Name())
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, err
	}

	s := src.(*source)
	s.spool = tmp.Name()

	return s, nil
}

type source struct {
	cmd        *exec.Cmd
	stdout     io.ReadCloser
	stderr     *bytes.Buffer
	sampleRate int
	channels   int
	buf        []byte
	done       bool
	waited     bool
	spool      string
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

func (s *source) wait() error {
	if s.waited {
		return nil
	}
	s.waited = true

	if err := s.cmd.Wait(); err != nil {
		msg := strings.TrimSpace(s.stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %v: %s", ErrDecode, err, msg)
		}
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.stdout, s.buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		s.done = true
		if werr := s.wait(); werr != nil {
			return 0, werr
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	samples := decodeF32LE(dst, s.buf[:n])

	if s.done {
		return samples, io.EOF
	}

	return samples, nil
}

// Close stops ffmpeg if it is still running and removes any spooled input.
func (s *source) Close() error {
	defer func() {
		if s.spool != "" {
			_ = os.Remove(s.spool)
			s.spool = ""
		}
	}()

	if s.waited {
		return nil
	}

	_ = s.stdout.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.waited = true
	_ = s.cmd.Wait()

	return nil
}

// decodeF32LE converts little-endian float32 bytes into dst and returns
// the number of whole samples converted.
func decodeF32LE(dst []float32, data []byte) int {
	n := min(len(data)/bytesPerSample, len(dst))
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[bytesPerSample*i:]))
	}

	return n
}
