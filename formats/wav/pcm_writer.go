// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/ik5/audbatch/audio"
	"github.com/ik5/audbatch/utils"
)

// Subtype is the integer PCM encoding used for an output file.
type Subtype int

const (
	PCM16 Subtype = 16
	PCM24 Subtype = 24
	PCM32 Subtype = 32
)

// writeChunkSize is the approximate number of samples converted and
// handed to the encoder per call.
const writeChunkSize = 8192

// SubtypeFor maps a bit depth to its PCM subtype.
func SubtypeFor(bitDepth int) (Subtype, error) {
	switch bitDepth {
	case 16:
		return PCM16, nil
	case 24:
		return PCM24, nil
	case 32:
		return PCM32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedSubtype, bitDepth)
	}
}

func (s Subtype) BitDepth() int { return int(s) }

func (s Subtype) String() string {
	return fmt.Sprintf("PCM_%d", int(s))
}

func (s Subtype) quantize(v float32) int {
	switch s {
	case PCM24:
		return int(utils.Float32ToInt24(v))
	case PCM32:
		return int(utils.Float32ToInt32(v))
	default:
		return int(utils.Float32ToInt16(v))
	}
}

// Write encodes a frame-major buffer as a PCM WAV stream. Samples are
// clamped to [-1, 1] before quantization.
func Write(w io.WriteSeeker, buf *audio.Buffer, subtype Subtype) error {
	if _, err := SubtypeFor(int(subtype)); err != nil {
		return err
	}
	if buf.Layout != audio.FrameMajor {
		return audio.ErrNotFrameMajor
	}
	if buf.SampleRate <= 0 {
		return audio.ErrInvalidSampleRate
	}
	if buf.Channels <= 0 {
		return audio.ErrInvalidChannels
	}

	enc := gowav.NewEncoder(w, buf.SampleRate, subtype.BitDepth(), buf.Channels, formatPCM)

	// The encoder only writes whole frames.
	step := max(writeChunkSize/buf.Channels, 1) * buf.Channels

	chunk := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, 0, min(step, len(buf.Samples))),
		SourceBitDepth: subtype.BitDepth(),
	}

	// An empty buffer still gets a header.
	if len(buf.Samples) == 0 {
		if err := enc.Write(chunk); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	for start := 0; start < len(buf.Samples); start += step {
		end := min(start+step, len(buf.Samples))
		chunk.Data = chunk.Data[:0]
		for _, v := range buf.Samples[start:end] {
			chunk.Data = append(chunk.Data, subtype.quantize(v))
		}

		if err := enc.Write(chunk); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteFile writes buf to path through a temporary file in the same
// directory, renamed into place once complete. A failed write leaves no
// partial file behind.
func WriteFile(path string, buf *audio.Buffer, subtype Subtype) (err error) {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = Write(f, buf, subtype); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
