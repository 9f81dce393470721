// SPDX-License-Identifier: EPL-2.0

package audbatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/audbatch/audio"
	"github.com/ik5/audbatch/formats/aiff"
	"github.com/ik5/audbatch/formats/ffmpeg"
	"github.com/ik5/audbatch/formats/flac"
	"github.com/ik5/audbatch/formats/mp3"
	"github.com/ik5/audbatch/formats/vorbis"
	"github.com/ik5/audbatch/formats/wav"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyStream       = errors.New("decoded stream holds no samples")
)

// DefaultRegistry returns a registry with every decoder this module
// ships, keyed by file extension without the dot.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("flac", flac.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("m4a", ffmpeg.Decoder{})
	r.Register("wma", ffmpeg.Decoder{})

	return r
}

var defaultRegistry = sync.OnceValue(DefaultRegistry)

// DecodeFile decodes the whole file at path with the default registry.
// The returned buffer is frame-major at the file's native rate and
// channel count.
func DecodeFile(ctx context.Context, path string) (*audio.Buffer, error) {
	return DecodeFileWith(ctx, defaultRegistry(), path)
}

// DecodeFileWith decodes path with the decoder registered for its
// extension. Decoders implementing audio.FileDecoder are handed the path,
// all others an open file. A stream without a single sample is reported
// as ErrEmptyStream.
func DecodeFileWith(ctx context.Context, registry *audio.Registry, path string) (*audio.Buffer, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	dec, ok := registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	var src audio.Source
	if fd, ok := dec.(audio.FileDecoder); ok {
		s, err := fd.DecodeFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		src = s
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		defer f.Close()

		s, err := dec.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		src = s
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if len(buf.Samples) == 0 {
		return nil, ErrEmptyStream
	}

	buf.ToFrameMajor()

	return buf, nil
}
