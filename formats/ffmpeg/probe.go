// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// StreamInfo describes the first audio stream of a file.
type StreamInfo struct {
	Codec      string
	SampleRate int
	Channels   int
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Channels   int    `json:"channels"`
	SampleRate string `json:"sample_rate"`
}

// Probe runs ffprobe against path and returns its first audio stream.
func Probe(ctx context.Context, ffprobe, path string) (StreamInfo, error) {
	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: %q: %v", ErrProbe, path, err)
	}

	return ParseProbe(out)
}

// ParseProbe extracts the first audio stream from ffprobe JSON output.
// Exported for testing without a real ffprobe binary.
func ParseProbe(data []byte) (StreamInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return StreamInfo{}, fmt.Errorf("%w: parse JSON: %v", ErrProbe, err)
	}

	for _, s := range raw.Streams {
		if s.CodecType != "audio" {
			continue
		}

		// ffprobe reports the sample rate as a string.
		rate, _ := strconv.Atoi(strings.TrimSpace(s.SampleRate))
		if rate <= 0 || s.Channels <= 0 {
			return StreamInfo{}, fmt.Errorf("%w: stream %q reports %d Hz, %d channels",
				ErrNoAudioStream, s.CodecName, rate, s.Channels)
		}

		return StreamInfo{Codec: s.CodecName, SampleRate: rate, Channels: s.Channels}, nil
	}

	return StreamInfo{}, ErrNoAudioStream
}
