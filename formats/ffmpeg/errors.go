// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import "errors"

var (
	ErrNoAudioStream = errors.New("no audio stream")
	ErrProbe         = errors.New("ffprobe failed")
	ErrDecode        = errors.New("ffmpeg decode failed")
)
