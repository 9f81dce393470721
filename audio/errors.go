// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize     = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate  = errors.New("sample rate must be positive")
	ErrInvalidChannels    = errors.New("channel count must be positive")
	ErrNotFrameMajor      = errors.New("buffer is not in frame-major layout")
	ErrFrameRange         = errors.New("frame range out of bounds")
	ErrInvalidThreshold   = errors.New("silence threshold must be a positive dB value")
	ErrNoProgress         = errors.New("source returned no samples repeatedly")
	ErrRaggedPlanarSource = errors.New("channel blocks have different lengths")
)
