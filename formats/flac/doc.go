// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// FLAC stores each channel of a frame as its own subframe, so the source
// also implements audio.PlanarSource: audio.ReadAll returns a
// channel-major buffer that the caller transposes with
// Buffer.ToFrameMajor. ReadSamples interleaves frame by frame for
// streaming consumers.
//
// Any bit depth from 4 to 32 is scaled to float32 in [-1.0, 1.0).
package flac
