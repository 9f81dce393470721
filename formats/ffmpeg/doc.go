// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg decodes audio containers that have no pure Go decoder,
// such as AAC in MP4 (.m4a) and Windows Media Audio (.wma), by running
// the ffmpeg and ffprobe binaries.
//
// ffprobe supplies the channel count and sample rate of the first audio
// stream; ffmpeg then streams that stream to stdout as 32-bit float
// little-endian PCM, with no resampling or remixing:
//
//	src, err := ffmpeg.Decoder{}.DecodeFile(ctx, "talk.m4a")
//	if err != nil {
//	    // ffprobe/ffmpeg missing or the file is unreadable
//	}
//	defer src.Close()
//
// Decoder implements both audio.Decoder and audio.FileDecoder; the
// reader based Decode spools its input to a temporary file first.
package ffmpeg
