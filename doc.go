// SPDX-License-Identifier: EPL-2.0

// Package audbatch decodes audio files of many formats into one in-memory
// representation, ready for the conversion pipeline behind the audbatch
// command.
//
// # Supported Formats
//
// DefaultRegistry maps file extensions to decoders:
//   - .wav: integer PCM at 16, 24 or 32 bits via formats/wav
//   - .flac via formats/flac
//   - .mp3 via formats/mp3
//   - .ogg (Vorbis) via formats/vorbis
//   - .aiff and .aif via formats/aiff
//   - .m4a and .wma via formats/ffmpeg, which needs ffmpeg and ffprobe
//     on PATH
//
// # Quick Start
//
//	buf, err := audbatch.DecodeFile(ctx, "take.flac")
//	if err != nil {
//	    // unsupported extension, unreadable or empty file
//	}
//	buf, err = audio.Resample(buf, 44100)
//	err = wav.WriteFile("take.wav", buf, wav.PCM24)
//
// DecodeFile always returns a frame-major buffer at the file's own sample
// rate and channel count. Planar decoders are transposed before return.
//
// # Building Blocks
//
// The subpackages can be used on their own:
//   - audio: Buffer, Source, resampling and silence trimming
//   - loudness: ITU-R BS.1770 integrated loudness
//   - formats/*: decoders, and the PCM WAV writer
package audbatch
