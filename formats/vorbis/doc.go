// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder, to
// read Vorbis audio carried in an Ogg container.
//
// # Supported Streams
//
// The decoder supports:
//   - Ogg Vorbis (.ogg files)
//   - Variable and managed bitrates
//   - Any channel count the stream declares
//   - Any sample rate the stream declares
//
// Ogg files carrying Opus or FLAC payloads are not handled here.
//
// # Decoding Vorbis Files
//
// Decode wraps any io.Reader and returns an audio.Source. The pipeline
// drains it into a Buffer:
//
//	f, err := os.Open("track.ogg")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, vorbis.ErrNotVorbisFile)
//	    return err
//	}
//
//	buf, err := audio.ReadAll(src)
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float32, as produced by the codec, nominally in
//     [-1.0, 1.0]
//   - Channels: as declared by the identification header
//   - Sample rate: as declared by the identification header
//
// The codec already works in floating point, so samples are handed through
// without any integer round trip. Lossy encoding can overshoot full scale
// by a small amount; the WAV encoder clamps on output.
//
// # Channel Layout
//
// Samples are interleaved frame-major:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Files with more than two channels follow the Vorbis channel order
// (for 5.1: front left, center, front right, rear left, rear right, LFE).
// The pipeline keeps that order unchanged.
//
// # Resampling and Writing
//
// Vorbis files are often 48 kHz. Converting to a 44.1 kHz, 24-bit WAV:
//
//	buf, _ := audio.ReadAll(src)
//	out, err := audio.Resample(buf, 44100)
//	if err != nil {
//	    return err
//	}
//	err = wav.WriteFile("track.wav", out, wav.PCM24)
//
// # Errors
//
// Input without a valid Vorbis identification header is reported as
// ErrNotVorbisFile, wrapping the codec's message. Corruption found later
// in the stream comes back from ReadSamples.
//
// # Limitations
//
// Note:
//   - Encoding is not supported (decoding only)
//   - Comment headers (title, artist) are not exposed
package vorbis
