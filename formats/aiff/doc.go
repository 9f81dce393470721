// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the FORM container
// and read its sound data as integer PCM, which it scales to float32.
//
// # Supported Formats
//
// The decoder supports:
//   - Uncompressed AIFF at 8, 16, 24 or 32 bits
//   - Any channel count and sample rate the COMM chunk declares
//   - Readers that cannot seek, which are spooled into memory first
//
// # Decoding AIFF Files
//
// Decode wraps any io.Reader and returns an audio.Source. The pipeline
// drains it with audio.ReadAll:
//
//	f, err := os.Open("take.aiff")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//
//	buf, err := audio.ReadAll(src)
//
// # Output Format
//
// AIFF decoder output:
//   - Sample format: float32 in [-1.0, 1.0), the integer value divided by
//     2^(bits-1)
//   - Channels: as stored in the file
//   - Layout: interleaved frame-major
//   - Sample rate: the 80-bit extended rate from COMM, as an int
//
// 8-bit AIFF samples are signed, unlike 8-bit WAV, so they decode without
// an offset.
//
// # Error Handling
//
// The package defines three sentinel errors:
//   - ErrNotAiffFile: the FORM/AIFF header or COMM chunk is missing
//   - ErrUnsupportedBitDepth: the sample width is not 8, 16, 24 or 32
//   - ErrUnsupportedAiffLayout: the header carries no usable format
//
// Check them with errors.Is, since bit depth failures wrap the offending
// width:
//
//	_, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // skip the file
//	}
//
// # AIFF vs. WAV
//
// AIFF is close to WAV but:
//   - Samples are big-endian (WAV is little-endian)
//   - The sample rate is an 80-bit extended float (WAV uses a 32-bit int)
//   - Chunks are FORM/COMM/SSND instead of RIFF/fmt/data
//
// go-audio handles these differences, and the Source looks the same as
// one from the wav package.
//
// # Converting to WAV
//
//	buf, _ := audio.ReadAll(src)
//	subtype, err := wav.SubtypeFor(24)
//	if err != nil {
//	    return err
//	}
//	err = wav.WriteFile("take.wav", buf, subtype)
//
// # File Extensions
//
// Discovery picks up .aiff files. The decoder registry also maps .aif to
// this package, so DecodeFile works on both.
//
// # Limitations
//
// Note:
//   - Encoding is not supported (decoding only)
//   - Compressed AIFF-C payloads are not decoded
package aiff
