// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions are built on github.com/go-audio/wav, so RIFF chunk
// parsing, padding and header sizes follow that library.
//
// # Supported Formats
//
// Decoding:
//   - Integer PCM at 16, 24 or 32 bits
//   - WAVE_FORMAT_EXTENSIBLE headers carrying integer PCM
//   - Any channel count and sample rate
//
// Encoding:
//   - PCM16, PCM24 and PCM32 subtypes
//   - Any channel count and sample rate of the Buffer
//
// # Decoding WAV Files
//
// Decoder returns an audio.Source; audio.ReadAll turns it into a Buffer:
//
//	f, err := os.Open("audio.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are returned as float32 values in [-1.0, 1.0), the integer value
// divided by 2^(bits-1). Readers that cannot seek are spooled into memory
// first, because go-audio seeks between chunks.
//
// # Writing WAV Files
//
// Write encodes a frame-major audio.Buffer with one of the PCM subtypes.
// SubtypeFor maps a bit depth from configuration to a Subtype:
//
//	subtype, err := wav.SubtypeFor(24)
//	if err != nil {
//	    // errors.Is(err, wav.ErrUnsupportedSubtype)
//	    return err
//	}
//	err = wav.WriteFile("out.wav", buf, subtype)
//
// Samples are clamped to [-1, 1] and scaled by the largest positive value
// of the subtype (32767 for PCM_16), then encoded in frame-aligned chunks.
// WriteFile writes through a temporary file in the destination directory
// and renames it into place, so readers never observe a partially written
// file and an output path may even equal the input path.
//
// Write needs an io.WriteSeeker because the RIFF sizes are patched after
// the data is written.
//
// # Error Handling
//
// The package defines these sentinel errors:
//   - ErrNotWavFile: no RIFF/WAVE header, or the fmt chunk is unreadable
//   - ErrUnsupportedWavFormat: the format tag is not integer PCM
//   - ErrUnsupportedBitDepth: 8-bit and other widths on decode
//   - ErrUnsupportedSubtype: a bit depth other than 16, 24 or 32 on encode
//
// Most are wrapped with detail, so compare with errors.Is:
//
//	_, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrUnsupportedWavFormat) {
//	    // float WAV, hand it to another decoder
//	}
//
// 8-bit WAV is rejected because go-audio reports it as unsigned values
// without saying so.
//
// # File Format
//
// A written file holds:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): format tag, channels, rate, block align, bits
//   - data chunk: interleaved little-endian samples
//
// An empty Buffer produces a valid 44-byte file with no samples.
package wav
