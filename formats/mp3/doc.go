// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 and
// MPEG-2 Layer III streams. It turns the codec's 16-bit PCM output into
// an audio.Source of float32 samples.
//
// # Supported Streams
//
// The decoder supports:
//   - MPEG-1 and MPEG-2 Layer III
//   - Constant and variable bitrates
//   - Mono and stereo encodings
//
// ID3 tags in front of the first frame are skipped by go-mp3.
//
// # Decoding MP3 Files
//
// Decode wraps any io.Reader. The pipeline drains the Source into a whole
// Buffer with audio.ReadAll:
//
//	f, err := os.Open("song.mp3")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	    return err
//	}
//
//	buf, err := audio.ReadAll(src)
//	if err != nil {
//	    return err
//	}
//
// Streaming readers can call ReadSamples directly instead. Each call fills
// dst completely until the stream runs out, then returns io.EOF together
// with the last samples.
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32 in [-1.0, 1.0), scaled from int16 by 1/32768
//   - Channels: always 2, because go-mp3 duplicates mono streams
//   - Layout: interleaved frame-major [L0, R0, L1, R1, ...]
//   - Sample rate: whatever the stream declares, commonly 44.1 or 48 kHz
//
// The pipeline keeps the two channels; a mono MP3 comes out as a stereo
// WAV with identical channels.
//
// # Converting to WAV
//
// A full conversion resamples the decoded Buffer and encodes it with the
// wav package:
//
//	buf, _ := audio.ReadAll(src)
//	out, err := audio.Resample(buf, 44100)
//	if err != nil {
//	    return err
//	}
//	err = wav.WriteFile("song.wav", out, wav.PCM16)
//
// The root audbatch.DecodeFile does the open, lookup and drain steps in one
// call, keyed on the .mp3 extension.
//
// # Errors
//
// Input that go-mp3 cannot find a frame header in is reported as
// ErrNotMP3File, wrapping the codec's own message. Errors hit while
// reading later frames are returned from ReadSamples as is.
//
// # Limitations
//
// Note:
//   - Encoding is not supported (decoding only)
//   - Output is always stereo
//   - Gapless metadata (LAME encoder delay) is not applied, so a few
//     milliseconds of leading silence may remain
package mp3
