// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers and DSP stages used by the
// batch pipeline.
//
// This package contains the core building blocks:
//   - Source interface for streaming decoder output
//   - Buffer, a fully decoded block of samples with its rate and layout
//   - Resampler and Resample for sample rate conversion
//   - TrimSilence for cutting quiet lead-in and tail
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of decoding:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders return a Source. ReadAll drains one into a Buffer:
//
//	buf, err := audio.ReadAll(src)
//
// Decoders whose codec hands out whole channel blocks (FLAC) implement
// PlanarSource as well; ReadAll then returns a ChannelMajor buffer and the
// caller transposes it with Buffer.ToFrameMajor.
//
// # Resampling
//
// Resample changes the sample rate of a Buffer. Each channel goes through
// a polyphase engine from github.com/tphakala/go-audio-resampler at its
// high quality preset, so tones above the new Nyquist frequency are
// filtered out instead of folding back:
//
//	out, err := audio.Resample(buf, 44100)
//
// A buffer already at the target rate is returned untouched. NewResampler
// does the same conversion as a streaming Source.
//
// # Trimming
//
// TrimSilence measures RMS over 100ms windows moved in 25ms hops and cuts
// everything before the first and after the last window louder than the
// threshold (in dB below full scale):
//
//	err := audio.TrimSilence(buf, 60)
//
// A buffer that is silent throughout becomes empty; this is not an error.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("WAV")
//
// Keys are case-insensitive. Decoders that must see the file path (for
// example ones driving an external binary) implement FileDecoder.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors
// indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
