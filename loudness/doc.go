// SPDX-License-Identifier: EPL-2.0

// Package loudness measures integrated programme loudness following
// ITU-R BS.1770-4.
//
// The signal is K-weighted (a high shelf around 1.5 kHz followed by a high
// pass at 38 Hz, designed for the buffer's own sample rate), cut into
// 400 ms blocks overlapping by 75%, and gated twice: blocks under -70 LUFS
// are dropped, then blocks more than 10 LU under the mean of the rest.
//
//	lufs, err := loudness.NewMeter().Integrated(buf)
//	if errors.Is(err, loudness.ErrUndefined) {
//	    // silent or shorter than 400 ms, leave the level alone
//	}
//	buf.Gain(float32(loudness.GainFor(lufs, -14)))
//
// Surround channels 3 and 4 are weighted by 1.41 (+1.5 dB); all others
// by 1.
package loudness
