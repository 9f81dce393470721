// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Resample converts a frame-major buffer to targetRate with the
// Resampler and returns the result as a new Buffer. The conversion uses a
// fixed high quality preset (about 126 dB stopband) so content above the
// new Nyquist frequency is rejected rather than folded back.
//
// When the buffer is already at targetRate it is returned as is, so the
// samples stay bit-identical. An empty buffer only has its rate relabelled.
//
// Example:
//
//	buf, _ := audio.ReadAll(src)
//	out, err := audio.Resample(buf, 44100)
//	if err != nil {
//	    return err
//	}
//	// out.SampleRate == 44100
func Resample(buf *Buffer, targetRate int) (*Buffer, error) {
	if targetRate <= 0 || buf.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if buf.SampleRate == targetRate {
		return buf, nil
	}
	if buf.Layout != FrameMajor {
		return nil, ErrNotFrameMajor
	}
	if buf.Channels <= 0 {
		return nil, ErrInvalidChannels
	}

	if buf.Frames() == 0 {
		return NewBuffer(targetRate, buf.Channels, nil), nil
	}

	resampler, err := NewResampler(buf.Source(), targetRate)
	if err != nil {
		return nil, err
	}

	out, err := ReadAll(resampler)
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w", buf.SampleRate, targetRate, err)
	}

	return out, nil
}
