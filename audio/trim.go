// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Analysis window used to find the audible region: 100ms frames moved in
// quarter-frame hops, so edges resolve to 25ms or better.
const (
	trimFrameSeconds = 0.1
	trimHopDivisor   = 4
)

// TrimWindow returns the analysis frame and hop length in samples for a
// given sample rate.
func TrimWindow(sampleRate int) (frameLength, hopLength int) {
	frameLength = max(int(trimFrameSeconds*float64(sampleRate)), 1)
	hopLength = max(frameLength/trimHopDivisor, 1)

	return frameLength, hopLength
}

// AudibleRange returns the frame range [start, end) between the first and
// the last analysis window whose RMS level, taken across all channels, is
// above -thresholdDB dBFS. For a buffer that is silent throughout it
// returns an empty range.
func AudibleRange(buf *Buffer, thresholdDB float64) (start, end int, err error) {
	if thresholdDB <= 0 || math.IsNaN(thresholdDB) || math.IsInf(thresholdDB, 0) {
		return 0, 0, ErrInvalidThreshold
	}
	if buf.Layout != FrameMajor {
		return 0, 0, ErrNotFrameMajor
	}

	frames := buf.Frames()
	if frames == 0 {
		return 0, 0, nil
	}

	// energy[i] is the sum of squares over frames [0, i) across channels.
	energy := make([]float64, frames+1)
	for f := range frames {
		sum := 0.0
		for _, v := range buf.Samples[f*buf.Channels : (f+1)*buf.Channels] {
			sum += float64(v) * float64(v)
		}
		energy[f+1] = energy[f] + sum
	}

	frameLength, hopLength := TrimWindow(buf.SampleRate)
	// Mean square at the threshold: (10^(-dB/20))^2.
	floor := math.Pow(10, -thresholdDB/10)

	first, last := -1, -1
	for s := 0; s < frames; s += hopLength {
		e := min(s+frameLength, frames)
		ms := (energy[e] - energy[s]) / float64((e-s)*buf.Channels)
		if ms > floor {
			if first < 0 {
				first = s
			}
			last = e
		}
	}

	if first < 0 {
		return 0, 0, nil
	}

	return first, last, nil
}

// TrimSilence narrows buf in place to its audible range. A buffer that is
// silent throughout ends up with zero frames; that is not an error.
func TrimSilence(buf *Buffer, thresholdDB float64) error {
	start, end, err := AudibleRange(buf, thresholdDB)
	if err != nil {
		return err
	}

	return buf.Slice(start, end)
}
