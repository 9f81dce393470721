// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"math"

	"github.com/ik5/audbatch/audio"
)

const (
	blockSeconds  = 0.4
	blockOverlap  = 0.75
	absoluteGate  = -70.0
	relativeGate  = -10.0
	loudnessShift = -0.691

	shelfGainDB = 4.0
	shelfFc     = 1500.0
	passQ       = 0.5
	passFc      = 38.0
)

var shelfQ = 1 / math.Sqrt2

// Meter measures the integrated loudness of a whole buffer in LUFS.
type Meter interface {
	Integrated(buf *audio.Buffer) (float64, error)
}

// BS1770 is an ITU-R BS.1770-4 integrated loudness meter: K-weighting,
// 400 ms blocks with 75% overlap, an absolute gate at -70 LUFS and a
// relative gate 10 LU below the ungated level. It holds no state and is
// safe for concurrent use.
type BS1770 struct{}

func NewMeter() BS1770 { return BS1770{} }

// channelWeight is G_i from BS.1770. Channels 3 and 4 are the surrounds
// of a 5.x layout.
func channelWeight(ch int) float64 {
	if ch == 3 || ch == 4 {
		return 1.41
	}
	return 1.0
}

// Integrated returns the gated loudness of buf. It reports ErrUndefined
// for input shorter than one block and for input where no block passes
// the gates, such as digital silence.
func (BS1770) Integrated(buf *audio.Buffer) (float64, error) {
	if buf.Layout != audio.FrameMajor || buf.SampleRate <= 0 || buf.Channels <= 0 {
		return 0, ErrInvalidBuffer
	}

	rate := float64(buf.SampleRate)
	frames := buf.Frames()
	duration := float64(frames) / rate
	if duration < blockSeconds {
		return 0, ErrUndefined
	}

	step := 1 - blockOverlap
	numBlocks := int(math.RoundToEven((duration-blockSeconds)/(blockSeconds*step))) + 1

	// energy[c][j] is the mean square of K-weighted channel c over block j.
	energy := make([][]float64, buf.Channels)
	shelf := highShelf(rate, shelfGainDB, shelfQ, shelfFc)
	pass := highPass(rate, passQ, passFc)
	x := make([]float64, frames)
	prefix := make([]float64, frames+1)

	for c := range buf.Channels {
		for f := range frames {
			x[f] = float64(buf.Samples[f*buf.Channels+c])
		}
		shelf.apply(x)
		pass.apply(x)

		for f, v := range x {
			prefix[f+1] = prefix[f] + v*v
		}

		energy[c] = make([]float64, numBlocks)
		for j := range numBlocks {
			lo := min(int(blockSeconds*(float64(j)*step)*rate), frames)
			hi := min(int(blockSeconds*(float64(j)*step+1)*rate), frames)
			energy[c][j] = (prefix[hi] - prefix[lo]) / (blockSeconds * rate)
		}
	}

	blockLoudness := make([]float64, numBlocks)
	for j := range numBlocks {
		var sum float64
		for c := range buf.Channels {
			sum += channelWeight(c) * energy[c][j]
		}
		blockLoudness[j] = loudnessShift + 10*math.Log10(sum)
	}

	gated := func(threshold float64, strict bool) float64 {
		var sum float64
		for c := range buf.Channels {
			var total float64
			n := 0
			for j, l := range blockLoudness {
				keep := l >= absoluteGate
				if strict {
					keep = l > absoluteGate && l > threshold
				}
				if !keep {
					continue
				}
				total += energy[c][j]
				n++
			}
			if n > 0 {
				sum += channelWeight(c) * total / float64(n)
			}
		}
		return sum
	}

	ungated := gated(absoluteGate, false)
	if ungated <= 0 {
		return 0, ErrUndefined
	}
	threshold := loudnessShift + 10*math.Log10(ungated) + relativeGate

	final := gated(threshold, true)
	if final <= 0 {
		return 0, ErrUndefined
	}

	lufs := loudnessShift + 10*math.Log10(final)
	if math.IsNaN(lufs) || math.IsInf(lufs, 0) {
		return 0, ErrUndefined
	}

	return lufs, nil
}

// GainFor returns the linear gain that moves measured LUFS to target.
func GainFor(measured, target float64) float64 {
	return math.Pow(10, (target-measured)/20)
}
