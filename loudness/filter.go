// SPDX-License-Identifier: EPL-2.0

package loudness

import "math"

// biquad is a second order IIR section with coefficients normalized by a0.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// highShelf designs the first K-weighting stage, modelling the acoustic
// effect of the head.
func highShelf(sampleRate, gainDB, q, fc float64) biquad {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * fc / sampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)
	sqrtA := math.Sqrt(a)

	b0 := a * ((a + 1) + (a-1)*cosw + 2*sqrtA*alpha)
	b1 := -2 * a * ((a - 1) + (a+1)*cosw)
	b2 := a * ((a + 1) + (a-1)*cosw - 2*sqrtA*alpha)
	a0 := (a + 1) - (a-1)*cosw + 2*sqrtA*alpha
	a1 := 2 * ((a - 1) - (a+1)*cosw)
	a2 := (a + 1) - (a-1)*cosw - 2*sqrtA*alpha

	return biquad{b0: b0 / a0, b1: b1 / a0, b2: b2 / a0, a1: a1 / a0, a2: a2 / a0}
}

// highPass designs the second K-weighting stage (the RLB curve).
func highPass(sampleRate, q, fc float64) biquad {
	w0 := 2 * math.Pi * fc / sampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosw := math.Cos(w0)

	b0 := (1 + cosw) / 2
	b1 := -(1 + cosw)
	b2 := (1 + cosw) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw
	a2 := 1 - alpha

	return biquad{b0: b0 / a0, b1: b1 / a0, b2: b2 / a0, a1: a1 / a0, a2: a2 / a0}
}

// apply filters x in place, starting from a zero state (direct form I).
func (f biquad) apply(x []float64) {
	var x1, x2, y1, y2 float64
	for i, v := range x {
		y := f.b0*v + f.b1*x1 + f.b2*x2 - f.a1*y1 - f.a2*y2
		x2, x1 = x1, v
		y2, y1 = y1, y
		x[i] = y
	}
}
