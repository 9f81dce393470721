// SPDX-License-Identifier: EPL-2.0

package utils

// Full-scale magnitudes for signed PCM of each supported width.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	// Use 32767 for positive max to avoid overflow
	return int16(Clamp(x) * maxInt16)
}

// Float32ToInt24 clamps x to [-1, 1] and scales it to a 24-bit PCM value
// held in the low 24 bits of an int32.
func Float32ToInt24(x float32) int32 {
	return int32(float64(Clamp(x)) * maxInt24)
}

// Float32ToInt32 clamps x to [-1, 1] and scales it to 32-bit PCM.
// The multiplication is done in float64 since float32 cannot hold
// every int32 magnitude.
func Float32ToInt32(x float32) int32 {
	return int32(float64(Clamp(x)) * maxInt32)
}

// IntToFloat32 converts a signed PCM value of the given bit depth into a
// float in [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 24:
		return float32(float64(v) / 8388608.0)
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}
