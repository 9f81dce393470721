// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to the nominal float sample range [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}

	return x
}
