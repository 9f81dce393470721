// SPDX-License-Identifier: EPL-2.0

package loudness

import "errors"

var (
	// ErrUndefined is returned when loudness cannot be measured: the input
	// is shorter than one gating block or no block passes the gates.
	ErrUndefined = errors.New("integrated loudness is undefined")

	ErrInvalidBuffer = errors.New("buffer must be frame-major with a positive rate and channel count")
)
