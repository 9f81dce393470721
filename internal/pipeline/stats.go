// SPDX-License-Identifier: EPL-2.0

package pipeline

import "time"

// RunStats summarizes a finished batch.
type RunStats struct {
	Total     int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Stats counts outcomes.
func Stats(outcomes []Outcome, elapsed time.Duration) RunStats {
	s := RunStats{Total: len(outcomes), Elapsed: elapsed}
	for _, o := range outcomes {
		if o.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
