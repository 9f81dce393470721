// SPDX-License-Identifier: EPL-2.0

package pipeline

// Outcome is the result of processing one file. Err is nil on success.
type Outcome struct {
	Path string
	Err  error
}

// OK reports whether the file was processed successfully.
func (o Outcome) OK() bool { return o.Err == nil }

// Failures returns the failed outcomes in the order given.
func Failures(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}
