// SPDX-License-Identifier: EPL-2.0

// Package report shows batch progress and prints the final summary.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/ik5/audbatch/internal/pipeline"
)

// Reporter observes outcomes as they arrive. It is not safe for concurrent
// use; pipeline.Run calls Observe from a single goroutine.
type Reporter struct {
	bar    *progressbar.ProgressBar
	out    io.Writer
	errOut io.Writer
	log    *zap.Logger
}

// New returns a Reporter for total files. The progress bar and failures go
// to errOut, the success line to out.
func New(total int, out, errOut io.Writer, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(errOut),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionSetItsString("file"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(errOut)
		}),
	)

	return &Reporter{bar: bar, out: out, errOut: errOut, log: log}
}

// Observe advances the bar by one file.
func (r *Reporter) Observe(o pipeline.Outcome) {
	if !o.OK() {
		r.log.Debug("file failed", zap.String("file", o.Path), zap.Error(o.Err))
	}
	_ = r.bar.Add(1)
}

// Summary prints the success line, or every failure with its message.
func (r *Reporter) Summary(outcomes []pipeline.Outcome) {
	_ = r.bar.Finish()

	failed := pipeline.Failures(outcomes)
	if len(failed) == 0 {
		fmt.Fprintln(r.out, "\nAll files processed successfully!")
		return
	}

	fmt.Fprintf(r.errOut, "\nFinished with %d error(s):\n", len(failed))
	for _, o := range failed {
		fmt.Fprintf(r.errOut, "  - %s: %v\n", o.Path, o.Err)
	}
}
