// SPDX-License-Identifier: EPL-2.0

// Package pipeline discovers input files and runs the per-file transform
// over them, serially or on a bounded worker pool.
//
// A batch goes through three steps:
//
//	disc, err := pipeline.Discover(cfg.InputPath, cfg.Recursive)
//	proc := pipeline.NewProcessor(cfg, disc.BaseDir, outDir, logger)
//	outcomes := pipeline.Run(ctx, cfg, disc.Tasks, proc, reporter)
//
// Each file is decoded, resampled to the configured rate, optionally
// trimmed and loudness normalized, then written as PCM WAV at the same
// relative path under the output directory. A file that fails produces a
// failed Outcome; the rest of the batch carries on.
package pipeline
