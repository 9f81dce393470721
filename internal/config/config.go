// SPDX-License-Identifier: EPL-2.0

// Package config holds the run configuration: defaults, environment
// overrides and validation. A Config is built and validated once, then
// only read.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ErrConfiguration marks every invalid setting. The CLI exits with status 1
// on it.
var ErrConfiguration = errors.New("configuration error")

// DefaultOutputDirName is created inside the input base directory when no
// output directory is given.
const DefaultOutputDirName = "processed_audio"

// DefaultDebugLogFile receives the JSON debug log when Debug is set.
const DefaultDebugLogFile = "audbatch.debug.log"

// Config holds all runtime settings.
type Config struct {
	// Paths.
	InputPath string // File or directory; must exist.
	OutputDir string // Default: <input base dir>/processed_audio.

	// Output format.
	SampleRate int // Default: 44100 Hz.
	BitDepth   int // 16, 24 or 32. Default: 16.

	// Silence trimming.
	TrimSilence        bool
	SilenceThresholdDB float64 // dB below full scale. Default: 60.

	// Loudness normalization.
	Normalize  bool
	TargetLUFS float64 // Default: -12.

	// Execution.
	Jobs      int  // Requested workers. Default: 1.
	Recursive bool // Default: true.

	// Logging.
	Debug        bool
	DebugLogFile string // Default: audbatch.debug.log.
}

// DefaultConfig returns a Config with every default set and no paths.
func DefaultConfig() Config {
	return Config{
		SampleRate:         44100,
		BitDepth:           16,
		SilenceThresholdDB: 60.0,
		TargetLUFS:         -12.0,
		Jobs:               1,
		Recursive:          true,
		DebugLogFile:       DefaultDebugLogFile,
	}
}

// Validate checks every invariant and that the input path exists.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input path is required", ErrConfiguration)
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("%w: input path %q does not exist", ErrConfiguration, c.InputPath)
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrConfiguration, c.SampleRate)
	}

	switch c.BitDepth {
	case 16, 24, 32:
		// valid
	default:
		return fmt.Errorf("%w: bit depth must be 16, 24 or 32, got %d", ErrConfiguration, c.BitDepth)
	}

	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrConfiguration, c.Jobs)
	}

	if !(c.SilenceThresholdDB > 0) || math.IsInf(c.SilenceThresholdDB, 0) {
		return fmt.Errorf("%w: silence threshold must be a positive number of dB, got %v",
			ErrConfiguration, c.SilenceThresholdDB)
	}

	if math.IsNaN(c.TargetLUFS) || math.IsInf(c.TargetLUFS, 0) {
		return fmt.Errorf("%w: target loudness must be finite, got %v", ErrConfiguration, c.TargetLUFS)
	}

	return nil
}

// EffectiveJobs caps the requested worker count at numCPU.
func (c *Config) EffectiveJobs(numCPU int) int {
	return max(1, min(c.Jobs, numCPU))
}

// ResolveOutputDir returns OutputDir, or processed_audio inside baseDir
// when none was given.
func (c *Config) ResolveOutputDir(baseDir string) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(baseDir, DefaultOutputDirName)
}
