// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override defaults. Command line flags win
// over both.
const (
	EnvSampleRate    = "AUDBATCH_SAMPLE_RATE"
	EnvBitDepth      = "AUDBATCH_BIT_DEPTH"
	EnvJobs          = "AUDBATCH_JOBS"
	EnvTargetLUFS    = "AUDBATCH_TARGET_LUFS"
	EnvSilenceThresh = "AUDBATCH_SILENCE_THRESH"
	EnvOutputDir     = "AUDBATCH_OUTPUT_DIR"
	EnvDebugLogFile  = "AUDBATCH_DEBUG_LOG"
)

// LoadDotEnv loads the given .env files (or ./.env) into the process
// environment. Variables that are already set are kept; missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment through lookup, which is
// os.LookupEnv outside tests. Blank values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvSampleRate, &c.SampleRate},
		{EnvBitDepth, &c.BitDepth},
		{EnvJobs, &c.Jobs},
	}
	for _, e := range ints {
		v, ok := get(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrConfiguration, e.key, v)
		}
		*e.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvTargetLUFS, &c.TargetLUFS},
		{EnvSilenceThresh, &c.SilenceThresholdDB},
	}
	for _, e := range floats {
		v, ok := get(e.key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrConfiguration, e.key, v)
		}
		*e.dst = f
	}

	if v, ok := get(EnvOutputDir); ok {
		c.OutputDir = v
	}
	if v, ok := get(EnvDebugLogFile); ok {
		c.DebugLogFile = v
	}

	return nil
}
