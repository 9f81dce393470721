// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ik5/audbatch/internal/config"
	"github.com/ik5/audbatch/internal/logging"
	"github.com/ik5/audbatch/internal/pipeline"
	"github.com/ik5/audbatch/internal/report"
)

// Execute runs the command line and exits with its status.
func Execute() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

// execute parses args and runs the batch, returning the process exit
// status. Environment overrides come from lookup and lose to flags.
func execute(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	lookup func(string) (string, bool),
) int {
	if args == nil {
		args = []string{}
	}

	cfg := config.DefaultConfig()
	envErr := cfg.ApplyEnv(lookup)

	var noRecursive bool
	status := 0

	cmd := &cobra.Command{
		Use:           "audbatch <input_path>",
		Short:         "Batch convert / trim / normalize audio files.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}

			cfg.InputPath = args[0]
			cfg.Recursive = !noRecursive
			if err := cfg.Validate(); err != nil {
				return err
			}

			status = run(cmd.Context(), cfg, stdout, stderr)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir,
		"output directory (default <input dir>/processed_audio)")
	flags.IntVarP(&cfg.SampleRate, "sample-rate", "r", cfg.SampleRate, "target sample rate")
	flags.IntVarP(&cfg.BitDepth, "bit-depth", "b", cfg.BitDepth, "target bit depth: 16, 24 or 32")
	flags.BoolVarP(&cfg.TrimSilence, "trim-silence", "t", false, "trim leading and trailing silence")
	flags.BoolVarP(&cfg.Normalize, "normalize", "n", false, "normalize loudness to --target-lufs")
	flags.Float64Var(&cfg.TargetLUFS, "target-lufs", cfg.TargetLUFS, "target integrated loudness in LUFS")
	flags.Float64Var(&cfg.SilenceThresholdDB, "silence-thresh", cfg.SilenceThresholdDB,
		"silence threshold in dB below full scale")
	flags.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "parallel workers, capped at the CPU count")
	flags.BoolVar(&cfg.Debug, "debug", false, "write a debug log to "+cfg.DebugLogFile)
	flags.BoolVar(&noRecursive, "no-recursive", false, "only process the top level of the input directory")

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	return status
}

// run executes a validated configuration. Per-file failures are reported
// but still exit with 0.
func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) int {
	// The logger and the progress bar share stderr.
	stderr = zapcore.Lock(zapcore.AddSync(stderr))

	log, closeLog, err := logging.New(logging.Options{
		Debug:   cfg.Debug,
		File:    cfg.DebugLogFile,
		Console: stderr,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	disc, err := pipeline.Discover(cfg.InputPath, cfg.Recursive)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	outDir := cfg.ResolveOutputDir(disc.BaseDir)
	tasks := disc.Tasks
	if disc.FromDir {
		tasks = pipeline.ExcludeDir(tasks, disc.BaseDir, outDir)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(stderr, pipeline.ErrNoAudioFiles)
		return 1
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(stderr, "Error: %v: create output directory: %v\n", config.ErrConfiguration, err)
		return 1
	}

	log.Info("starting batch",
		zap.Int("files", len(tasks)),
		zap.String("output", outDir),
		zap.Int("rate", cfg.SampleRate),
		zap.Int("bit_depth", cfg.BitDepth),
		zap.Int("jobs", cfg.EffectiveJobs(runtime.NumCPU())))
	log.Debug("configuration", zap.Any("config", cfg))

	start := time.Now()
	reporter := report.New(len(tasks), stdout, stderr, log)
	proc := pipeline.NewProcessor(cfg, disc.BaseDir, outDir, log)

	outcomes := pipeline.Run(ctx, cfg, tasks, proc, reporter)
	reporter.Summary(outcomes)

	stats := pipeline.Stats(outcomes, time.Since(start))
	log.Info("batch finished",
		zap.Int("total", stats.Total),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed),
		zap.Duration("took", stats.Elapsed))

	return 0
}
