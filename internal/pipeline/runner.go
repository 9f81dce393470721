// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/ik5/audbatch/internal/config"
)

// Observer is told about every outcome as it arrives. Run calls it from a
// single goroutine.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Outcome)

func (f ObserverFunc) Observe(o Outcome) { f(o) }

// FileProcessor turns a task into an outcome. Implementations must not
// panic; *Processor recovers internally.
type FileProcessor interface {
	Process(ctx context.Context, task FileTask) Outcome
}

// Run processes every task and returns exactly one outcome per task. With
// one job the tasks run in order on the calling goroutine. Otherwise
// min(jobs, NumCPU) workers share a task channel and outcomes come back in
// completion order. A failing task never stops the others.
func Run(ctx context.Context, cfg config.Config, tasks []FileTask, proc FileProcessor, obs Observer) []Outcome {
	return run(ctx, cfg, tasks, proc, obs, runtime.NumCPU())
}

// run is Run with the CPU count supplied by the caller.
func run(ctx context.Context, cfg config.Config, tasks []FileTask, proc FileProcessor, obs Observer, numCPU int) []Outcome {
	if obs == nil {
		obs = ObserverFunc(func(Outcome) {})
	}

	outcomes := make([]Outcome, 0, len(tasks))
	workers := min(cfg.EffectiveJobs(numCPU), len(tasks))

	if cfg.Jobs <= 1 || workers <= 1 {
		for _, task := range tasks {
			o := proc.Process(ctx, task)
			obs.Observe(o)
			outcomes = append(outcomes, o)
		}
		return outcomes
	}

	taskChan := make(chan FileTask)
	results := make(chan Outcome, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				results <- proc.Process(ctx, task)
			}
		}()
	}

	go func() {
		for _, task := range tasks {
			taskChan <- task
		}
		close(taskChan)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for o := range results {
		obs.Observe(o)
		outcomes = append(outcomes, o)
	}

	return outcomes
}
