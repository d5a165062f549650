package execution

import (
	"context"
	"sync"
	"time"

	"memprobe/internal/config"
	"memprobe/internal/domain"
	"memprobe/internal/registry"
	"memprobe/internal/ui"
)

// WorkerPool manages a pool of workers for parallel check execution
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute executes checks in parallel using the worker pool (no fail-fast).
func (wp *WorkerPool) Execute(cases []registry.Case) ([]domain.CaseResult, time.Duration, error) {
	return wp.ExecuteWithOptions(cases, false)
}

// ExecuteWithOptions executes checks with optional fail-fast (stop on first non-pass).
func (wp *WorkerPool) ExecuteWithOptions(cases []registry.Case, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(cases)
	}
	return wp.executeFailFast(cases)
}

// executeAll runs every check regardless of failures.
func (wp *WorkerPool) executeAll(cases []registry.Case) ([]domain.CaseResult, time.Duration, error) {
	queue := make(chan registry.Case, len(cases))
	results := make(chan domain.CaseResult, len(cases))
	for _, c := range cases {
		queue <- c
	}
	close(queue)

	var mu sync.Mutex
	var completed, passed, failed int
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for c := range queue {
				result := wp.runner.Run(c, workerID)
				results <- result
				mu.Lock()
				completed++
				if result.Passed() {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.CaseResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast runs checks and stops after the first non-pass.
func (wp *WorkerPool) executeFailFast(cases []registry.Case) ([]domain.CaseResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan registry.Case, 1)
	results := make(chan domain.CaseResult, len(cases))

	go func() {
		defer close(queue)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case queue <- c:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passed, failed int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for c := range queue {
				result := wp.runner.Run(c, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completed++
				if result.Passed() {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				if !result.Passed() {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.CaseResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
