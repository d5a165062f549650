package execution

import (
	"time"

	"memprobe/internal/config"
	"memprobe/internal/domain"
	"memprobe/internal/mem"
	"memprobe/internal/registry"
)

// Runner executes a single check in-process
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes one check against a fresh allocator. Panics inside the
// check are recovered and reported as an errored outcome; a check that
// returns with live blocks still reserved fails the release discipline.
func (r *Runner) Run(c registry.Case, workerID int) domain.CaseResult {
	alloc := mem.NewAllocator(r.config.MemoryBudget)
	t := registry.NewT(alloc)

	start := time.Now()
	panicErr, stack := registry.Execute(c, t)
	duration := time.Since(start)

	status := domain.StatusPassed
	switch {
	case panicErr != nil:
		status = domain.StatusErrored
	case t.Failed():
		status = domain.StatusFailed
	case alloc.Live() != 0:
		status = domain.StatusFailed
		t.Errorf("check leaked %d block(s), %d byte(s) still reserved", alloc.Live(), alloc.InUse())
	}

	return domain.CaseResult{
		Case:     c.Case,
		Status:   status,
		Output:   t.Output(),
		Err:      panicErr,
		Stack:    stack,
		Duration: duration,
	}
}
