package checks

import (
	"testing"

	"memprobe/internal/config"
	"memprobe/internal/domain"
	"memprobe/internal/execution"
	"memprobe/internal/registry"
)

func runAll(t *testing.T, budget int64) []domain.CaseResult {
	t.Helper()
	cfg := config.New()
	cfg.MemoryBudget = budget
	runner := execution.NewRunner(cfg)

	var results []domain.CaseResult
	for _, c := range registry.Default.All() {
		results = append(results, runner.Run(c, 1))
	}
	return results
}

func TestRegisteredChecksPass(t *testing.T) {
	// Small budget keeps the exhaustion checks cheap; they only depend
	// on the budget being finite, not on its size.
	for _, result := range runAll(t, 1<<16) {
		t.Run(result.Case.ID(), func(t *testing.T) {
			if result.Status != domain.StatusPassed {
				t.Errorf("check %s: %s\n%s", result.Case.ID(), result.Status, result.Output)
			}
		})
	}
}

func TestChecksAreRegistered(t *testing.T) {
	all := registry.Default.All()

	want := map[string]bool{
		"memory/can catch standard out-of-memory condition": false,
		"memory/satisfiable request raises no failure signal": false,
		"allocator/blocks are released on success and failure paths": false,
	}
	for _, c := range all {
		if _, ok := want[c.ID()]; ok {
			want[c.ID()] = true
		}
	}
	for id, found := range want {
		if !found {
			t.Errorf("check %q is not registered", id)
		}
	}

	suites := registry.Default.Suites()
	if len(suites) != 2 {
		t.Errorf("expected 2 suites, got %v", suites)
	}
}

// A tiny budget still must behave: the core check requests limit+1, so
// it passes for any finite budget.
func TestCoreCheckHoldsAtTinyBudgets(t *testing.T) {
	cfg := config.New()
	cfg.MemoryBudget = 1
	runner := execution.NewRunner(cfg)

	for _, c := range registry.Default.All() {
		if c.ID() != "memory/can catch standard out-of-memory condition" {
			continue
		}
		result := runner.Run(c, 1)
		if result.Status != domain.StatusPassed {
			t.Errorf("expected pass at budget 1, got %s\n%s", result.Status, result.Output)
		}
		return
	}
	t.Fatal("core check not found")
}
