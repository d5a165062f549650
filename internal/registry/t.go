package registry

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"memprobe/internal/mem"
)

// T is the handle passed to a running check. It collects log output and
// the failed state, and hands the check its per-case allocator.
type T struct {
	alloc *mem.Allocator

	mu     sync.Mutex
	failed bool
	log    strings.Builder
}

// NewT creates a check handle backed by the given allocator.
func NewT(alloc *mem.Allocator) *T {
	return &T{alloc: alloc}
}

// Allocator returns the allocator the check runs against. Each check
// gets its own, so checks never observe another check's reservations.
func (t *T) Allocator() *mem.Allocator {
	return t.alloc
}

// Logf records output without failing the check.
func (t *T) Logf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(&t.log, format, args...)
	t.log.WriteByte('\n')
}

// Errorf records a failure and keeps the check running.
func (t *T) Errorf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
	fmt.Fprintf(&t.log, format, args...)
	t.log.WriteByte('\n')
}

// Fatalf records a failure and stops the check immediately.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	panic(failNow{})
}

// Failed reports whether the check has recorded a failure.
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Output returns everything the check logged.
func (t *T) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.String()
}

// failNow is the control panic raised by Fatalf. Execute swallows it;
// any other panic is an abnormal termination.
type failNow struct{}

// Execute runs the check function against t, recovering panics. Fatalf's
// control panic just stops the check; any other panic is returned with
// its stack so the harness can report an errored outcome instead of
// crashing the run.
func Execute(c Case, t *T) (panicErr error, stack string) {
	defer func() {
		if v := recover(); v != nil {
			if _, stop := v.(failNow); stop {
				return
			}
			panicErr = fmt.Errorf("check panicked: %v", v)
			stack = string(debug.Stack())
		}
	}()
	c.Fn(t)
	return nil, ""
}
