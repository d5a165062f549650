package checks

import (
	"errors"

	"memprobe/internal/mem"
	"memprobe/internal/registry"
)

func init() {
	registry.Register("memory", "can catch standard out-of-memory condition", canCatchOutOfMemory)
	registry.Register("memory", "oversized request releases nothing it did not take", oversizedLeavesBudgetIntact)
	registry.Register("memory", "satisfiable request raises no failure signal", satisfiableRaisesNoSignal)
	registry.Register("memory", "failure signal carries request diagnostics", failureCarriesDiagnostics)
}

// The core check: an allocation sized beyond the budget must surface as
// an error the caller can catch, never as a panic or process death.
func canCatchOutOfMemory(t *registry.T) {
	a := t.Allocator()

	b, err := a.Alloc(a.Limit() + 1)
	if err == nil {
		b.Release()
		t.Fatalf("request of %d bytes against a %d byte budget was satisfied", a.Limit()+1, a.Limit())
	}
	if !errors.Is(err, mem.ErrOutOfMemory) {
		t.Fatalf("expected the out-of-memory signal, got a different kind: %v", err)
	}
	t.Logf("caught: %v", err)
}

func oversizedLeavesBudgetIntact(t *registry.T) {
	a := t.Allocator()

	if _, err := a.Alloc(a.Limit() * 2); err == nil {
		t.Fatalf("oversized request was satisfied")
	}
	if a.InUse() != 0 {
		t.Fatalf("failed request left %d bytes reserved", a.InUse())
	}

	// The full budget must still be allocatable afterwards.
	b, err := a.Alloc(a.Limit())
	if err != nil {
		t.Fatalf("budget no longer available after a failed request: %v", err)
	}
	b.Release()
}

func satisfiableRaisesNoSignal(t *registry.T) {
	a := t.Allocator()

	b, err := a.Alloc(16)
	if err != nil {
		t.Fatalf("trivially satisfiable request failed: %v", err)
	}
	defer b.Release()

	if int64(len(b.Bytes())) != 16 {
		t.Errorf("expected a 16-byte buffer, got %d", len(b.Bytes()))
	}
}

func failureCarriesDiagnostics(t *registry.T) {
	a := t.Allocator()

	_, err := a.Alloc(a.Limit() + 42)
	var allocErr *mem.AllocError
	if !errors.As(err, &allocErr) {
		t.Fatalf("expected an *AllocError, got %T", err)
	}
	if allocErr.Requested != a.Limit()+42 {
		t.Errorf("expected requested %d, got %d", a.Limit()+42, allocErr.Requested)
	}
	if allocErr.Limit != a.Limit() {
		t.Errorf("expected limit %d, got %d", a.Limit(), allocErr.Limit)
	}
}
