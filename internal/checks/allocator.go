package checks

import (
	"errors"
	"sync"

	"memprobe/internal/mem"
	"memprobe/internal/registry"
)

func init() {
	registry.Register("allocator", "blocks are released on success and failure paths", releasedOnBothPaths)
	registry.Register("allocator", "no live blocks remain after release", noLiveBlocksAfterRelease)
	registry.Register("allocator", "peak tracks the high-water mark", peakTracksHighWater)
	registry.Register("allocator", "release is idempotent", releaseIsIdempotent)
	registry.Register("allocator", "concurrent requests respect the budget", concurrentRequests)
}

func releasedOnBothPaths(t *registry.T) {
	a := t.Allocator()

	if err := a.WithBlock(128, func(*mem.Block) error { return nil }); err != nil {
		t.Fatalf("scoped alloc failed: %v", err)
	}
	if a.InUse() != 0 {
		t.Fatalf("success path leaked %d bytes", a.InUse())
	}

	decodeErr := errors.New("frame decode failed")
	if err := a.WithBlock(128, func(*mem.Block) error { return decodeErr }); !errors.Is(err, decodeErr) {
		t.Fatalf("expected the inner error to propagate, got %v", err)
	}
	if a.InUse() != 0 {
		t.Fatalf("failure path leaked %d bytes", a.InUse())
	}
}

func noLiveBlocksAfterRelease(t *registry.T) {
	a := t.Allocator()

	var blocks []*mem.Block
	for i := 0; i < 8; i++ {
		b, err := a.Alloc(64)
		if err != nil {
			t.Fatalf("alloc %d failed: %v", i, err)
		}
		blocks = append(blocks, b)
	}
	for _, b := range blocks {
		b.Release()
	}

	if a.Live() != 0 {
		t.Errorf("expected 0 live blocks, got %d", a.Live())
	}
	if a.InUse() != 0 {
		t.Errorf("expected 0 bytes in use, got %d", a.InUse())
	}
}

func peakTracksHighWater(t *registry.T) {
	a := t.Allocator()

	b1, err := a.Alloc(300)
	if err != nil {
		t.Fatalf("alloc failed: %v", err)
	}
	b2, err := a.Alloc(200)
	if err != nil {
		t.Fatalf("alloc failed: %v", err)
	}
	b1.Release()
	b2.Release()

	if a.Peak() != 500 {
		t.Errorf("expected peak 500, got %d", a.Peak())
	}
}

func releaseIsIdempotent(t *registry.T) {
	a := t.Allocator()

	b, err := a.Alloc(64)
	if err != nil {
		t.Fatalf("alloc failed: %v", err)
	}
	b.Release()
	b.Release()

	if a.InUse() != 0 || a.Live() != 0 {
		t.Errorf("double release corrupted accounting: %d bytes, %d blocks", a.InUse(), a.Live())
	}
}

func concurrentRequests(t *registry.T) {
	a := t.Allocator()
	size := a.Limit() / 16

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b, err := a.Alloc(size)
				if err != nil {
					// Contention on the budget is expected.
					continue
				}
				b.Release()
			}
		}()
	}
	wg.Wait()

	if a.InUse() != 0 {
		t.Errorf("expected 0 bytes in use after all releases, got %d", a.InUse())
	}
	if a.Peak() > a.Limit() {
		t.Errorf("budget was exceeded: peak %d over limit %d", a.Peak(), a.Limit())
	}
}
