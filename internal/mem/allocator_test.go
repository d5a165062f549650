package mem

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestAllocator_Alloc(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		size    int64
		wantErr bool
	}{
		{
			name:  "satisfiable request",
			limit: 1024,
			size:  512,
		},
		{
			name:  "request of exactly the budget",
			limit: 1024,
			size:  1024,
		},
		{
			name:    "request beyond the budget",
			limit:   1024,
			size:    1025,
			wantErr: true,
		},
		{
			name:    "zero-size request",
			limit:   1024,
			size:    0,
			wantErr: true,
		},
		{
			name:    "negative request",
			limit:   1024,
			size:    -1,
			wantErr: true,
		},
		{
			name:    "zero budget rejects everything",
			limit:   0,
			size:    1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(tt.limit)
			b, err := a.Alloc(tt.size)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				if !errors.Is(err, ErrOutOfMemory) {
					t.Errorf("error should wrap ErrOutOfMemory, got %v", err)
				}
				if a.InUse() != 0 {
					t.Errorf("failed alloc must not reserve bytes, in use: %d", a.InUse())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Size() != tt.size {
				t.Errorf("expected block of %d bytes, got %d", tt.size, b.Size())
			}
			if a.InUse() != tt.size {
				t.Errorf("expected %d bytes in use, got %d", tt.size, a.InUse())
			}

			b.Release()
			if a.InUse() != 0 {
				t.Errorf("expected 0 bytes in use after release, got %d", a.InUse())
			}
		})
	}
}

func TestAllocator_AllocErrorDiagnostics(t *testing.T) {
	a := NewAllocator(100)
	held, err := a.Alloc(60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer held.Release()

	_, err = a.Alloc(50)
	if err == nil {
		t.Fatal("expected an error, got none")
	}

	var allocErr *AllocError
	if !errors.As(err, &allocErr) {
		t.Fatalf("expected *AllocError, got %T", err)
	}
	if allocErr.Requested != 50 {
		t.Errorf("expected requested 50, got %d", allocErr.Requested)
	}
	if allocErr.InUse != 60 {
		t.Errorf("expected in use 60, got %d", allocErr.InUse)
	}
	if allocErr.Limit != 100 {
		t.Errorf("expected limit 100, got %d", allocErr.Limit)
	}
}

func TestAllocator_FailedAllocRestoresBudget(t *testing.T) {
	a := NewAllocator(100)

	if _, err := a.Alloc(200); err == nil {
		t.Fatal("expected oversized request to fail")
	}

	// The full budget must still be available.
	b, err := a.Alloc(100)
	if err != nil {
		t.Fatalf("budget should be untouched after failed alloc: %v", err)
	}
	b.Release()
}

func TestAllocator_Accounting(t *testing.T) {
	a := NewAllocator(1000)

	b1, err := a.Alloc(400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b2, err := a.Alloc(300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.InUse() != 700 {
		t.Errorf("expected 700 in use, got %d", a.InUse())
	}
	if a.Live() != 2 {
		t.Errorf("expected 2 live blocks, got %d", a.Live())
	}

	b1.Release()
	if a.InUse() != 300 {
		t.Errorf("expected 300 in use, got %d", a.InUse())
	}
	if a.Peak() != 700 {
		t.Errorf("peak should stay at 700, got %d", a.Peak())
	}

	b2.Release()
	if a.Live() != 0 {
		t.Errorf("expected 0 live blocks, got %d", a.Live())
	}
}

func TestBlock_ReleaseIdempotent(t *testing.T) {
	a := NewAllocator(100)
	b, err := a.Alloc(40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Release()
	b.Release()

	if a.InUse() != 0 {
		t.Errorf("double release corrupted accounting: %d in use", a.InUse())
	}
	if a.Live() != 0 {
		t.Errorf("double release corrupted live count: %d", a.Live())
	}
}

func TestAllocator_WithBlock(t *testing.T) {
	t.Run("releases on success", func(t *testing.T) {
		a := NewAllocator(100)
		err := a.WithBlock(50, func(b *Block) error {
			if b.Size() != 50 {
				t.Errorf("expected 50-byte block, got %d", b.Size())
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.InUse() != 0 {
			t.Errorf("expected release after success, %d in use", a.InUse())
		}
	})

	t.Run("releases on failure", func(t *testing.T) {
		a := NewAllocator(100)
		wantErr := errors.New("decode failed")
		err := a.WithBlock(50, func(b *Block) error {
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected fn error to propagate, got %v", err)
		}
		if a.InUse() != 0 {
			t.Errorf("expected release after failure, %d in use", a.InUse())
		}
	})

	t.Run("releases on panic", func(t *testing.T) {
		a := NewAllocator(100)
		func() {
			defer func() { recover() }()
			a.WithBlock(50, func(b *Block) error {
				panic("boom")
			})
		}()
		if a.InUse() != 0 {
			t.Errorf("expected release after panic, %d in use", a.InUse())
		}
	})

	t.Run("propagates alloc failure", func(t *testing.T) {
		a := NewAllocator(10)
		err := a.WithBlock(20, func(b *Block) error {
			t.Error("fn must not run when alloc fails")
			return nil
		})
		if !errors.Is(err, ErrOutOfMemory) {
			t.Fatalf("expected ErrOutOfMemory, got %v", err)
		}
	})
}

func TestAllocator_ConcurrentRequestsRespectBudget(t *testing.T) {
	const (
		limit   = 1000
		size    = 10
		workers = 8
		rounds  = 200
	)
	a := NewAllocator(limit)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				b, err := a.Alloc(size)
				if err != nil {
					// Budget pressure is fine; corruption is not.
					continue
				}
				if got := a.InUse(); got > limit {
					t.Errorf("budget exceeded: %d in use", got)
				}
				b.Release()
			}
		}()
	}
	wg.Wait()

	if a.InUse() != 0 {
		t.Errorf("expected 0 in use after all releases, got %d", a.InUse())
	}
	if a.Live() != 0 {
		t.Errorf("expected 0 live blocks, got %d", a.Live())
	}
}

func ExampleAllocator_Alloc() {
	a := NewAllocator(1 << 20)
	_, err := a.Alloc(1 << 30)
	fmt.Println(errors.Is(err, ErrOutOfMemory))
	// Output: true
}
