package mem

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfMemory is the failure signal raised when an allocation request
// cannot be satisfied by the allocator's budget.
var ErrOutOfMemory = errors.New("out of memory")

// AllocError describes a rejected allocation request. It wraps
// ErrOutOfMemory so callers can match the failure kind with errors.Is.
type AllocError struct {
	Requested int64 // bytes asked for
	InUse     int64 // bytes held when the request was made
	Limit     int64 // allocator budget
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("alloc %d bytes: %v (in use %d of %d)", e.Requested, ErrOutOfMemory, e.InUse, e.Limit)
}

func (e *AllocError) Unwrap() error {
	return ErrOutOfMemory
}

// Allocator hands out media buffers against a fixed byte budget.
// Exhaustion is an error, never a panic: pipelines catch it and degrade
// instead of dying mid-decode.
type Allocator struct {
	mu    sync.Mutex
	limit int64
	inUse int64
	peak  int64
	live  int
}

// NewAllocator creates an Allocator with the given budget in bytes.
func NewAllocator(limit int64) *Allocator {
	if limit < 0 {
		limit = 0
	}
	return &Allocator{limit: limit}
}

// Alloc reserves size bytes and returns the backing buffer as a Block.
// A request that is non-positive or exceeds the remaining budget fails
// with an *AllocError wrapping ErrOutOfMemory.
func (a *Allocator) Alloc(size int64) (*Block, error) {
	a.mu.Lock()
	if size <= 0 || size > a.limit-a.inUse {
		err := &AllocError{Requested: size, InUse: a.inUse, Limit: a.limit}
		a.mu.Unlock()
		return nil, err
	}
	a.inUse += size
	if a.inUse > a.peak {
		a.peak = a.inUse
	}
	a.live++
	a.mu.Unlock()

	return &Block{alloc: a, buf: make([]byte, size)}, nil
}

// WithBlock reserves size bytes, runs fn on the block and releases it on
// every exit path, including a panic inside fn.
func (a *Allocator) WithBlock(size int64, fn func(*Block) error) error {
	b, err := a.Alloc(size)
	if err != nil {
		return err
	}
	defer b.Release()
	return fn(b)
}

// Limit returns the allocator's byte budget.
func (a *Allocator) Limit() int64 {
	return a.limit
}

// InUse returns the bytes currently reserved.
func (a *Allocator) InUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

// Peak returns the high-water mark of reserved bytes.
func (a *Allocator) Peak() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.peak
}

// Live returns the number of blocks not yet released.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// Block is a reserved buffer. Releasing it returns its bytes to the
// allocator's budget.
type Block struct {
	alloc    *Allocator
	buf      []byte
	released bool
}

// Bytes returns the backing buffer. Nil after release.
func (b *Block) Bytes() []byte {
	return b.buf
}

// Size returns the reserved size in bytes.
func (b *Block) Size() int64 {
	return int64(len(b.buf))
}

// Release returns the block's bytes to the allocator. Safe to call more
// than once; only the first call changes accounting.
func (b *Block) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true

	a := b.alloc
	a.mu.Lock()
	a.inUse -= int64(len(b.buf))
	a.live--
	a.mu.Unlock()
	b.buf = nil
}
