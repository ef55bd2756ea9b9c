// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package scratch provides the transient storage used to
// build native barrier arrays.
// Barrier translation is done in two passes: the first
// counts how many native entries a batch produces, the
// second fills exactly that many entries. A Pool provides
// storage sized by the first pass and a Builder enforces
// the count during the second.
package scratch

import (
	"sync"

	"github.com/gviegas/barrier/internal/bitvec"
)

// Pool is an arena of T slots shared by command buffers.
// It is safe for concurrent use.
type Pool[T any] struct {
	mu    sync.Mutex
	slots []T
	used  bitvec.V[uint64]
}

// Span is a contiguous range of slots acquired from a
// Pool. Its capacity is capped to its length, so appending
// to the slice never writes into adjacent slots.
type Span[T any] struct {
	s     []T
	index int
}

// Slice returns the span's slots.
func (s Span[T]) Slice() []T { return s.s }

// Len returns the number of slots in the span.
func (s Span[T]) Len() int { return len(s.s) }

// Acquire acquires n contiguous zeroed slots.
// Acquiring zero slots returns an empty span and does
// not touch the pool.
func (p *Pool[T]) Acquire(n int) Span[T] {
	if n <= 0 {
		return Span[T]{index: -1}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	index, ok := p.used.SearchRange(n)
	if !ok {
		// Slots still held by other spans keep living in
		// the previous array; the new one only needs to
		// be large enough.
		index = p.used.Grow((n + 63) / 64)
		p.slots = make([]T, p.used.Len())
	}
	p.used.SetRange(index, n)
	s := p.slots[index : index+n : index+n]
	clear(s)
	return Span[T]{s, index}
}

// Release returns the span's slots to the pool.
// The span must not be used afterwards.
func (p *Pool[T]) Release(s Span[T]) {
	if s.index < 0 || len(s.s) == 0 {
		return
	}
	clear(s.s)
	p.mu.Lock()
	p.used.UnsetRange(s.index, len(s.s))
	p.mu.Unlock()
}

// InUse returns the number of slots currently acquired.
func (p *Pool[T]) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used.Len() - p.used.Rem()
}

// Cap returns the number of slots in the pool.
func (p *Pool[T]) Cap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used.Len()
}
