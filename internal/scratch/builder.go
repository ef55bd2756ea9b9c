// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scratch

import (
	"fmt"
)

// Builder fills a fixed number of entries.
// The capacity is the count computed in the first pass;
// writing more entries than that, or fewer, is a bug in
// the translator and causes a panic.
type Builder[T any] struct {
	s []T
	n int
}

// NewBuilder returns a Builder that fills s.
func NewBuilder[T any](s []T) Builder[T] { return Builder[T]{s: s[:len(s):len(s)]} }

// Next returns a pointer to the next free entry.
func (b *Builder[T]) Next() *T {
	if b.n == len(b.s) {
		panic(fmt.Sprintf("scratch: builder overflow: capacity is %d", len(b.s)))
	}
	b.n++
	return &b.s[b.n-1]
}

// Append copies x into the next free entry.
func (b *Builder[T]) Append(x T) { *b.Next() = x }

// Len returns the number of entries written so far.
func (b *Builder[T]) Len() int { return b.n }

// Cap returns the number of entries that must be written.
func (b *Builder[T]) Cap() int { return len(b.s) }

// Done returns the filled entries.
// It panics if fewer entries were written than counted.
func (b *Builder[T]) Done() []T {
	if b.n != len(b.s) {
		panic(fmt.Sprintf("scratch: builder underflow: wrote %d of %d", b.n, len(b.s)))
	}
	return b.s
}
