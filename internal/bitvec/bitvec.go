// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitvec defines a bit vector type used to track
// which slots of a scratch arena are in use.
package bitvec

import (
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bit vector.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// V is a growable bit vector with custom granularity.
// A set bit means that the slot is in use.
type V[T Uint] struct {
	s   []T
	rem int
}

// nbit returns the number of bits in T.
func (*V[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits in the vector.
func (v *V[_]) Len() int { return len(v.s) * v.nbit() }

// Rem returns the number of unset bits in the vector.
func (v *V[_]) Rem() int { return v.rem }

// Grow appends nplus Uints worth of unset bits to the
// vector and returns the value of Len prior to growing.
// It is valid to call this method with any value of nplus.
func (v *V[T]) Grow(nplus int) (index int) {
	index = v.Len()
	if nplus > 0 {
		v.rem += nplus * v.nbit()
		v.s = append(v.s, make([]T, nplus)...)
	}
	return
}

// set sets a given bit.
func (v *V[T]) set(index int) {
	n := v.nbit()
	b := T(1) << (index & (n - 1))
	if i := index / n; v.s[i]&b == 0 {
		v.s[i] |= b
		v.rem--
	}
}

// unset unsets a given bit.
func (v *V[T]) unset(index int) {
	n := v.nbit()
	b := T(1) << (index & (n - 1))
	if i := index / n; v.s[i]&b != 0 {
		v.s[i] &^= b
		v.rem++
	}
}

// isSet checks whether a given bit is set.
func (v *V[T]) isSet(index int) bool {
	n := v.nbit()
	return v.s[index/n]&(T(1)<<(index&(n-1))) != 0
}

// SetRange sets the bits in [index, index+n).
func (v *V[T]) SetRange(index, n int) {
	for i := index; i < index+n; i++ {
		v.set(i)
	}
}

// UnsetRange unsets the bits in [index, index+n).
func (v *V[T]) UnsetRange(index, n int) {
	for i := index; i < index+n; i++ {
		v.unset(i)
	}
}

// SearchRange attempts to locate n contiguous unset bits.
// If ok is true, then all bits in [index, index+n) are
// unset. Requesting n < 1 always fails.
func (v *V[T]) SearchRange(n int) (index int, ok bool) {
	if n < 1 || v.rem < n {
		return
	}
	nb := v.nbit()
	cnt := 0
	for i, x := range v.s {
		switch x {
		case ^T(0):
			// Word is full.
			cnt = 0
			continue
		case 0:
			if cnt == 0 {
				index = i * nb
			}
			cnt += nb
			if cnt >= n {
				return index, true
			}
			continue
		}
		for b := 0; b < nb; b++ {
			if x&(T(1)<<b) != 0 {
				cnt = 0
				continue
			}
			if cnt == 0 {
				index = i*nb + b
			}
			if cnt++; cnt >= n {
				return index, true
			}
		}
	}
	return 0, false
}

// count returns the number of set bits.
func (v *V[T]) count() (n int) {
	for _, x := range v.s {
		n += bits.OnesCount64(uint64(x))
	}
	return
}

// reset unsets every bit in the vector.
func (v *V[T]) reset() {
	clear(v.s)
	v.rem = v.Len()
}
