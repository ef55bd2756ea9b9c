// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scratch

import (
	"sync"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	var p Pool[int]
	if s := p.Acquire(0); s.Len() != 0 || p.Cap() != 0 {
		t.Fatalf("p.Acquire(0):\nhave %d, cap %d\nwant 0, cap 0", s.Len(), p.Cap())
	}
	s1 := p.Acquire(10)
	if n := s1.Len(); n != 10 {
		t.Fatalf("p.Acquire(10): Len:\nhave %d\nwant 10", n)
	}
	if n := cap(s1.Slice()); n != 10 {
		t.Fatalf("p.Acquire(10): cap:\nhave %d\nwant 10", n)
	}
	if n := p.Cap(); n != 64 {
		t.Fatalf("p.Cap:\nhave %d\nwant 64", n)
	}
	for i := range s1.Slice() {
		s1.Slice()[i] = i + 1
	}
	s2 := p.Acquire(54)
	if n := p.InUse(); n != 64 {
		t.Fatalf("p.InUse:\nhave %d\nwant 64", n)
	}
	for _, x := range s2.Slice() {
		if x != 0 {
			t.Fatalf("p.Acquire(54): slot not zeroed: %d", x)
		}
	}
	// No room left, so the pool must grow.
	s3 := p.Acquire(1)
	if n := p.Cap(); n != 128 {
		t.Fatalf("p.Cap:\nhave %d\nwant 128", n)
	}
	for i, x := range s1.Slice() {
		if x != i+1 {
			t.Fatalf("s1[%d]: have %d\nwant %d", i, x, i+1)
		}
	}
	p.Release(s1)
	p.Release(s2)
	p.Release(s3)
	if n := p.InUse(); n != 0 {
		t.Fatalf("p.InUse:\nhave %d\nwant 0", n)
	}
	// Released slots are reused.
	s4 := p.Acquire(100)
	if n := p.Cap(); n != 128 {
		t.Fatalf("p.Cap after reuse:\nhave %d\nwant 128", n)
	}
	p.Release(s4)
}

func TestPoolParallel(t *testing.T) {
	var p Pool[int]
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				s := p.Acquire(1 + (g+i)%17)
				for j := range s.Slice() {
					s.Slice()[j] = g
				}
				for _, x := range s.Slice() {
					if x != g {
						t.Errorf("span shared between goroutines: have %d, want %d", x, g)
						return
					}
				}
				p.Release(s)
			}
		}()
	}
	wg.Wait()
	if n := p.InUse(); n != 0 {
		t.Fatalf("p.InUse:\nhave %d\nwant 0", n)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(make([]int, 3))
	b.Append(1)
	*b.Next() = 2
	if n := b.Len(); n != 2 {
		t.Fatalf("b.Len:\nhave %d\nwant 2", n)
	}
	b.Append(3)
	s := b.Done()
	if len(s) != 3 || s[0] != 1 || s[1] != 2 || s[2] != 3 {
		t.Fatalf("b.Done:\nhave %v\nwant [1 2 3]", s)
	}
}

func TestBuilderOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("b.Append: expected a panic on overflow")
		}
	}()
	b := NewBuilder(make([]int, 1))
	b.Append(1)
	b.Append(2)
}

func TestBuilderUnderflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("b.Done: expected a panic on underflow")
		}
	}()
	b := NewBuilder(make([]int, 2))
	b.Append(1)
	b.Done()
}
