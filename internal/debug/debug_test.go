// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package debug

import (
	"testing"
)

func TestAssert(t *testing.T) {
	Assert(true, "not reached")

	defer func() {
		r := recover()
		switch {
		case Enabled && r == nil:
			t.Fatal("Assert(false): did not panic")
		case !Enabled && r != nil:
			t.Fatalf("Assert(false): panicked without barrier_debug\nhave %v", r)
		case r != nil && r != "x is 1":
			t.Fatalf("Assert(false):\nhave %v\nwant x is 1", r)
		}
	}()
	Assert(false, "x is %d", 1)
}
