// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package debug provides development-time assertions.
// Assertions compile to nothing unless the barrier_debug
// build tag is set.
package debug

import (
	"fmt"
)

// Assert panics with a formatted message if Enabled is
// set and cond is false.
func Assert(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
