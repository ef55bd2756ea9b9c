// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build !barrier_debug

package debug

// Enabled is set when building with the barrier_debug tag.
const Enabled = false
