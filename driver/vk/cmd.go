// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package vk

import (
	"context"
	"log/slog"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/scratch"
)

// CmdBuffer implements driver.CmdBuffer.
// It is exported so that callers can bracket rendering.
type CmdBuffer struct {
	g           *gpu
	que         driver.Queue
	cb          CommandBuffer
	inRendering bool
}

// BeginRendering begins dynamic rendering.
// It panics if rendering has already begun.
func (cb *CmdBuffer) BeginRendering() {
	if cb.inRendering {
		panic("vk: BeginRendering called twice")
	}
	cb.cb.BeginRendering()
	cb.inRendering = true
}

// EndRendering ends dynamic rendering.
// It panics if rendering has not begun.
func (cb *CmdBuffer) EndRendering() {
	if !cb.inRendering {
		panic("vk: EndRendering without BeginRendering")
	}
	cb.cb.EndRendering()
	cb.inRendering = false
}

// InRendering reports whether the command buffer is
// between BeginRendering and EndRendering.
func (cb *CmdBuffer) InRendering() bool { return cb.inRendering }

// Barrier records the barriers in desc as a single
// dependency.
func (cb *CmdBuffer) Barrier(desc *driver.BarrierDesc) {
	if desc.IsEmpty() {
		return
	}
	nm, nb, ni := barrierCount(desc)
	if l := driver.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("vk: barrier", "memory", nm, "buffers", nb, "images", ni, "inRendering", cb.inRendering)
	}
	mspan := cb.g.memory.Acquire(nm)
	defer cb.g.memory.Release(mspan)
	bspan := cb.g.buffers.Acquire(nb)
	defer cb.g.buffers.Release(bspan)
	ispan := cb.g.images.Acquire(ni)
	defer cb.g.images.Release(ispan)
	mb := scratch.NewBuilder(mspan.Slice())
	bb := scratch.NewBuilder(bspan.Slice())
	ib := scratch.NewBuilder(ispan.Slice())
	barrierFill(desc, &mb, &bb, &ib)
	info := DependencyInfo{
		DependencyFlags:      dependencyFlags(desc, cb.inRendering),
		MemoryBarriers:       mb.Done(),
		BufferMemoryBarriers: bb.Done(),
		ImageMemoryBarriers:  ib.Done(),
	}
	cb.cb.PipelineBarrier2(&info)
}

// Destroy destroys the command buffer.
func (cb *CmdBuffer) Destroy() {
	if cb == nil {
		return
	}
	*cb = CmdBuffer{}
}
