// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"context"
	"log/slog"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/scratch"
)

// cmdBuffer implements driver.CmdBuffer.
type cmdBuffer struct {
	g   *gpu
	que driver.Queue
	cl  CommandList
}

// Barrier records the barriers in desc.
func (cb *cmdBuffer) Barrier(desc *driver.BarrierDesc) {
	if desc.IsEmpty() {
		return
	}
	if cb.g.cfg.EnhancedBarriers {
		cb.enhancedBarrier(desc)
	} else {
		cb.legacyBarrier(desc)
	}
}

// legacyBarrier records desc using ResourceBarrier.
func (cb *cmdBuffer) legacyBarrier(desc *driver.BarrierDesc) {
	kind := cb.que.Kind()
	n := legacyCount(desc, kind)
	logCount("legacy", n)
	if n == 0 {
		return
	}
	span := cb.g.resBarriers.Acquire(n)
	defer cb.g.resBarriers.Release(span)
	bld := scratch.NewBuilder(span.Slice())
	legacyFill(desc, kind, &bld)
	cb.cl.ResourceBarrier(bld.Done())
}

// enhancedBarrier records desc using Barrier.
func (cb *cmdBuffer) enhancedBarrier(desc *driver.BarrierDesc) {
	ng, nb, nt := enhancedCount(desc)
	logCount("enhanced", ng+nb+nt)
	gspan := cb.g.globals.Acquire(ng)
	defer cb.g.globals.Release(gspan)
	bspan := cb.g.buffers.Acquire(nb)
	defer cb.g.buffers.Release(bspan)
	tspan := cb.g.textures.Acquire(nt)
	defer cb.g.textures.Release(tspan)
	gb := scratch.NewBuilder(gspan.Slice())
	bb := scratch.NewBuilder(bspan.Slice())
	tb := scratch.NewBuilder(tspan.Slice())
	enhancedFill(desc, &gb, &bb, &tb)
	var groups [3]BarrierGroup
	n := enhancedGroups(groups[:], gb.Done(), bb.Done(), tb.Done())
	if n > 0 {
		cb.cl.Barrier(groups[:n])
	}
}

// Destroy destroys the command buffer.
func (cb *cmdBuffer) Destroy() {
	if cb == nil {
		return
	}
	*cb = cmdBuffer{}
}

func logCount(model string, n int) {
	if l := driver.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("d3d12: barrier", "model", model, "entries", n)
	}
}
