// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/debug"
	"github.com/gviegas/barrier/internal/scratch"
)

// resourceState converts a driver.Access to the single
// ResourceStates value that the legacy model tracks.
// Shader resource reads only include the pixel shader
// state on graphics queues.
func resourceState(acc driver.Access, kind driver.QueueKind) (state ResourceStates) {
	if acc == driver.ANone {
		return StateCommon
	}
	if debug.Enabled {
		debug.Assert(acc.Valid(), "d3d12: invalid access %#x", acc)
	}
	if acc&(driver.AConstantBuffer|driver.AVertexBuffer) != 0 {
		state |= StateVertexAndConstantBuffer
	}
	if acc&driver.AIndexBuffer != 0 {
		state |= StateIndexBuffer
	}
	if acc&driver.AArgumentBuffer != 0 {
		state |= StateIndirectArgument
	}
	if acc&(driver.AShaderResourceStorage|driver.AClearStorage|driver.AScratchBuffer) != 0 {
		state |= StateUnorderedAccess
	}
	if acc&driver.AColorAttachment != 0 {
		state |= StateRenderTarget
	}
	// Depth write is exclusive and implies read.
	if acc&driver.ADepthStencilAttachmentWrite != 0 {
		state |= StateDepthWrite
	} else if acc&driver.ADepthStencilAttachmentRead != 0 {
		state |= StateDepthRead
	}
	if acc&driver.ACopySource != 0 {
		state |= StateCopySource
	}
	if acc&driver.ACopyDestination != 0 {
		state |= StateCopyDest
	}
	if acc&driver.AResolveSource != 0 {
		state |= StateResolveSource
	}
	if acc&driver.AResolveDestination != 0 {
		state |= StateResolveDest
	}
	if acc&(driver.AShaderResource|driver.AInputAttachment|driver.AShaderBindingTable) != 0 {
		state |= StateNonPixelShaderResource
		if kind == driver.QGraphics {
			state |= StatePixelShaderResource
		}
	}
	if acc&(driver.AAccelStructRead|driver.AAccelStructWrite|driver.AMicromapRead|driver.AMicromapWrite) != 0 {
		state |= StateRaytracingAccelerationStructure
	}
	if acc&driver.AShadingRateAttachment != 0 {
		state |= StateShadingRateSource
	}
	return
}

// legacyKind classifies a before/after pair in the
// legacy model.
type legacyKind int

const (
	// No synchronization needed.
	legacyNone legacyKind = iota
	// State transition.
	legacyTransition
	// Read/write hazard on unordered access.
	legacyUAV
)

// classify decides what a before/after pair needs.
func classify(before, after ResourceStates) legacyKind {
	switch {
	case before != after:
		return legacyTransition
	case before == StateUnorderedAccess:
		return legacyUAV
	}
	return legacyNone
}

// needsGlobalUAV reports whether any global barrier has
// storage access on both sides. A single UAV barrier on
// no specific resource covers all of them.
func needsGlobalUAV(globals []driver.GlobalBarrier) bool {
	for i := range globals {
		if globals[i].Before.Access&driver.AShaderResourceStorage != 0 && globals[i].After.Access&driver.AShaderResourceStorage != 0 {
			return true
		}
	}
	return false
}

// legacyTextureCount returns the number of entries that a
// texture barrier produces in the legacy model.
// A partial range produces one entry per mip and layer of
// every selected plane, so multi-plane formats multiply the
// count by the number of planes.
func legacyTextureCount(b *driver.TextureBarrier, kind driver.QueueKind) int {
	desc := b.Texture.TextureDesc()
	debug.Assert(b.InBounds(&desc), "d3d12: texture range out of bounds (mips %d+%d, layers %d+%d)",
		b.MipOffset, b.MipNum, b.LayerOffset, b.LayerNum)
	switch classify(resourceState(b.Before.Access, kind), resourceState(b.After.Access, kind)) {
	case legacyNone:
		return 0
	case legacyUAV:
		return 1
	}
	if b.IsWhole(&desc) {
		return 1
	}
	planes := driver.PropsOf(desc.Format).SelectPlanes(b.Planes)
	return driver.PlaneCount(planes) * b.Layers(&desc) * b.Mips(&desc)
}

// legacyCount computes exactly how many ResourceBarriers
// desc produces in the legacy model.
func legacyCount(desc *driver.BarrierDesc, kind driver.QueueKind) (n int) {
	if needsGlobalUAV(desc.Globals) {
		n++
	}
	for i := range desc.Buffers {
		b := &desc.Buffers[i]
		if classify(resourceState(b.Before.Access, kind), resourceState(b.After.Access, kind)) != legacyNone {
			n++
		}
	}
	for i := range desc.Textures {
		n += legacyTextureCount(&desc.Textures[i], kind)
	}
	return
}

// legacyFill writes the ResourceBarriers of desc into bld.
// It must visit transitions in the same way as legacyCount.
func legacyFill(desc *driver.BarrierDesc, kind driver.QueueKind, bld *scratch.Builder[ResourceBarrier]) {
	if needsGlobalUAV(desc.Globals) {
		bld.Append(ResourceBarrier{Type: BarrierTypeUAV})
	}
	for i := range desc.Buffers {
		b := &desc.Buffers[i]
		before := resourceState(b.Before.Access, kind)
		after := resourceState(b.After.Access, kind)
		addResourceBarrier(bld, b.Buffer, before, after, AllSubresources)
	}
	for i := range desc.Textures {
		b := &desc.Textures[i]
		before := resourceState(b.Before.Access, kind)
		after := resourceState(b.After.Access, kind)
		switch classify(before, after) {
		case legacyNone:
			continue
		case legacyUAV:
			bld.Append(ResourceBarrier{Type: BarrierTypeUAV, Resource: b.Texture})
			continue
		}
		td := b.Texture.TextureDesc()
		if b.IsWhole(&td) {
			addResourceBarrier(bld, b.Texture, before, after, AllSubresources)
			continue
		}
		props := driver.PropsOf(td.Format)
		planes := props.SelectPlanes(b.Planes)
		layers := b.Layers(&td)
		mips := b.Mips(&td)
		for _, pl := range [...]driver.Plane{driver.PColor, driver.PDepth, driver.PStencil} {
			if planes&pl == 0 {
				continue
			}
			plane := props.PlaneIndex(pl)
			for l := b.LayerOffset; l < b.LayerOffset+layers; l++ {
				for m := b.MipOffset; m < b.MipOffset+mips; m++ {
					sub := driver.SubresourceIndex(l, td.LayerNum, m, td.MipNum, plane)
					addResourceBarrier(bld, b.Texture, before, after, uint32(sub))
				}
			}
		}
	}
}

// addResourceBarrier appends the ResourceBarrier that a
// before/after pair needs, if any.
func addResourceBarrier(bld *scratch.Builder[ResourceBarrier], res driver.Resource, before, after ResourceStates, sub uint32) {
	switch classify(before, after) {
	case legacyTransition:
		bld.Append(ResourceBarrier{
			Type:        BarrierTypeTransition,
			Resource:    res,
			Subresource: sub,
			StateBefore: before,
			StateAfter:  after,
		})
	case legacyUAV:
		bld.Append(ResourceBarrier{Type: BarrierTypeUAV, Resource: res})
	}
}
