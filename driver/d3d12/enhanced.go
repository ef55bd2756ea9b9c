// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"math"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/debug"
	"github.com/gviegas/barrier/internal/scratch"
)

// convSync converts a driver.Stage to a BarrierSync.
// acc is needed because acceleration structure writes
// exclude the postbuild info scope.
func convSync(stg driver.Stage, acc driver.Access) (flags BarrierSync) {
	switch stg {
	case driver.SAll:
		return SyncAll
	case driver.SNone:
		return SyncNone
	}
	if debug.Enabled {
		debug.Assert(stg.Valid(), "d3d12: invalid stage %#x", stg)
	}
	if stg&driver.SIndexInput != 0 {
		flags |= SyncIndexInput
	}
	if stg&driver.SVertexShaders != 0 {
		flags |= SyncVertexShading
	}
	if stg&driver.SFragmentShader != 0 {
		flags |= SyncPixelShading
	}
	if stg&driver.SDepthStencilAttachment != 0 {
		flags |= SyncDepthStencil
	}
	if stg&driver.SColorAttachment != 0 {
		flags |= SyncRenderTarget
	}
	if stg&driver.SComputeShader != 0 {
		flags |= SyncComputeShading
	}
	if stg&driver.SRayTracingShaders != 0 {
		flags |= SyncRaytracing
	}
	if stg&driver.SIndirect != 0 {
		flags |= SyncExecuteIndirect
	}
	if stg&driver.SCopy != 0 {
		flags |= SyncCopy
	}
	if stg&driver.SResolve != 0 {
		flags |= SyncResolve
	}
	if stg&driver.SClearStorage != 0 {
		flags |= SyncClearUnorderedAccessView
	}
	if stg&(driver.SAccelStruct|driver.SMicromap) != 0 {
		flags |= SyncBuildRaytracingAccelStruct | SyncCopyRaytracingAccelStruct
		if acc&driver.AAccelStructWrite == 0 {
			flags |= SyncEmitRaytracingAccelStructPostbuildInfo
		}
	}
	return
}

// convAccess converts a driver.Access to a BarrierAccess.
func convAccess(acc driver.Access) (flags BarrierAccess) {
	if acc == driver.ANone {
		return AccessNoAccess
	}
	if debug.Enabled {
		debug.Assert(acc.Valid(), "d3d12: invalid access %#x", acc)
	}
	if acc&driver.AIndexBuffer != 0 {
		flags |= AccessIndexBuffer
	}
	if acc&driver.AVertexBuffer != 0 {
		flags |= AccessVertexBuffer
	}
	if acc&driver.AConstantBuffer != 0 {
		flags |= AccessConstantBuffer
	}
	if acc&driver.AArgumentBuffer != 0 {
		flags |= AccessIndirectArgument
	}
	if acc&(driver.AScratchBuffer|driver.AShaderResourceStorage|driver.AClearStorage) != 0 {
		flags |= AccessUnorderedAccess
	}
	if acc&driver.AColorAttachment != 0 {
		flags |= AccessRenderTarget
	}
	if acc&driver.ADepthStencilAttachmentRead != 0 {
		flags |= AccessDepthStencilRead
	}
	if acc&driver.ADepthStencilAttachmentWrite != 0 {
		flags |= AccessDepthStencilWrite
	}
	if acc&driver.AShadingRateAttachment != 0 {
		flags |= AccessShadingRateSource
	}
	if acc&(driver.AShaderResource|driver.AInputAttachment|driver.AShaderBindingTable) != 0 {
		flags |= AccessShaderResource
	}
	if acc&(driver.AAccelStructRead|driver.AMicromapRead) != 0 {
		flags |= AccessRaytracingAccelStructRead
	}
	if acc&(driver.AAccelStructWrite|driver.AMicromapWrite) != 0 {
		flags |= AccessRaytracingAccelStructWrite
	}
	if acc&driver.ACopySource != 0 {
		flags |= AccessCopySource
	}
	if acc&driver.ACopyDestination != 0 {
		flags |= AccessCopyDest
	}
	if acc&driver.AResolveSource != 0 {
		flags |= AccessResolveSource
	}
	if acc&driver.AResolveDestination != 0 {
		flags |= AccessResolveDest
	}
	return
}

// convLayout converts a driver.Layout to a BarrierLayout.
// An input attachment read through AInputAttachment is a
// plain shader resource.
func convLayout(l driver.Layout, acc driver.Access) BarrierLayout {
	switch l {
	case driver.LUndefined:
		return LayoutUndefined
	case driver.LGeneral:
		return LayoutCommon
	case driver.LPresent:
		return LayoutPresent
	case driver.LColorAttachment:
		return LayoutRenderTarget
	case driver.LShadingRateAttachment:
		return LayoutShadingRateSource
	case driver.LDepthStencilAttachment,
		driver.LDepthReadonlyStencilAttachment,
		driver.LDepthAttachmentStencilReadonly:
		return LayoutDepthStencilWrite
	case driver.LDepthStencilReadonly:
		return LayoutDepthStencilRead
	case driver.LInputAttachment:
		if acc&driver.AInputAttachment != 0 {
			return LayoutShaderResource
		}
		return LayoutRenderTarget
	case driver.LShaderResource:
		return LayoutShaderResource
	case driver.LShaderResourceStorage:
		return LayoutUnorderedAccess
	case driver.LCopySource:
		return LayoutCopySource
	case driver.LCopyDestination:
		return LayoutCopyDest
	case driver.LResolveSource:
		return LayoutResolveSource
	case driver.LResolveDestination:
		return LayoutResolveDest
	}

	// Expected to be unreachable.
	if debug.Enabled {
		debug.Assert(false, "d3d12: invalid layout %d", l)
	}
	return ^BarrierLayout(0)
}

// convGlobal converts a driver.GlobalBarrier.
func convGlobal(b *driver.GlobalBarrier) GlobalBarrier {
	return GlobalBarrier{
		SyncBefore:   convSync(b.Before.Stages, b.Before.Access),
		SyncAfter:    convSync(b.After.Stages, b.After.Access),
		AccessBefore: convAccess(b.Before.Access),
		AccessAfter:  convAccess(b.After.Access),
	}
}

// convBuffer converts a driver.BufferBarrier.
// The native barrier always spans the whole buffer.
func convBuffer(b *driver.BufferBarrier) BufferBarrier {
	return BufferBarrier{
		SyncBefore:   convSync(b.Before.Stages, b.Before.Access),
		SyncAfter:    convSync(b.After.Stages, b.After.Access),
		AccessBefore: convAccess(b.Before.Access),
		AccessAfter:  convAccess(b.After.Access),
		Resource:     b.Buffer,
		Offset:       0,
		Size:         math.MaxUint64,
	}
}

// convTexture converts a driver.TextureBarrier.
func convTexture(b *driver.TextureBarrier) TextureBarrier {
	desc := b.Texture.TextureDesc()
	debug.Assert(b.InBounds(&desc), "d3d12: texture range out of bounds (mips %d+%d, layers %d+%d)",
		b.MipOffset, b.MipNum, b.LayerOffset, b.LayerNum)
	props := driver.PropsOf(desc.Format)
	planes := props.SelectPlanes(b.Planes)
	var first int
	for _, pl := range [...]driver.Plane{driver.PColor, driver.PDepth, driver.PStencil} {
		if planes&pl != 0 {
			first = props.PlaneIndex(pl)
			break
		}
	}
	var flags TextureBarrierFlags
	// TODO: Restrict the discard to the planes that are
	// actually being initialized.
	if b.Before.Layout == driver.LUndefined {
		flags |= TextureBarrierFlagDiscard
	}
	return TextureBarrier{
		SyncBefore:   convSync(b.Before.Stages, b.Before.Access),
		SyncAfter:    convSync(b.After.Stages, b.After.Access),
		AccessBefore: convAccess(b.Before.Access),
		AccessAfter:  convAccess(b.After.Access),
		LayoutBefore: convLayout(b.Before.Layout, b.Before.Access),
		LayoutAfter:  convLayout(b.After.Layout, b.After.Access),
		Resource:     b.Texture,
		Subresources: BarrierSubresourceRange{
			IndexOrFirstMipLevel: uint32(b.MipOffset),
			NumMipLevels:         uint32(b.Mips(&desc)),
			FirstArraySlice:      uint32(b.LayerOffset),
			NumArraySlices:       uint32(b.Layers(&desc)),
			FirstPlane:           uint32(first),
			NumPlanes:            uint32(driver.PlaneCount(planes)),
		},
		Flags: flags,
	}
}

// enhancedCount returns the number of native entries per
// group. Every transition maps to exactly one entry.
func enhancedCount(desc *driver.BarrierDesc) (globals, buffers, textures int) {
	return len(desc.Globals), len(desc.Buffers), len(desc.Textures)
}

// enhancedFill writes the native entries of desc.
func enhancedFill(desc *driver.BarrierDesc, gb *scratch.Builder[GlobalBarrier], bb *scratch.Builder[BufferBarrier], tb *scratch.Builder[TextureBarrier]) {
	for i := range desc.Globals {
		gb.Append(convGlobal(&desc.Globals[i]))
	}
	for i := range desc.Buffers {
		bb.Append(convBuffer(&desc.Buffers[i]))
	}
	for i := range desc.Textures {
		tb.Append(convTexture(&desc.Textures[i]))
	}
}

// enhancedGroups arranges the non-empty groups into gs,
// which must have room for three groups.
// It returns the number of groups set.
func enhancedGroups(gs []BarrierGroup, globals []GlobalBarrier, buffers []BufferBarrier, textures []TextureBarrier) int {
	n := 0
	if len(globals) > 0 {
		gs[n] = BarrierGroup{Type: BarrierTypeGlobal, Globals: globals}
		n++
	}
	if len(buffers) > 0 {
		gs[n] = BarrierGroup{Type: BarrierTypeBuffer, Buffers: buffers}
		n++
	}
	if len(textures) > 0 {
		gs[n] = BarrierGroup{Type: BarrierTypeTexture, Textures: textures}
		n++
	}
	return n
}
