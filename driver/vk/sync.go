// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package vk

import (
	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/debug"
)

// convStage converts a driver.Stage to a
// PipelineStageFlags2.
// acc is needed to tell vertex attribute fetches apart
// from vertex shading, and to add the shading rate stage.
func convStage(stg driver.Stage, acc driver.Access) (flags PipelineStageFlags2) {
	switch stg {
	case driver.SAll:
		return StageAllCommands
	case driver.SNone:
		return StageNone
	}
	if debug.Enabled {
		debug.Assert(stg.Valid(), "vk: invalid stage %#x", stg)
	}
	if stg&driver.SIndexInput != 0 {
		flags |= StageIndexInput
	}
	if stg&driver.SVertexShader != 0 {
		flags |= StageVertexShader
		if acc&driver.AVertexBuffer != 0 {
			flags |= StageVertexAttributeInput
		}
	}
	if stg&driver.STessControlShader != 0 {
		flags |= StageTessellationControlShader
	}
	if stg&driver.STessEvalShader != 0 {
		flags |= StageTessellationEvaluationShader
	}
	if stg&driver.SGeometryShader != 0 {
		flags |= StageGeometryShader
	}
	if stg&driver.STaskShader != 0 {
		flags |= StageTaskShader
	}
	if stg&driver.SMeshShader != 0 {
		flags |= StageMeshShader
	}
	if stg&driver.SFragmentShader != 0 {
		flags |= StageFragmentShader
	}
	if stg&driver.SDepthStencilAttachment != 0 {
		flags |= StageEarlyFragmentTests | StageLateFragmentTests
	}
	if stg&driver.SColorAttachment != 0 {
		flags |= StageColorAttachmentOutput
	}
	if stg&driver.SComputeShader != 0 {
		flags |= StageComputeShader
	}
	if stg&driver.SRayTracingShaders != 0 {
		flags |= StageRayTracingShader
	}
	if stg&driver.SAccelStruct != 0 {
		flags |= StageAccelerationStructureBuild | StageAccelerationStructureCopy
	}
	if stg&driver.SMicromap != 0 {
		flags |= StageMicromapBuild
	}
	if stg&driver.SCopy != 0 {
		flags |= StageCopy
	}
	if stg&driver.SResolve != 0 {
		flags |= StageResolve
	}
	if stg&driver.SClearStorage != 0 {
		flags |= StageClear
	}
	if stg&driver.SIndirect != 0 {
		flags |= StageDrawIndirect
	}
	if acc&driver.AShadingRateAttachment != 0 {
		flags |= StageFragmentShadingRateAttachment
	}
	return
}

// convAccess converts a driver.Access to an AccessFlags2.
func convAccess(acc driver.Access) (flags AccessFlags2) {
	if acc == driver.ANone {
		return AccessNone
	}
	if debug.Enabled {
		debug.Assert(acc.Valid(), "vk: invalid access %#x", acc)
	}
	if acc&driver.AIndexBuffer != 0 {
		flags |= AccessIndexRead
	}
	if acc&driver.AVertexBuffer != 0 {
		flags |= AccessVertexAttributeRead
	}
	if acc&driver.AConstantBuffer != 0 {
		flags |= AccessUniformRead
	}
	if acc&driver.AArgumentBuffer != 0 {
		flags |= AccessIndirectCommandRead
	}
	// Scratch memory is read and written by builds.
	if acc&driver.AScratchBuffer != 0 {
		flags |= AccessAccelerationStructureRead | AccessAccelerationStructureWrite
	}
	if acc&driver.AColorAttachmentRead != 0 {
		flags |= AccessColorAttachmentRead
	}
	if acc&driver.AColorAttachmentWrite != 0 {
		flags |= AccessColorAttachmentWrite
	}
	if acc&driver.ADepthStencilAttachmentRead != 0 {
		flags |= AccessDepthStencilAttachmentRead
	}
	if acc&driver.ADepthStencilAttachmentWrite != 0 {
		flags |= AccessDepthStencilAttachmentWrite
	}
	if acc&driver.AShadingRateAttachment != 0 {
		flags |= AccessFragmentShadingRateAttachmentRead
	}
	if acc&driver.AInputAttachment != 0 {
		flags |= AccessInputAttachmentRead
	}
	if acc&driver.AAccelStructRead != 0 {
		flags |= AccessAccelerationStructureRead
	}
	if acc&driver.AAccelStructWrite != 0 {
		flags |= AccessAccelerationStructureWrite
	}
	if acc&driver.AMicromapRead != 0 {
		flags |= AccessMicromapRead
	}
	if acc&driver.AMicromapWrite != 0 {
		flags |= AccessMicromapWrite
	}
	if acc&driver.AShaderResource != 0 {
		flags |= AccessShaderSampledRead
	}
	if acc&driver.AShaderResourceStorage != 0 {
		flags |= AccessShaderStorageRead | AccessShaderStorageWrite
	}
	if acc&driver.AShaderBindingTable != 0 {
		flags |= AccessShaderBindingTableRead
	}
	if acc&(driver.ACopySource|driver.AResolveSource) != 0 {
		flags |= AccessTransferRead
	}
	if acc&(driver.ACopyDestination|driver.AResolveDestination|driver.AClearStorage) != 0 {
		flags |= AccessTransferWrite
	}
	return
}

// convLayout converts a driver.Layout to an ImageLayout.
// An input attachment read through AInputAttachment is a
// plain shader resource. Otherwise it is an attachment
// that is read locally while rendering.
func convLayout(l driver.Layout, acc driver.Access) ImageLayout {
	switch l {
	case driver.LUndefined:
		return LayoutUndefined
	case driver.LGeneral:
		return LayoutGeneral
	case driver.LPresent:
		return LayoutPresentSrc
	case driver.LColorAttachment:
		return LayoutColorAttachmentOptimal
	case driver.LShadingRateAttachment:
		return LayoutFragmentShadingRateAttachmentOptimal
	case driver.LDepthStencilAttachment:
		return LayoutDepthStencilAttachmentOptimal
	case driver.LDepthStencilReadonly:
		return LayoutDepthStencilReadOnlyOptimal
	case driver.LDepthReadonlyStencilAttachment:
		return LayoutDepthReadOnlyStencilAttachmentOptimal
	case driver.LDepthAttachmentStencilReadonly:
		return LayoutDepthAttachmentStencilReadOnlyOptimal
	case driver.LInputAttachment:
		if acc&driver.AInputAttachment != 0 {
			return LayoutShaderReadOnlyOptimal
		}
		return LayoutRenderingLocalRead
	case driver.LShaderResource:
		return LayoutShaderReadOnlyOptimal
	case driver.LShaderResourceStorage:
		return LayoutGeneral
	case driver.LCopySource, driver.LResolveSource:
		return LayoutTransferSrcOptimal
	case driver.LCopyDestination, driver.LResolveDestination:
		return LayoutTransferDstOptimal
	}

	// Expected to be unreachable.
	if debug.Enabled {
		debug.Assert(false, "vk: invalid layout %d", l)
	}
	return ^ImageLayout(0)
}

// convAspect converts a driver.Plane selector to an
// ImageAspectFlags, dropping planes that format does
// not have.
func convAspect(pl driver.Plane, props driver.FormatProps) (flags ImageAspectFlags) {
	pl = props.SelectPlanes(pl)
	if pl&driver.PColor != 0 {
		flags |= AspectColor
	}
	if pl&driver.PDepth != 0 {
		flags |= AspectDepth
	}
	if pl&driver.PStencil != 0 {
		flags |= AspectStencil
	}
	return
}

// convCount converts a mip or layer count, mapping
// driver.Remaining to rem.
func convCount(n int, rem uint32) uint32 {
	if n == driver.Remaining {
		return rem
	}
	return uint32(n)
}

// queueFamilies returns the family indices that an image
// barrier carries.
func queueFamilies(b *driver.TextureBarrier) (src, dst uint32) {
	if !b.IsOwnershipTransfer() {
		return QueueFamilyIgnored, QueueFamilyIgnored
	}
	return uint32(b.SrcQueue.Family()), uint32(b.DstQueue.Family())
}
