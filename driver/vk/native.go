// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package vk

import (
	"github.com/gviegas/barrier/driver"
)

// PipelineStageFlags2 mirrors VkPipelineStageFlags2.
type PipelineStageFlags2 uint64

// Pipeline stages.
const (
	StageNone                          PipelineStageFlags2 = 0
	StageTopOfPipe                     PipelineStageFlags2 = 0x1
	StageDrawIndirect                  PipelineStageFlags2 = 0x2
	StageVertexInput                   PipelineStageFlags2 = 0x4
	StageVertexShader                  PipelineStageFlags2 = 0x8
	StageTessellationControlShader     PipelineStageFlags2 = 0x10
	StageTessellationEvaluationShader  PipelineStageFlags2 = 0x20
	StageGeometryShader                PipelineStageFlags2 = 0x40
	StageFragmentShader                PipelineStageFlags2 = 0x80
	StageEarlyFragmentTests            PipelineStageFlags2 = 0x100
	StageLateFragmentTests             PipelineStageFlags2 = 0x200
	StageColorAttachmentOutput         PipelineStageFlags2 = 0x400
	StageComputeShader                 PipelineStageFlags2 = 0x800
	StageAllTransfer                   PipelineStageFlags2 = 0x1000
	StageBottomOfPipe                  PipelineStageFlags2 = 0x2000
	StageHost                          PipelineStageFlags2 = 0x4000
	StageAllGraphics                   PipelineStageFlags2 = 0x8000
	StageAllCommands                   PipelineStageFlags2 = 0x10000
	StageTaskShader                    PipelineStageFlags2 = 0x80000
	StageMeshShader                    PipelineStageFlags2 = 0x100000
	StageRayTracingShader              PipelineStageFlags2 = 0x200000
	StageFragmentShadingRateAttachment PipelineStageFlags2 = 0x400000
	StageAccelerationStructureBuild    PipelineStageFlags2 = 0x2000000
	StageAccelerationStructureCopy     PipelineStageFlags2 = 0x10000000
	StageMicromapBuild                 PipelineStageFlags2 = 0x40000000
	StageCopy                          PipelineStageFlags2 = 0x100000000
	StageResolve                       PipelineStageFlags2 = 0x200000000
	StageBlit                          PipelineStageFlags2 = 0x400000000
	StageClear                         PipelineStageFlags2 = 0x800000000
	StageIndexInput                    PipelineStageFlags2 = 0x1000000000
	StageVertexAttributeInput          PipelineStageFlags2 = 0x2000000000
	StagePreRasterizationShaders       PipelineStageFlags2 = 0x4000000000
)

// AccessFlags2 mirrors VkAccessFlags2.
type AccessFlags2 uint64

// Memory accesses.
const (
	AccessNone                              AccessFlags2 = 0
	AccessIndirectCommandRead               AccessFlags2 = 0x1
	AccessIndexRead                         AccessFlags2 = 0x2
	AccessVertexAttributeRead               AccessFlags2 = 0x4
	AccessUniformRead                       AccessFlags2 = 0x8
	AccessInputAttachmentRead               AccessFlags2 = 0x10
	AccessShaderRead                        AccessFlags2 = 0x20
	AccessShaderWrite                       AccessFlags2 = 0x40
	AccessColorAttachmentRead               AccessFlags2 = 0x80
	AccessColorAttachmentWrite              AccessFlags2 = 0x100
	AccessDepthStencilAttachmentRead        AccessFlags2 = 0x200
	AccessDepthStencilAttachmentWrite       AccessFlags2 = 0x400
	AccessTransferRead                      AccessFlags2 = 0x800
	AccessTransferWrite                     AccessFlags2 = 0x1000
	AccessHostRead                          AccessFlags2 = 0x2000
	AccessHostWrite                         AccessFlags2 = 0x4000
	AccessMemoryRead                        AccessFlags2 = 0x8000
	AccessMemoryWrite                       AccessFlags2 = 0x10000
	AccessAccelerationStructureRead         AccessFlags2 = 0x200000
	AccessAccelerationStructureWrite        AccessFlags2 = 0x400000
	AccessFragmentShadingRateAttachmentRead AccessFlags2 = 0x800000
	AccessShaderSampledRead                 AccessFlags2 = 0x100000000
	AccessShaderStorageRead                 AccessFlags2 = 0x200000000
	AccessShaderStorageWrite                AccessFlags2 = 0x400000000
	AccessShaderBindingTableRead            AccessFlags2 = 0x10000000000
	AccessMicromapRead                      AccessFlags2 = 0x100000000000
	AccessMicromapWrite                     AccessFlags2 = 0x200000000000
)

// ImageLayout mirrors VkImageLayout.
type ImageLayout int32

// Image layouts.
const (
	LayoutUndefined                             ImageLayout = 0
	LayoutGeneral                               ImageLayout = 1
	LayoutColorAttachmentOptimal                ImageLayout = 2
	LayoutDepthStencilAttachmentOptimal         ImageLayout = 3
	LayoutDepthStencilReadOnlyOptimal           ImageLayout = 4
	LayoutShaderReadOnlyOptimal                 ImageLayout = 5
	LayoutTransferSrcOptimal                    ImageLayout = 6
	LayoutTransferDstOptimal                    ImageLayout = 7
	LayoutPreinitialized                        ImageLayout = 8
	LayoutDepthReadOnlyStencilAttachmentOptimal ImageLayout = 1000117000
	LayoutDepthAttachmentStencilReadOnlyOptimal ImageLayout = 1000117001
	LayoutPresentSrc                            ImageLayout = 1000001002
	LayoutFragmentShadingRateAttachmentOptimal  ImageLayout = 1000164003
	LayoutRenderingLocalRead                    ImageLayout = 1000232000
)

// ImageAspectFlags mirrors VkImageAspectFlags.
type ImageAspectFlags uint32

// Image aspects.
const (
	AspectColor   ImageAspectFlags = 0x1
	AspectDepth   ImageAspectFlags = 0x2
	AspectStencil ImageAspectFlags = 0x4
)

// DependencyFlags mirrors VkDependencyFlags.
type DependencyFlags uint32

// Dependency flags.
const (
	DependencyByRegion DependencyFlags = 0x1
)

// Special values.
const (
	QueueFamilyIgnored   = ^uint32(0)
	RemainingMipLevels   = ^uint32(0)
	RemainingArrayLayers = ^uint32(0)
	WholeSize            = ^uint64(0)
)

// MemoryBarrier2 mirrors VkMemoryBarrier2.
type MemoryBarrier2 struct {
	SrcStageMask  PipelineStageFlags2
	SrcAccessMask AccessFlags2
	DstStageMask  PipelineStageFlags2
	DstAccessMask AccessFlags2
}

// BufferMemoryBarrier2 mirrors VkBufferMemoryBarrier2.
type BufferMemoryBarrier2 struct {
	SrcStageMask        PipelineStageFlags2
	SrcAccessMask       AccessFlags2
	DstStageMask        PipelineStageFlags2
	DstAccessMask       AccessFlags2
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              driver.Buffer
	Offset              uint64
	Size                uint64
}

// ImageSubresourceRange mirrors VkImageSubresourceRange.
type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageMemoryBarrier2 mirrors VkImageMemoryBarrier2.
type ImageMemoryBarrier2 struct {
	SrcStageMask        PipelineStageFlags2
	SrcAccessMask       AccessFlags2
	DstStageMask        PipelineStageFlags2
	DstAccessMask       AccessFlags2
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               driver.Texture
	SubresourceRange    ImageSubresourceRange
}

// DependencyInfo mirrors VkDependencyInfo.
// The slices are only valid for the duration of the
// PipelineBarrier2 call.
type DependencyInfo struct {
	DependencyFlags      DependencyFlags
	MemoryBarriers       []MemoryBarrier2
	BufferMemoryBarriers []BufferMemoryBarrier2
	ImageMemoryBarriers  []ImageMemoryBarrier2
}

// CommandBuffer is the native command buffer that a
// driver records into.
type CommandBuffer interface {
	// PipelineBarrier2 records vkCmdPipelineBarrier2.
	// It must not retain info.
	PipelineBarrier2(info *DependencyInfo)

	// BeginRendering records vkCmdBeginRendering.
	BeginRendering()

	// EndRendering records vkCmdEndRendering.
	EndRendering()
}

// Device creates native command buffers.
type Device interface {
	// NewCommandBuffer allocates a primary command buffer
	// from a pool of the given queue family.
	NewCommandBuffer(family int) (CommandBuffer, error)
}
