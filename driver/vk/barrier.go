// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package vk

import (
	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/debug"
	"github.com/gviegas/barrier/internal/scratch"
)

// convMemory converts a driver.GlobalBarrier.
func convMemory(b *driver.GlobalBarrier) MemoryBarrier2 {
	return MemoryBarrier2{
		SrcStageMask:  convStage(b.Before.Stages, b.Before.Access),
		SrcAccessMask: convAccess(b.Before.Access),
		DstStageMask:  convStage(b.After.Stages, b.After.Access),
		DstAccessMask: convAccess(b.After.Access),
	}
}

// convBuffer converts a driver.BufferBarrier.
// The native barrier always spans the whole buffer and
// never transfers ownership.
func convBuffer(b *driver.BufferBarrier) BufferMemoryBarrier2 {
	return BufferMemoryBarrier2{
		SrcStageMask:        convStage(b.Before.Stages, b.Before.Access),
		SrcAccessMask:       convAccess(b.Before.Access),
		DstStageMask:        convStage(b.After.Stages, b.After.Access),
		DstAccessMask:       convAccess(b.After.Access),
		SrcQueueFamilyIndex: QueueFamilyIgnored,
		DstQueueFamilyIndex: QueueFamilyIgnored,
		Buffer:              b.Buffer,
		Offset:              0,
		Size:                WholeSize,
	}
}

// convImage converts a driver.TextureBarrier.
func convImage(b *driver.TextureBarrier) ImageMemoryBarrier2 {
	desc := b.Texture.TextureDesc()
	debug.Assert(b.InBounds(&desc), "vk: texture range out of bounds (mips %d+%d, layers %d+%d)",
		b.MipOffset, b.MipNum, b.LayerOffset, b.LayerNum)
	src, dst := queueFamilies(b)
	return ImageMemoryBarrier2{
		SrcStageMask:        convStage(b.Before.Stages, b.Before.Access),
		SrcAccessMask:       convAccess(b.Before.Access),
		DstStageMask:        convStage(b.After.Stages, b.After.Access),
		DstAccessMask:       convAccess(b.After.Access),
		OldLayout:           convLayout(b.Before.Layout, b.Before.Access),
		NewLayout:           convLayout(b.After.Layout, b.After.Access),
		SrcQueueFamilyIndex: src,
		DstQueueFamilyIndex: dst,
		Image:               b.Texture,
		SubresourceRange: ImageSubresourceRange{
			AspectMask:     convAspect(b.Planes, driver.PropsOf(desc.Format)),
			BaseMipLevel:   uint32(b.MipOffset),
			LevelCount:     convCount(b.MipNum, RemainingMipLevels),
			BaseArrayLayer: uint32(b.LayerOffset),
			LayerCount:     convCount(b.LayerNum, RemainingArrayLayers),
		},
	}
}

// dependencyFlags returns the flags of the dependency that
// desc produces. Transitions to an input attachment are
// local to the region when recorded within rendering.
func dependencyFlags(desc *driver.BarrierDesc, inRendering bool) DependencyFlags {
	if !inRendering {
		return 0
	}
	for i := range desc.Textures {
		if desc.Textures[i].After.Layout == driver.LInputAttachment {
			return DependencyByRegion
		}
	}
	return 0
}

// barrierCount returns the number of native entries per
// kind. Every transition maps to exactly one entry.
func barrierCount(desc *driver.BarrierDesc) (memory, buffers, images int) {
	return len(desc.Globals), len(desc.Buffers), len(desc.Textures)
}

// barrierFill writes the native entries of desc.
func barrierFill(desc *driver.BarrierDesc, mb *scratch.Builder[MemoryBarrier2], bb *scratch.Builder[BufferMemoryBarrier2], ib *scratch.Builder[ImageMemoryBarrier2]) {
	for i := range desc.Globals {
		mb.Append(convMemory(&desc.Globals[i]))
	}
	for i := range desc.Buffers {
		bb.Append(convBuffer(&desc.Buffers[i]))
	}
	for i := range desc.Textures {
		ib.Append(convImage(&desc.Textures[i]))
	}
}
