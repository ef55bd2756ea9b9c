// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver

// GlobalBarrier represents a memory barrier that is not
// tied to any resource.
type GlobalBarrier struct {
	Before AccessState
	After  AccessState
}

// BufferBarrier represents a barrier on a whole buffer.
type BufferBarrier struct {
	Buffer Buffer
	Before AccessState
	After  AccessState
}

// TextureBarrier represents a barrier on a texture
// subresource range.
// MipNum and LayerNum accept Remaining.
type TextureBarrier struct {
	Texture     Texture
	Before      AccessState
	After       AccessState
	MipOffset   int
	MipNum      int
	LayerOffset int
	LayerNum    int
	Planes      Plane

	// SrcQueue and DstQueue describe a queue ownership
	// transfer. They are only honored by backends that
	// support it, and only when both are non-nil.
	// Release and acquire are separate calls to Barrier,
	// recorded on command buffers of the respective
	// queues.
	SrcQueue Queue
	DstQueue Queue
}

// Mips returns the number of mip levels in the barrier's
// range, with Remaining resolved against desc.
func (b *TextureBarrier) Mips(desc *TextureDesc) int {
	if b.MipNum == Remaining {
		return desc.MipNum - b.MipOffset
	}
	return b.MipNum
}

// Layers returns the number of array layers in the
// barrier's range, with Remaining resolved against desc.
func (b *TextureBarrier) Layers(desc *TextureDesc) int {
	if b.LayerNum == Remaining {
		return desc.LayerNum - b.LayerOffset
	}
	return b.LayerNum
}

// InBounds reports whether the barrier's mip and layer
// ranges are non-empty and lie within the texture.
func (b *TextureBarrier) InBounds(desc *TextureDesc) bool {
	mips, layers := b.Mips(desc), b.Layers(desc)
	return b.MipOffset >= 0 && mips >= 1 && b.MipOffset+mips <= desc.MipNum &&
		b.LayerOffset >= 0 && layers >= 1 && b.LayerOffset+layers <= desc.LayerNum
}

// IsWhole reports whether the barrier's range covers
// every mip level, array layer and plane of the texture.
func (b *TextureBarrier) IsWhole(desc *TextureDesc) bool {
	if b.MipOffset != 0 || b.LayerOffset != 0 {
		return false
	}
	if b.Mips(desc) != desc.MipNum || b.Layers(desc) != desc.LayerNum {
		return false
	}
	p := PropsOf(desc.Format)
	return p.SelectPlanes(b.Planes) == p.Planes()
}

// IsOwnershipTransfer reports whether the barrier names
// both a source and a destination queue.
func (b *TextureBarrier) IsOwnershipTransfer() bool {
	return b.SrcQueue != nil && b.DstQueue != nil
}

// BarrierDesc describes a batch of barriers to be
// recorded at a single synchronization point.
type BarrierDesc struct {
	Globals  []GlobalBarrier
	Buffers  []BufferBarrier
	Textures []TextureBarrier
}

// IsEmpty reports whether the batch has no barriers.
// Recording an empty batch is a no-op.
func (d *BarrierDesc) IsEmpty() bool {
	return d == nil || len(d.Globals)+len(d.Buffers)+len(d.Textures) == 0
}
