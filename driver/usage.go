// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureUsageFor returns the creation usage that a
// texture needs to support the accesses in acc.
func TextureUsageFor(acc Access) (usg gputypes.TextureUsage) {
	if acc == ANone {
		return
	}
	if acc&(AColorAttachment|ADepthStencilAttachment|AShadingRateAttachment|AInputAttachment|AResolveSource|AResolveDestination) != 0 {
		usg |= gputypes.TextureUsageRenderAttachment
	}
	if acc&AShaderResource != 0 {
		usg |= gputypes.TextureUsageTextureBinding
	}
	if acc&(AShaderResourceStorage|AClearStorage) != 0 {
		usg |= gputypes.TextureUsageStorageBinding
	}
	if acc&ACopySource != 0 {
		usg |= gputypes.TextureUsageCopySrc
	}
	if acc&ACopyDestination != 0 {
		usg |= gputypes.TextureUsageCopyDst
	}
	return
}

// BufferUsageFor returns the creation usage that a
// buffer needs to support the accesses in acc.
func BufferUsageFor(acc Access) (usg gputypes.BufferUsage) {
	if acc == ANone {
		return
	}
	if acc&AIndexBuffer != 0 {
		usg |= gputypes.BufferUsageIndex
	}
	if acc&AVertexBuffer != 0 {
		usg |= gputypes.BufferUsageVertex
	}
	if acc&AConstantBuffer != 0 {
		usg |= gputypes.BufferUsageUniform
	}
	if acc&AArgumentBuffer != 0 {
		usg |= gputypes.BufferUsageIndirect
	}
	if acc&(AShaderResource|AShaderResourceStorage|AScratchBuffer|AClearStorage|AAccelStructRead|AAccelStructWrite|AMicromapRead|AMicromapWrite|AShaderBindingTable) != 0 {
		usg |= gputypes.BufferUsageStorage
	}
	if acc&ACopySource != 0 {
		usg |= gputypes.BufferUsageCopySrc
	}
	if acc&ACopyDestination != 0 {
		usg |= gputypes.BufferUsageCopyDst
	}
	return
}

// UsageError describes a barrier whose access is not
// allowed by the resource's creation usage.
type UsageError struct {
	Kind   ResourceKind
	Index  int
	Access Access
	Need   uint64
	Have   uint64
}

func (e *UsageError) Error() string {
	k := "buffer"
	if e.Kind == KTexture {
		k = "texture"
	}
	return fmt.Sprintf("driver: %s barrier %d: access %#x needs usage %#x, have %#x", k, e.Index, e.Access, e.Need, e.Have)
}

// LayoutError describes a texture barrier whose Before
// layout disagrees with the texture's declared layout.
type LayoutError struct {
	Index    int
	Declared Layout
	Before   Layout
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("driver: texture barrier %d: before layout %d, declared %d", e.Index, e.Before, e.Declared)
}

// Check verifies that the barriers in desc are consistent
// with the resources they reference.
// It reports the first *UsageError or *LayoutError found.
// A Before layout of LUndefined is always accepted.
// Check is meant for development and tooling; Barrier
// does not call it.
func Check(desc *BarrierDesc) error {
	if desc.IsEmpty() {
		return nil
	}
	for i := range desc.Buffers {
		b := &desc.Buffers[i]
		have := b.Buffer.BufferDesc().Usage
		need := BufferUsageFor(b.Before.Access | b.After.Access)
		if need&^have != 0 {
			return &UsageError{KBuffer, i, b.Before.Access | b.After.Access, uint64(need), uint64(have)}
		}
	}
	for i := range desc.Textures {
		b := &desc.Textures[i]
		have := b.Texture.TextureDesc().Usage
		need := TextureUsageFor(b.Before.Access | b.After.Access)
		if need&^have != 0 {
			return &UsageError{KTexture, i, b.Before.Access | b.After.Access, uint64(need), uint64(have)}
		}
		lt, ok := b.Texture.(LayoutTracker)
		if !ok || b.Before.Layout == LUndefined {
			continue
		}
		if l := lt.DeclaredLayout(); l != b.Before.Layout {
			return &LayoutError{i, l, b.Before.Layout}
		}
	}
	return nil
}
