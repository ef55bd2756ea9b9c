// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gogpu/gputypes"
)

// ResourceKind identifies the kind of a Resource.
type ResourceKind int

// Resource kinds.
const (
	KBuffer ResourceKind = iota
	KTexture
)

// Resource is the interface that all GPU resources
// referenced by barriers implement.
// Implementations are owned by the resource subsystem;
// barrier translation only reads their descriptions.
type Resource interface {
	Kind() ResourceKind
}

// BufferDesc describes a GPU buffer.
type BufferDesc struct {
	Size  uint64
	Usage gputypes.BufferUsage
}

// Buffer is the interface that defines a GPU buffer.
type Buffer interface {
	Resource

	// BufferDesc returns the buffer's description.
	// It is immutable for the lifetime of the buffer.
	BufferDesc() BufferDesc
}

// TextureDesc describes a GPU texture.
type TextureDesc struct {
	Format   gputypes.TextureFormat
	MipNum   int
	LayerNum int
	Usage    gputypes.TextureUsage
}

// Texture is the interface that defines a GPU texture.
type Texture interface {
	Resource

	// TextureDesc returns the texture's description.
	// It is immutable for the lifetime of the texture.
	TextureDesc() TextureDesc
}

// LayoutTracker is implemented by textures that keep
// track of their current layout.
// Keeping the declared layout consistent with the After
// state of issued barriers is the caller's responsibility.
type LayoutTracker interface {
	DeclaredLayout() Layout
}

// QueueKind is the type of an execution queue.
type QueueKind int

// Queue kinds.
const (
	// Graphics, compute and copy.
	QGraphics QueueKind = iota
	// Compute and copy.
	QCompute
	// Copy only.
	QCopy
)

// Queue is the interface that defines an execution queue.
type Queue interface {
	Kind() QueueKind

	// Family returns the index of the queue family
	// from which the queue was created.
	Family() int
}

// FormatProps describes properties of a texture format
// that affect synchronization.
type FormatProps struct {
	IsDepth   bool
	IsStencil bool
}

// PropsOf returns the FormatProps of f.
func PropsOf(f gputypes.TextureFormat) FormatProps {
	return FormatProps{IsDepth: f.HasDepth(), IsStencil: f.HasStencil()}
}

// Planes returns the planes that a format with props p has.
func (p FormatProps) Planes() Plane {
	var pl Plane
	if p.IsDepth {
		pl |= PDepth
	}
	if p.IsStencil {
		pl |= PStencil
	}
	if pl == 0 {
		pl = PColor
	}
	return pl
}

// PlaneIndex returns the index of the single plane pl
// within a format with props p.
// Depth always comes first, so the stencil plane of a
// depth/stencil format has index 1.
func (p FormatProps) PlaneIndex(pl Plane) int {
	if pl == PStencil && p.IsDepth {
		return 1
	}
	return 0
}

// SelectPlanes intersects the selector pl with the planes
// of a format with props p.
// Planes that the format does not have are dropped.
func (p FormatProps) SelectPlanes(pl Plane) Plane {
	own := p.Planes()
	if pl == PAll {
		return own
	}
	return pl & own
}

// PlaneCount returns the number of planes in pl.
func PlaneCount(pl Plane) (n int) {
	for ; pl != 0; pl &= pl - 1 {
		n++
	}
	return
}

// SubresourceIndex computes the linear index of a texture
// subresource.
func SubresourceIndex(layer, layerNum, mip, mipNum, plane int) int {
	return mip + layer*mipNum + plane*mipNum*layerNum
}
