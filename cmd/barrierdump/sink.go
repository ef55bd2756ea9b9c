// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/driver/d3d12"
	"github.com/gviegas/barrier/driver/vk"
)

type buffer struct {
	name string
	desc driver.BufferDesc
}

func (b *buffer) Kind() driver.ResourceKind     { return driver.KBuffer }
func (b *buffer) BufferDesc() driver.BufferDesc { return b.desc }
func (b *buffer) String() string                { return b.name }

type texture struct {
	name   string
	desc   driver.TextureDesc
	layout driver.Layout
}

func (t *texture) Kind() driver.ResourceKind       { return driver.KTexture }
func (t *texture) TextureDesc() driver.TextureDesc { return t.desc }
func (t *texture) DeclaredLayout() driver.Layout   { return t.layout }
func (t *texture) String() string                  { return t.name }

type queue struct {
	kind   driver.QueueKind
	family int
}

func (q *queue) Kind() driver.QueueKind { return q.kind }
func (q *queue) Family() int            { return q.family }

var queues = map[string]driver.Queue{
	"graphics": &queue{driver.QGraphics, 0},
	"compute":  &queue{driver.QCompute, 1},
	"copy":     &queue{driver.QCopy, 2},
}

// name returns the name of a resource declared in a batch
// file, or "*" for a nil resource.
func name(r driver.Resource) string {
	switch r := r.(type) {
	case nil:
		return "*"
	case fmt.Stringer:
		return r.String()
	}
	return "?"
}

// d3d12Device creates command lists that print every
// native barrier to w.
type d3d12Device struct{ w io.Writer }

func (d *d3d12Device) NewCommandList(driver.Queue) (d3d12.CommandList, error) {
	return &d3d12List{d.w}, nil
}

type d3d12List struct{ w io.Writer }

func (l *d3d12List) ResourceBarrier(bs []d3d12.ResourceBarrier) {
	fmt.Fprintf(l.w, "ResourceBarrier (%d)\n", len(bs))
	for i := range bs {
		b := &bs[i]
		switch b.Type {
		case d3d12.BarrierTypeTransition:
			fmt.Fprintf(l.w, "\ttransition %s sub=%#x before=%#x after=%#x\n",
				name(b.Resource), b.Subresource, b.StateBefore, b.StateAfter)
		case d3d12.BarrierTypeUAV:
			fmt.Fprintf(l.w, "\tuav %s\n", name(b.Resource))
		default:
			fmt.Fprintf(l.w, "\ttype=%d %s\n", b.Type, name(b.Resource))
		}
	}
}

func (l *d3d12List) Barrier(gs []d3d12.BarrierGroup) {
	fmt.Fprintf(l.w, "Barrier (%d groups)\n", len(gs))
	for i := range gs {
		g := &gs[i]
		for _, b := range g.Globals {
			fmt.Fprintf(l.w, "\tglobal sync=%#x->%#x access=%#x->%#x\n",
				b.SyncBefore, b.SyncAfter, b.AccessBefore, b.AccessAfter)
		}
		for _, b := range g.Buffers {
			fmt.Fprintf(l.w, "\tbuffer %s sync=%#x->%#x access=%#x->%#x size=%#x\n",
				name(b.Resource), b.SyncBefore, b.SyncAfter, b.AccessBefore, b.AccessAfter, b.Size)
		}
		for _, b := range g.Textures {
			r := &b.Subresources
			fmt.Fprintf(l.w, "\ttexture %s sync=%#x->%#x access=%#x->%#x layout=%d->%d mips=%d+%d layers=%d+%d planes=%d+%d flags=%#x\n",
				name(b.Resource), b.SyncBefore, b.SyncAfter, b.AccessBefore, b.AccessAfter,
				b.LayoutBefore, b.LayoutAfter, r.IndexOrFirstMipLevel, r.NumMipLevels,
				r.FirstArraySlice, r.NumArraySlices, r.FirstPlane, r.NumPlanes, b.Flags)
		}
	}
}

// vkDevice creates command buffers that print every
// recorded command to w.
type vkDevice struct{ w io.Writer }

func (d *vkDevice) NewCommandBuffer(family int) (vk.CommandBuffer, error) {
	return &vkCommandBuffer{d.w}, nil
}

type vkCommandBuffer struct{ w io.Writer }

func (cb *vkCommandBuffer) PipelineBarrier2(info *vk.DependencyInfo) {
	fmt.Fprintf(cb.w, "PipelineBarrier2 flags=%#x\n", info.DependencyFlags)
	for _, b := range info.MemoryBarriers {
		fmt.Fprintf(cb.w, "\tmemory stage=%#x->%#x access=%#x->%#x\n",
			b.SrcStageMask, b.DstStageMask, b.SrcAccessMask, b.DstAccessMask)
	}
	for _, b := range info.BufferMemoryBarriers {
		fmt.Fprintf(cb.w, "\tbuffer %s stage=%#x->%#x access=%#x->%#x queue=%d->%d\n",
			name(b.Buffer), b.SrcStageMask, b.DstStageMask, b.SrcAccessMask, b.DstAccessMask,
			int32(b.SrcQueueFamilyIndex), int32(b.DstQueueFamilyIndex))
	}
	for _, b := range info.ImageMemoryBarriers {
		r := &b.SubresourceRange
		fmt.Fprintf(cb.w, "\timage %s stage=%#x->%#x access=%#x->%#x layout=%d->%d queue=%d->%d aspect=%#x mips=%d+%d layers=%d+%d\n",
			name(b.Image), b.SrcStageMask, b.DstStageMask, b.SrcAccessMask, b.DstAccessMask,
			b.OldLayout, b.NewLayout, int32(b.SrcQueueFamilyIndex), int32(b.DstQueueFamilyIndex),
			r.AspectMask, r.BaseMipLevel, int32(r.LevelCount), r.BaseArrayLayer, int32(r.LayerCount))
	}
}

func (cb *vkCommandBuffer) BeginRendering() { fmt.Fprintln(cb.w, "BeginRendering") }
func (cb *vkCommandBuffer) EndRendering()   { fmt.Fprintln(cb.w, "EndRendering") }
