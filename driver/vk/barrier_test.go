// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package vk

import (
	"math/rand"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/driver/drivertest"
	"github.com/gviegas/barrier/internal/scratch"
)

var (
	colorWrite   = driver.AccessState{Stages: driver.SColorAttachment, Access: driver.AColorAttachmentWrite, Layout: driver.LColorAttachment}
	fragmentRead = driver.AccessState{Stages: driver.SFragmentShader, Access: driver.AShaderResource, Layout: driver.LShaderResource}
	computeRW    = driver.AccessState{Stages: driver.SComputeShader, Access: driver.AShaderResourceStorage, Layout: driver.LShaderResourceStorage}
	copyWrite    = driver.AccessState{Stages: driver.SCopy, Access: driver.ACopyDestination, Layout: driver.LCopyDestination}
	inputRead    = driver.AccessState{Stages: driver.SFragmentShader, Access: driver.AInputAttachment, Layout: driver.LInputAttachment}
)

func TestConvMemory(t *testing.T) {
	x := convMemory(&driver.GlobalBarrier{Before: computeRW, After: copyWrite})
	want := MemoryBarrier2{
		SrcStageMask:  StageComputeShader,
		SrcAccessMask: AccessShaderStorageRead | AccessShaderStorageWrite,
		DstStageMask:  StageCopy,
		DstAccessMask: AccessTransferWrite,
	}
	if x != want {
		t.Fatalf("convMemory:\nhave %+v\nwant %+v", x, want)
	}
}

func TestConvBuffer(t *testing.T) {
	buf := drivertest.NewBuffer("b", 512)
	x := convBuffer(&driver.BufferBarrier{Buffer: buf, Before: copyWrite, After: computeRW})
	want := BufferMemoryBarrier2{
		SrcStageMask:        StageCopy,
		SrcAccessMask:       AccessTransferWrite,
		DstStageMask:        StageComputeShader,
		DstAccessMask:       AccessShaderStorageRead | AccessShaderStorageWrite,
		SrcQueueFamilyIndex: QueueFamilyIgnored,
		DstQueueFamilyIndex: QueueFamilyIgnored,
		Buffer:              buf,
		Offset:              0,
		Size:                WholeSize,
	}
	if x != want {
		t.Fatalf("convBuffer:\nhave %+v\nwant %+v", x, want)
	}
}

func TestConvImage(t *testing.T) {
	tex := drivertest.NewTexture("t", gputypes.TextureFormatRGBA8Unorm, 1, 1)
	x := convImage(&driver.TextureBarrier{Texture: tex, Before: colorWrite, After: fragmentRead})
	want := ImageMemoryBarrier2{
		SrcStageMask:        StageColorAttachmentOutput,
		SrcAccessMask:       AccessColorAttachmentWrite,
		DstStageMask:        StageFragmentShader,
		DstAccessMask:       AccessShaderSampledRead,
		OldLayout:           LayoutColorAttachmentOptimal,
		NewLayout:           LayoutShaderReadOnlyOptimal,
		SrcQueueFamilyIndex: QueueFamilyIgnored,
		DstQueueFamilyIndex: QueueFamilyIgnored,
		Image:               tex,
		SubresourceRange: ImageSubresourceRange{
			AspectMask:     AspectColor,
			BaseMipLevel:   0,
			LevelCount:     RemainingMipLevels,
			BaseArrayLayer: 0,
			LayerCount:     RemainingArrayLayers,
		},
	}
	if x != want {
		t.Fatalf("convImage:\nhave %+v\nwant %+v", x, want)
	}

	ds := drivertest.NewTexture("ds", gputypes.TextureFormatDepth32FloatStencil8, 6, 4)
	x = convImage(&driver.TextureBarrier{
		Texture:     ds,
		Before:      driver.AccessState{Stages: driver.SNone, Layout: driver.LUndefined},
		After:       fragmentRead,
		MipOffset:   2,
		MipNum:      3,
		LayerOffset: 1,
		LayerNum:    driver.Remaining,
		Planes:      driver.PColor | driver.PDepth,
	})
	sub := ImageSubresourceRange{AspectDepth, 2, 3, 1, RemainingArrayLayers}
	if x.SubresourceRange != sub {
		t.Fatalf("convImage:\nhave %+v\nwant %+v", x.SubresourceRange, sub)
	}
	if x.OldLayout != LayoutUndefined || x.SrcStageMask != StageNone || x.SrcAccessMask != AccessNone {
		t.Fatalf("convImage: initial use\nhave %+v\nwant undefined source", x)
	}
}

func TestOwnershipTransfer(t *testing.T) {
	tex := drivertest.NewTexture("t", gputypes.TextureFormatRGBA8Unorm, 1, 1)
	buf := drivertest.NewBuffer("b", 128)

	// Release on the compute queue.
	rcb, rncb := newCB(t, drivertest.Compute)
	rcb.Barrier(&driver.BarrierDesc{
		Buffers:  []driver.BufferBarrier{{Buffer: buf, Before: computeRW, After: fragmentRead}},
		Textures: []driver.TextureBarrier{{
			Texture:  tex,
			Before:   computeRW,
			After:    fragmentRead,
			SrcQueue: drivertest.Compute,
			DstQueue: drivertest.Graphics,
		}},
	})
	// Acquire on the graphics queue.
	acb, ancb := newCB(t, drivertest.Graphics)
	acb.Barrier(&driver.BarrierDesc{
		Textures: []driver.TextureBarrier{{
			Texture:  tex,
			Before:   computeRW,
			After:    fragmentRead,
			SrcQueue: drivertest.Compute,
			DstQueue: drivertest.Graphics,
		}},
	})
	for _, ncb := range [...]*commandBuffer{rncb, ancb} {
		if len(ncb.deps) != 1 || len(ncb.deps[0].ImageMemoryBarriers) != 1 {
			t.Fatalf("CmdBuffer.Barrier:\nhave %+v\nwant one image barrier", ncb.deps)
		}
		imb := ncb.deps[0].ImageMemoryBarriers[0]
		if imb.SrcQueueFamilyIndex != 1 || imb.DstQueueFamilyIndex != 0 {
			t.Fatalf("CmdBuffer.Barrier: queue family indices\nhave %d, %d\nwant 1, 0", imb.SrcQueueFamilyIndex, imb.DstQueueFamilyIndex)
		}
	}
	if bmb := rncb.deps[0].BufferMemoryBarriers[0]; bmb.SrcQueueFamilyIndex != QueueFamilyIgnored || bmb.DstQueueFamilyIndex != QueueFamilyIgnored {
		t.Fatalf("CmdBuffer.Barrier: buffer queue family indices\nhave %d, %d\nwant ignored", bmb.SrcQueueFamilyIndex, bmb.DstQueueFamilyIndex)
	}

	// A single queue is not a transfer.
	for _, tb := range [...]driver.TextureBarrier{
		{Texture: tex, Before: computeRW, After: fragmentRead, SrcQueue: drivertest.Compute},
		{Texture: tex, Before: computeRW, After: fragmentRead, DstQueue: drivertest.Graphics},
	} {
		x := convImage(&tb)
		if x.SrcQueueFamilyIndex != QueueFamilyIgnored || x.DstQueueFamilyIndex != QueueFamilyIgnored {
			t.Fatalf("convImage: one queue\nhave %d, %d\nwant ignored", x.SrcQueueFamilyIndex, x.DstQueueFamilyIndex)
		}
	}
}

func TestByRegion(t *testing.T) {
	cb, ncb := newCB(t, drivertest.Graphics)
	tex := drivertest.NewTexture("gbuffer", gputypes.TextureFormatRGBA8Unorm, 1, 1)
	other := drivertest.NewTexture("other", gputypes.TextureFormatRGBA8Unorm, 1, 1)
	toInput := &driver.BarrierDesc{
		Textures: []driver.TextureBarrier{
			{Texture: other, Before: copyWrite, After: fragmentRead},
			{Texture: tex, Before: colorWrite, After: inputRead},
		},
	}
	toShader := &driver.BarrierDesc{
		Textures: []driver.TextureBarrier{{Texture: tex, Before: colorWrite, After: fragmentRead}},
	}

	cb.Barrier(toInput)
	cb.BeginRendering()
	cb.Barrier(toInput)
	cb.Barrier(toShader)
	cb.EndRendering()
	cb.Barrier(toInput)

	want := [...]DependencyFlags{0, DependencyByRegion, 0, 0}
	if len(ncb.deps) != len(want) {
		t.Fatalf("CmdBuffer.Barrier:\nhave %d native calls\nwant %d", len(ncb.deps), len(want))
	}
	for i, d := range ncb.deps {
		if d.DependencyFlags != want[i] {
			t.Fatalf("CmdBuffer.Barrier: call %d\nhave flags %#x\nwant %#x", i, d.DependencyFlags, want[i])
		}
	}
	if l := ncb.deps[1].ImageMemoryBarriers[1].NewLayout; l != LayoutShaderReadOnlyOptimal {
		t.Fatalf("CmdBuffer.Barrier: input attachment read\nhave layout %d\nwant %d", l, LayoutShaderReadOnlyOptimal)
	}
}

func TestBarrierSingleCall(t *testing.T) {
	cb, ncb := newCB(t, drivertest.Graphics)
	tex := drivertest.NewTexture("t", gputypes.TextureFormatRGBA8Unorm, 2, 2)
	buf := drivertest.NewBuffer("b", 64)
	cb.Barrier(&driver.BarrierDesc{
		Globals:  []driver.GlobalBarrier{{Before: computeRW, After: computeRW}},
		Buffers:  []driver.BufferBarrier{{Buffer: buf, Before: copyWrite, After: fragmentRead}, {Buffer: buf, Before: computeRW, After: copyWrite}},
		Textures: []driver.TextureBarrier{{Texture: tex, Before: colorWrite, After: fragmentRead, MipNum: 1}},
	})
	if len(ncb.deps) != 1 {
		t.Fatalf("CmdBuffer.Barrier:\nhave %d native calls\nwant 1", len(ncb.deps))
	}
	d := ncb.deps[0]
	if len(d.MemoryBarriers) != 1 || len(d.BufferMemoryBarriers) != 2 || len(d.ImageMemoryBarriers) != 1 {
		t.Fatalf("CmdBuffer.Barrier:\nhave %d, %d, %d entries\nwant 1, 2, 1",
			len(d.MemoryBarriers), len(d.BufferMemoryBarriers), len(d.ImageMemoryBarriers))
	}
	if d.BufferMemoryBarriers[1].SrcStageMask != StageComputeShader {
		t.Fatalf("CmdBuffer.Barrier: buffer order\nhave %+v", d.BufferMemoryBarriers)
	}
	for _, p := range [...]interface{ InUse() int }{&cb.g.memory, &cb.g.buffers, &cb.g.images} {
		if n := p.InUse(); n != 0 {
			t.Fatalf("CmdBuffer.Barrier: scratch not released\nhave %d slots in use\nwant 0", n)
		}
	}
}

func FuzzCountFill(f *testing.F) {
	for _, seed := range [...]int64{0, 3, 99, 1 << 33} {
		f.Add(seed, uint8(24))
	}
	f.Add(int64(5), uint8(0))
	f.Add(int64(5), uint8(64))
	f.Fuzz(func(t *testing.T, seed int64, n uint8) {
		rnd := rand.New(rand.NewSource(seed))
		desc := new(driver.BarrierDesc)
		state := func() driver.AccessState {
			return driver.AccessState{
				Stages: driver.Stage(rnd.Uint32() & uint32(driver.SIndirect<<1 - 1)),
				Access: driver.Access(rnd.Uint32() & uint32(driver.AClearStorage<<1 - 1)),
				Layout: driver.Layout(rnd.Intn(int(driver.LResolveDestination) + 1)),
			}
		}
		for range int(n) % 65 {
			switch rnd.Intn(3) {
			case 0:
				desc.Globals = append(desc.Globals, driver.GlobalBarrier{Before: state(), After: state()})
			case 1:
				desc.Buffers = append(desc.Buffers, driver.BufferBarrier{Buffer: drivertest.NewBuffer("b", 64), Before: state(), After: state()})
			default:
				tex := drivertest.NewTexture("t", gputypes.TextureFormatDepth24PlusStencil8, 4, 4)
				desc.Textures = append(desc.Textures, driver.TextureBarrier{
					Texture:   tex,
					Before:    state(),
					After:     state(),
					MipOffset: rnd.Intn(4),
					Planes:    driver.Plane(rnd.Intn(8)),
				})
			}
		}
		nm, nb, ni := barrierCount(desc)
		mb := scratch.NewBuilder(make([]MemoryBarrier2, nm))
		bb := scratch.NewBuilder(make([]BufferMemoryBarrier2, nb))
		ib := scratch.NewBuilder(make([]ImageMemoryBarrier2, ni))
		barrierFill(desc, &mb, &bb, &ib)
		mb.Done()
		bb.Done()
		ib.Done()

		cb, ncb := newCB(t, drivertest.Graphics)
		cb.Barrier(desc)
		want := 1
		if desc.IsEmpty() {
			want = 0
		}
		if len(ncb.deps) != want {
			t.Fatalf("CmdBuffer.Barrier:\nhave %d native calls\nwant %d", len(ncb.deps), want)
		}
	})
}
