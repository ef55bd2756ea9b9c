// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

type buffer struct{ desc BufferDesc }

func (b *buffer) Kind() ResourceKind     { return KBuffer }
func (b *buffer) BufferDesc() BufferDesc { return b.desc }

type trackedTexture struct {
	texture
	layout Layout
}

func (t *trackedTexture) DeclaredLayout() Layout { return t.layout }

func TestTextureUsageFor(t *testing.T) {
	cases := [...]struct {
		acc  Access
		want gputypes.TextureUsage
	}{
		{ANone, 0},
		{AColorAttachmentWrite, gputypes.TextureUsageRenderAttachment},
		{ADepthStencilAttachment | AInputAttachment, gputypes.TextureUsageRenderAttachment},
		{AShaderResource, gputypes.TextureUsageTextureBinding},
		{AShaderResourceStorage, gputypes.TextureUsageStorageBinding},
		{AClearStorage, gputypes.TextureUsageStorageBinding},
		{ACopySource | ACopyDestination, gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst},
		{AShaderResource | AColorAttachment, gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment},
	}
	for _, c := range cases {
		if x := TextureUsageFor(c.acc); x != c.want {
			t.Fatalf("TextureUsageFor(%#x):\nhave %#x\nwant %#x", c.acc, x, c.want)
		}
	}
}

func TestBufferUsageFor(t *testing.T) {
	cases := [...]struct {
		acc  Access
		want gputypes.BufferUsage
	}{
		{ANone, 0},
		{AIndexBuffer, gputypes.BufferUsageIndex},
		{AVertexBuffer, gputypes.BufferUsageVertex},
		{AConstantBuffer, gputypes.BufferUsageUniform},
		{AArgumentBuffer, gputypes.BufferUsageIndirect},
		{AShaderResourceStorage, gputypes.BufferUsageStorage},
		{AScratchBuffer | AAccelStructWrite, gputypes.BufferUsageStorage},
		{ACopySource | ACopyDestination, gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst},
	}
	for _, c := range cases {
		if x := BufferUsageFor(c.acc); x != c.want {
			t.Fatalf("BufferUsageFor(%#x):\nhave %#x\nwant %#x", c.acc, x, c.want)
		}
	}
}

func TestCheck(t *testing.T) {
	upload := &buffer{BufferDesc{Size: 256, Usage: gputypes.BufferUsageCopyDst | gputypes.BufferUsageVertex}}
	tex := &trackedTexture{
		texture: texture{TextureDesc{
			Format:   gputypes.TextureFormatRGBA8Unorm,
			MipNum:   1,
			LayerNum: 1,
			Usage:    gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
		}},
		layout: LShaderResource,
	}
	copyDst := AccessState{Stages: SCopy, Access: ACopyDestination, Layout: LCopyDestination}
	vertex := AccessState{Stages: SVertexShader, Access: AVertexBuffer}
	storage := AccessState{Stages: SComputeShader, Access: AShaderResourceStorage, Layout: LShaderResourceStorage}
	color := AccessState{Stages: SColorAttachment, Access: AColorAttachmentWrite, Layout: LColorAttachment}
	sampled := AccessState{Stages: SFragmentShader, Access: AShaderResource, Layout: LShaderResource}

	if err := Check(nil); err != nil {
		t.Fatalf("Check(nil):\nhave %v\nwant nil", err)
	}
	ok := &BarrierDesc{
		Buffers:  []BufferBarrier{{Buffer: upload, Before: copyDst, After: vertex}},
		Textures: []TextureBarrier{
			{Texture: tex, Before: sampled, After: color},
			{Texture: tex, Before: AccessState{Layout: LUndefined}, After: color},
		},
	}
	if err := Check(ok); err != nil {
		t.Fatalf("Check:\nhave %v\nwant nil", err)
	}

	var uerr *UsageError
	err := Check(&BarrierDesc{Buffers: []BufferBarrier{
		{Buffer: upload, Before: copyDst, After: vertex},
		{Buffer: upload, Before: copyDst, After: storage},
	}})
	if !errors.As(err, &uerr) {
		t.Fatalf("Check (storage on upload buffer):\nhave %v\nwant *UsageError", err)
	}
	if uerr.Kind != KBuffer || uerr.Index != 1 || uerr.Need&^uerr.Have != uint64(gputypes.BufferUsageStorage) {
		t.Fatalf("Check (storage on upload buffer):\nhave %+v", uerr)
	}

	err = Check(&BarrierDesc{Textures: []TextureBarrier{{Texture: tex, Before: sampled, After: storage}}})
	if !errors.As(err, &uerr) || uerr.Kind != KTexture || uerr.Index != 0 {
		t.Fatalf("Check (storage on sampled texture):\nhave %v\nwant *UsageError", err)
	}

	var lerr *LayoutError
	err = Check(&BarrierDesc{Textures: []TextureBarrier{{Texture: tex, Before: color, After: sampled}}})
	if !errors.As(err, &lerr) {
		t.Fatalf("Check (stale layout):\nhave %v\nwant *LayoutError", err)
	}
	if want := (LayoutError{0, LShaderResource, LColorAttachment}); *lerr != want {
		t.Fatalf("Check (stale layout):\nhave %+v\nwant %+v", *lerr, want)
	}
	if lerr.Error() == "" || uerr.Error() == "" {
		t.Fatal("Error: empty message")
	}
}
