// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build barrier_debug

package vk

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/driver/drivertest"
)

func TestRangeAssert(t *testing.T) {
	tex := drivertest.NewTexture("t", gputypes.TextureFormatDepth24PlusStencil8, 4, 3)
	for _, b := range [...]driver.TextureBarrier{
		{Texture: tex, MipOffset: 5, LayerOffset: 4},
		{Texture: tex, MipOffset: 1, MipNum: 4},
		{Texture: tex, MipOffset: -1, MipNum: 1},
		{Texture: tex, LayerOffset: 3},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("convImage (mips %d+%d, layers %d+%d): did not panic",
						b.MipOffset, b.MipNum, b.LayerOffset, b.LayerNum)
				}
			}()
			convImage(&b)
		}()
	}
	convImage(&driver.TextureBarrier{Texture: tex, MipOffset: 3, LayerOffset: 2, LayerNum: 1})
}
