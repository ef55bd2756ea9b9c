// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package drivertest provides resource and queue
// implementations for testing driver backends.
package drivertest

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/barrier/driver"
)

// Buffer implements driver.Buffer.
type Buffer struct {
	Name string
	Desc driver.BufferDesc
}

func (b *Buffer) Kind() driver.ResourceKind     { return driver.KBuffer }
func (b *Buffer) BufferDesc() driver.BufferDesc { return b.Desc }
func (b *Buffer) String() string                { return "buffer " + b.Name }

// Texture implements driver.Texture and
// driver.LayoutTracker.
type Texture struct {
	Name   string
	Desc   driver.TextureDesc
	Layout driver.Layout
}

func (t *Texture) Kind() driver.ResourceKind       { return driver.KTexture }
func (t *Texture) TextureDesc() driver.TextureDesc { return t.Desc }
func (t *Texture) DeclaredLayout() driver.Layout   { return t.Layout }
func (t *Texture) String() string                  { return "texture " + t.Name }

// Queue implements driver.Queue.
type Queue struct {
	QKind   driver.QueueKind
	QFamily int
}

func (q *Queue) Kind() driver.QueueKind { return q.QKind }
func (q *Queue) Family() int            { return q.QFamily }
func (q *Queue) String() string         { return fmt.Sprintf("queue %d/%d", q.QKind, q.QFamily) }

// NewBuffer creates a Buffer usable for any access.
func NewBuffer(name string, size uint64) *Buffer {
	return &Buffer{
		Name: name,
		Desc: driver.BufferDesc{
			Size: size,
			Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageVertex |
				gputypes.BufferUsageUniform | gputypes.BufferUsageIndirect |
				gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc |
				gputypes.BufferUsageCopyDst,
		},
	}
}

// NewTexture creates a Texture usable for any access.
func NewTexture(name string, format gputypes.TextureFormat, mips, layers int) *Texture {
	return &Texture{
		Name: name,
		Desc: driver.TextureDesc{
			Format:   format,
			MipNum:   mips,
			LayerNum: layers,
			Usage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding |
				gputypes.TextureUsageStorageBinding | gputypes.TextureUsageCopySrc |
				gputypes.TextureUsageCopyDst,
		},
	}
}

// Graphics, Compute and Copy are queues of each kind, in
// distinct families.
var (
	Graphics = &Queue{driver.QGraphics, 0}
	Compute  = &Queue{driver.QCompute, 1}
	Copy     = &Queue{driver.QCopy, 2}
)
